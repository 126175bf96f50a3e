// config.go
// ---------
// Process configuration loading for clients built from a TOML file:
//
//	[api]
//	url = "https://api.example.com"
//
//	[auth]
//	cert = "/etc/client/cert.pem"        # TLS client certificate
//	credentials = "/etc/client/creds.json"
//	token = "/var/lib/client/token.json" # optional token cache
//
// The cert must be an existing .pem/.p12/.pfx file and the credentials file
// must carry username and password; both are checked here, at load time, so
// a misconfigured client fails before its first request.
package batchbridge

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/batchgate/batch-bridge/utils"
	"github.com/pelletier/go-toml/v2"
)

// Config is the validated result of loading a client configuration file.
type Config struct {
	// URL is the API base URL.
	URL string
	// CertFile points at the TLS client certificate material.
	CertFile string
	// Credentials is the loaded username/password pair.
	Credentials utils.Credentials
	// TokenFile is the optional token persistence path; empty disables
	// persistence.
	TokenFile string
}

type fileConfig struct {
	API struct {
		URL string `toml:"url"`
	} `toml:"api"`
	Auth struct {
		Cert        string `toml:"cert"`
		Credentials string `toml:"credentials"`
		Token       string `toml:"token"`
	} `toml:"auth"`
}

// LoadConfig reads and validates a TOML client configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.API.URL == "" {
		return nil, fmt.Errorf("config %s: api.url is required", path)
	}

	if err := checkCertFile(fc.Auth.Cert); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	creds, err := utils.LoadCredentials(fc.Auth.Credentials)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &Config{
		URL:         fc.API.URL,
		CertFile:    fc.Auth.Cert,
		Credentials: *creds,
		TokenFile:   fc.Auth.Token,
	}, nil
}

// checkCertFile verifies the certificate path names an existing regular file
// of a supported type.
func checkCertFile(path string) error {
	if path == "" {
		return fmt.Errorf("auth.cert is required")
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%s is not a file", path)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pem", ".p12", ".pfx":
		return nil
	default:
		return fmt.Errorf("expected the cert to be a .pem, .p12 or .pfx file, found %q", ext)
	}
}
