// utils/client_credentials.go
// ---------------------------
// Helpers for loading the credential material a client config points at: the
// user credentials JSON file and the TLS client certificate presented to the
// API (either a PEM file holding certificate plus key, or a PKCS#12 bundle).
package utils

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/pkcs12"
)

// Credentials holds the username/password pair used against login-style
// token endpoints.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoadCredentials reads a credentials JSON file and verifies the required
// keys are present. Missing keys are reported by name.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding credentials file %s: %w", path, err)
	}

	var missing []string
	for _, key := range []string{"username", "password"} {
		if _, ok := raw[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("credentials file %s is missing required keys: %s", path, strings.Join(missing, ", "))
	}

	return &Credentials{
		Username: raw["username"],
		Password: raw["password"],
	}, nil
}

// LoadClientCertificate loads TLS client certificate material from path. A
// .pem file must hold the certificate and private key concatenated; a .p12
// or .pfx bundle is decoded with the given password (empty for none).
func LoadClientCertificate(path, password string) (tls.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("reading certificate file %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pem":
		cert, err := tls.X509KeyPair(data, data)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("parsing PEM certificate %s: %w", path, err)
		}
		return cert, nil
	case ".p12", ".pfx":
		privateKey, cert, err := pkcs12.Decode(data, password)
		if err != nil {
			return tls.Certificate{}, fmt.Errorf("decoding pkcs12 bundle %s: %w", path, err)
		}
		return tls.Certificate{
			Certificate: [][]byte{cert.Raw},
			PrivateKey:  privateKey,
			Leaf:        cert,
		}, nil
	default:
		return tls.Certificate{}, fmt.Errorf("unsupported certificate file type %q; expected .pem, .p12 or .pfx", ext)
	}
}
