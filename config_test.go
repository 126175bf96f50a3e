package batchbridge

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func writeConfig(t *testing.T, dir, certPath, credsPath, tokenPath string) string {
	t.Helper()
	content := fmt.Sprintf("[api]\nurl = %q\n\n[auth]\ncert = %q\ncredentials = %q\n", "https://api.test", certPath, credsPath)
	if tokenPath != "" {
		content += fmt.Sprintf("token = %q\n", tokenPath)
	}
	return writeFile(t, dir, "config.toml", content)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cert := writeFile(t, dir, "client.pem", "not checked here")
	creds := writeFile(t, dir, "creds.json", `{"username":"u","password":"p"}`)
	tokenPath := filepath.Join(dir, "token.json")

	cfg, err := LoadConfig(writeConfig(t, dir, cert, creds, tokenPath))
	require.NoError(t, err)

	assert.Equal(t, "https://api.test", cfg.URL)
	assert.Equal(t, cert, cfg.CertFile)
	assert.Equal(t, "u", cfg.Credentials.Username)
	assert.Equal(t, "p", cfg.Credentials.Password)
	assert.Equal(t, tokenPath, cfg.TokenFile)
}

func TestLoadConfig_TokenFileIsOptional(t *testing.T) {
	dir := t.TempDir()
	cert := writeFile(t, dir, "client.pem", "x")
	creds := writeFile(t, dir, "creds.json", `{"username":"u","password":"p"}`)

	cfg, err := LoadConfig(writeConfig(t, dir, cert, creds, ""))
	require.NoError(t, err)
	assert.Empty(t, cfg.TokenFile)
}

func TestLoadConfig_MissingCertFile(t *testing.T) {
	dir := t.TempDir()
	creds := writeFile(t, dir, "creds.json", `{"username":"u","password":"p"}`)

	_, err := LoadConfig(writeConfig(t, dir, filepath.Join(dir, "missing.pem"), creds, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a file")
}

func TestLoadConfig_WrongCertSuffix(t *testing.T) {
	dir := t.TempDir()
	cert := writeFile(t, dir, "client.crt", "x")
	creds := writeFile(t, dir, "creds.json", `{"username":"u","password":"p"}`)

	_, err := LoadConfig(writeConfig(t, dir, cert, creds, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".crt")
}

func TestLoadConfig_CredentialsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	cert := writeFile(t, dir, "client.pem", "x")
	creds := writeFile(t, dir, "creds.json", `{"username":"u"}`)

	_, err := LoadConfig(writeConfig(t, dir, cert, creds, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestLoadConfig_MissingURL(t *testing.T) {
	dir := t.TempDir()
	cert := writeFile(t, dir, "client.pem", "x")
	creds := writeFile(t, dir, "creds.json", `{"username":"u","password":"p"}`)
	path := writeFile(t, dir, "config.toml", fmt.Sprintf("[auth]\ncert = %q\ncredentials = %q\n", cert, creds))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api.url")
}
