// jwt_endpoint.go
// ---------------
// JWTTokenEndpoint fetches an access token that is itself a JWT and derives
// the canonical ValidUntil from the token's exp claim. The JWT is parsed
// without signature verification: this client is the token's consumer, not
// its verifier, and only needs the expiry instant.
package adapters

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	batchbridge "github.com/batchgate/batch-bridge"
	"github.com/golang-jwt/jwt/v4"
)

type JWTTokenEndpoint struct {
	Endpoint string
	// Headers are sent with the fetch, e.g. an API key header.
	Headers map[string]string
}

func NewJWTTokenEndpoint(endpoint string, headers map[string]string) *JWTTokenEndpoint {
	return &JWTTokenEndpoint{
		Endpoint: endpoint,
		Headers:  headers,
	}
}

// FetchToken requests the endpoint and reads the expiry out of the returned
// JWT. The response body may be either a bare JWT or {"access_token": "..."}.
func (e *JWTTokenEndpoint) FetchToken() (*batchbridge.Token, error) {
	httpReq, err := http.NewRequest(http.MethodGet, e.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range e.Headers {
		httpReq.Header.Set(k, v)
	}

	client := &http.Client{}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("requesting token from %s: %w", e.Endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &batchbridge.HTTPStatusError{StatusCode: resp.StatusCode, Body: data}
	}

	raw := extractAccessToken(data)
	if raw == "" {
		return nil, fmt.Errorf("token response from %s held no access token", e.Endpoint)
	}

	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("parsing access token as JWT: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("access token carries no exp claim")
	}

	return &batchbridge.Token{
		Value:      raw,
		ValidUntil: claims.ExpiresAt.Time,
	}, nil
}

// extractAccessToken accepts either a JSON envelope or a bare JWT body.
func extractAccessToken(data []byte) string {
	var envelope struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.AccessToken != "" {
		return envelope.AccessToken
	}
	return strings.TrimSpace(string(data))
}
