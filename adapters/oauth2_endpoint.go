// oauth2_endpoint.go
// ------------------
// OAuth2TokenEndpoint adapts an OAuth2 client-credentials grant to the
// TokenEndpoint capability: one round trip against the token URL, and the
// oauth2 token's AccessToken/Expiry become the canonical Token.
package adapters

import (
	"context"
	"fmt"
	"time"

	batchbridge "github.com/batchgate/batch-bridge"
	"golang.org/x/oauth2/clientcredentials"
)

type OAuth2TokenEndpoint struct {
	Config clientcredentials.Config
	// DefaultTTL bounds validity when the token service omits expires_in.
	// Zero means one hour.
	DefaultTTL time.Duration
}

func NewOAuth2TokenEndpoint(config clientcredentials.Config) *OAuth2TokenEndpoint {
	return &OAuth2TokenEndpoint{Config: config}
}

func (e *OAuth2TokenEndpoint) FetchToken() (*batchbridge.Token, error) {
	tok, err := e.Config.Token(context.Background())
	if err != nil {
		return nil, fmt.Errorf("requesting oauth2 token from %s: %w", e.Config.TokenURL, err)
	}

	validUntil := tok.Expiry
	if validUntil.IsZero() {
		ttl := e.DefaultTTL
		if ttl == 0 {
			ttl = time.Hour
		}
		validUntil = time.Now().UTC().Add(ttl)
	}

	return &batchbridge.Token{
		Value:      tok.AccessToken,
		ValidUntil: validUntil,
	}, nil
}
