// login_endpoint.go
// -----------------
// LoginTokenEndpoint speaks to token services that exchange a username and
// password for a bearer token wrapped in an envelope of the form:
//
//	{"Success": true, "Error": null,
//	 "Data": {"Token": "...", "Created": "...", "Expires": "..."}}
//
// The Expires instant becomes the canonical token's ValidUntil.
package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	batchbridge "github.com/batchgate/batch-bridge"
	"github.com/batchgate/batch-bridge/utils"
)

type LoginTokenEndpoint struct {
	Endpoint    string
	Credentials utils.Credentials
}

func NewLoginTokenEndpoint(endpoint string, creds utils.Credentials) *LoginTokenEndpoint {
	return &LoginTokenEndpoint{
		Endpoint:    endpoint,
		Credentials: creds,
	}
}

type loginEnvelope struct {
	Success bool    `json:"Success"`
	Error   *string `json:"Error"`
	Data    struct {
		Token   string    `json:"Token"`
		Created time.Time `json:"Created"`
		Expires time.Time `json:"Expires"`
	} `json:"Data"`
}

// FetchToken posts the credentials and normalizes the vendor envelope into
// the canonical Token shape.
func (e *LoginTokenEndpoint) FetchToken() (*batchbridge.Token, error) {
	payload, err := json.Marshal(map[string]string{
		"username": e.Credentials.Username,
		"password": e.Credentials.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding login payload: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, e.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

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

	var envelope loginEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("decoding token response: %w", err)
	}
	if !envelope.Success {
		msg := "unknown error"
		if envelope.Error != nil {
			msg = *envelope.Error
		}
		return nil, fmt.Errorf("token service refused login: %s", msg)
	}

	return &batchbridge.Token{
		Value:      envelope.Data.Token,
		ValidUntil: envelope.Data.Expires,
	}, nil
}
