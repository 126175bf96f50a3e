// token.go
// --------
// The canonical bearer-token shape and its on-disk persistence.
//
// A Token is immutable once constructed: refreshes replace it wholesale,
// never mutate it. ValidUntil is always timezone-aware (time.Time carries its
// location), and validity comparisons go through a single clock supplied by
// the caller so tests can pin "now".
//
// The persisted form is the one wire shape this toolkit owns:
//
//	{"token": "<value>", "valid_until": "<ISO-8601>"}
//
// and it round-trips exactly: value and instant survive a save/load cycle,
// timezone-normalized.
package batchbridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// Token is a bearer credential valid until a known expiry instant.
type Token struct {
	Value      string    `json:"token"`
	ValidUntil time.Time `json:"valid_until"`
}

// ValidAt reports whether the token is still valid at the given instant.
func (t *Token) ValidAt(now time.Time) bool {
	return t.ValidUntil.After(now)
}

// FileTokenStore persists a token as a JSON file at a fixed path.
type FileTokenStore struct {
	Path string
}

// NewFileTokenStore returns a store backed by the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{Path: path}
}

// Load reads the persisted token. A missing file means nothing was stored
// yet and yields (nil, nil).
func (s *FileTokenStore) Load() (*Token, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file %s: %w", s.Path, err)
	}
	var tok Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decoding token file %s: %w", s.Path, err)
	}
	return &tok, nil
}

// Save writes (creating or overwriting) the token file.
func (s *FileTokenStore) Save(token *Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token: %w", err)
	}
	if err := os.WriteFile(s.Path, data, 0o600); err != nil {
		return fmt.Errorf("writing token file %s: %w", s.Path, err)
	}
	return nil
}
