// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/danielhkuo/roundvote/voting"
)

// Request headers carrying the caller identity.
const (
	HeaderCallerAddress = "X-Caller-Address"
	HeaderCallerKey     = "X-Caller-Key"
)

var (
	ErrMissingCaller    = errors.New("caller identity required")
	ErrInvalidCallerKey = errors.New("invalid caller key")
)

// GenerateCallerKey creates the HMAC-based key that proves control of an
// address. This is deterministic and verifiable
func GenerateCallerKey(address, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(address))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// ValidateCallerKey checks if the provided key is valid for the address
func ValidateCallerKey(address, key, salt string) error {
	expected := GenerateCallerKey(address, salt)
	if !hmac.Equal([]byte(key), []byte(expected)) {
		return ErrInvalidCallerKey
	}
	return nil
}

// Caller returns the authenticated caller of r. The address header is
// normalized before the key is checked.
func Caller(r *http.Request, salt string) (voting.Address, error) {
	raw := r.Header.Get(HeaderCallerAddress)
	key := r.Header.Get(HeaderCallerKey)
	if raw == "" || key == "" {
		return "", ErrMissingCaller
	}
	addr, err := voting.ParseAddress(raw)
	if err != nil {
		return "", err
	}
	if err := ValidateCallerKey(string(addr), key, salt); err != nil {
		return "", err
	}
	return addr, nil
}
