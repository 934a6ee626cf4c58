// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/roundvote/voting"
)

const testAddr = "0x00000000000000000000000000000000000000aa"

func TestGenerateCallerKey(t *testing.T) {
	tests := []struct {
		name    string
		address string
		salt    string
	}{
		{"standard", testAddr, "secret-salt"},
		{"empty address", "", "salt"},
		{"empty salt", testAddr, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateCallerKey(tt.address, tt.salt)

			// Should be deterministic
			if key2 := GenerateCallerKey(tt.address, tt.salt); key != key2 {
				t.Errorf("GenerateCallerKey() not deterministic: %s != %s", key, key2)
			}

			// Should be URL-safe (no padding, no +/)
			if strings.ContainsAny(key, "=+/") {
				t.Errorf("GenerateCallerKey() contains non URL-safe characters: %s", key)
			}

			// SHA256 = 32 bytes = 43 base64 chars without padding
			if len(key) != 43 {
				t.Errorf("GenerateCallerKey() length = %d, want 43", len(key))
			}
		})
	}

	if GenerateCallerKey(testAddr, "a") == GenerateCallerKey(testAddr, "b") {
		t.Error("different salts produced the same key")
	}
}

func TestValidateCallerKey(t *testing.T) {
	salt := "test-salt"
	valid := GenerateCallerKey(testAddr, salt)

	tests := []struct {
		name    string
		address string
		key     string
		wantErr error
	}{
		{"valid key", testAddr, valid, nil},
		{"wrong key", testAddr, "wrong-key", ErrInvalidCallerKey},
		{"other address", "0x00000000000000000000000000000000000000bb", valid, ErrInvalidCallerKey},
		{"empty key", testAddr, "", ErrInvalidCallerKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCallerKey(tt.address, tt.key, salt)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCallerKey() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCaller(t *testing.T) {
	salt := "test-salt"
	key := GenerateCallerKey(testAddr, salt)

	tests := []struct {
		name    string
		address string
		key     string
		want    voting.Address
		wantErr error
	}{
		{"valid", testAddr, key, voting.Address(testAddr), nil},
		{"mixed case address", "0x00000000000000000000000000000000000000AA", key, voting.Address(testAddr), nil},
		{"missing address", "", key, "", ErrMissingCaller},
		{"missing key", testAddr, "", "", ErrMissingCaller},
		{"malformed address", "0x12", key, "", voting.ErrInvalidAddress},
		{"bad key", testAddr, "nope", "", ErrInvalidCallerKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/rounds", nil)
			if tt.address != "" {
				r.Header.Set(HeaderCallerAddress, tt.address)
			}
			if tt.key != "" {
				r.Header.Set(HeaderCallerKey, tt.key)
			}
			got, err := Caller(r, salt)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Caller() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Caller() = %s, want %s", got, tt.want)
			}
		})
	}
}
