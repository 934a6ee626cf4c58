// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address identifies an account. Parsed addresses are lowercase 0x-prefixed
// 20 byte hex strings; the empty Address means "none".
type Address string

// ParseAddress validates and normalizes s.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimSpace(s)
	if len(s) != 42 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if _, err := hex.DecodeString(s[2:]); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address("0x" + strings.ToLower(s[2:])), nil
}

// MustParseAddress is ParseAddress for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) IsZero() bool { return a == "" }

func (a Address) String() string {
	if a == "" {
		return "<none>"
	}
	return string(a)
}

// TokenID identifies a community ballot.
type TokenID uint64
