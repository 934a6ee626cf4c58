// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth authenticates callers of the HTTP API.

# Caller Keys

Every write names its caller with two headers:

	X-Caller-Address: 0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed
	X-Caller-Key:     <key>

The key is HMAC-SHA256 of the lowercased address under the server's
CALLER_KEY_SALT, URL-safe base64 encoded without padding:

	key := auth.GenerateCallerKey(address, salt)
	err := auth.ValidateCallerKey(address, key, salt)

Since it's deterministic, the server can validate a key without storing it.
Operators hand out keys to round owners, entity voters and ballot holders
out of band.

# Requests

Caller extracts and checks both headers:

	caller, err := auth.Caller(r, cfg.CallerKeySalt)

It returns ErrMissingCaller when either header is absent,
voting.ErrInvalidAddress for a malformed address and ErrInvalidCallerKey
when the key does not match.
*/
package auth
