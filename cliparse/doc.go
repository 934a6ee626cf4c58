// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Event log database (optional; empty keeps everything in memory)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - CallerKeySalt: Secret for caller key HMAC (required)
  - RegistryOwner: Address allowed to manage adapters and bindings (required)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	-caller-salt      Caller key salt
	-registry-owner   Registry admin address

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	CALLER_KEY_SALT → -caller-salt
	REGISTRY_OWNER  → -registry-owner

CLI flags take precedence over environment variables. main loads a .env
file, if present, before parsing.

# Validation

ParseFlags returns an error if required values are missing or malformed:

  - CALLER_KEY_SALT must be provided
  - REGISTRY_OWNER must be a 0x-prefixed 20-byte hex address
  - DATABASE_TYPE must be sqlite or postgres
*/
package cliparse
