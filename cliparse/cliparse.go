package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/danielhkuo/roundvote/voting"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	CallerKeySalt string
	RegistryOwner string
}

// Persistent reports whether a database was configured.
func (c Config) Persistent() bool { return c.DatabaseURL != "" }

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("roundvote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (optional, enables the event log)")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.CallerKeySalt, "caller-salt", "", "Caller key salt (prefer env)")
	fs.StringVar(&cfg.RegistryOwner, "registry-owner", "", "Adapter registry admin address")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.CallerKeySalt == "" {
		cfg.CallerKeySalt = os.Getenv("CALLER_KEY_SALT")
	}
	if cfg.CallerKeySalt == "" {
		return Config{}, errors.New("CALLER_KEY_SALT required")
	}

	if cfg.RegistryOwner == "" {
		cfg.RegistryOwner = os.Getenv("REGISTRY_OWNER")
	}
	if cfg.RegistryOwner == "" {
		return Config{}, errors.New("REGISTRY_OWNER required")
	}
	owner, err := voting.ParseAddress(cfg.RegistryOwner)
	if err != nil {
		return Config{}, fmt.Errorf("REGISTRY_OWNER: %w", err)
	}
	cfg.RegistryOwner = string(owner)

	return cfg, nil
}
