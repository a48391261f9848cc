package config

import (
	"fmt"
	"os"
	"strconv"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

func lookupInt(key string, dst *int) error {
	s, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	*dst = n
	return nil
}

func lookupString(key string, dst *string) {
	if s, ok := os.LookupEnv(key); ok {
		*dst = s
	}
}

// ApplyEnv overrides config values with the MINES_* env variables that are
// set. DEVELOPMENT=1 switches to development mode.
func (c *Config) ApplyEnv() error {
	if Development() {
		c.Mode = "development"
	}
	lookupString("MINES_MODE", &c.Mode)
	lookupString("MINES_ADDR", &c.Addr)
	lookupString("APP_BASE_PATH", &c.BasePath)
	lookupString("MINES_LOG_LEVEL", &c.Log.Level)
	lookupString("MINES_LOG_FILE", &c.Log.File)

	if err := lookupInt("MINES_MAX_CELLS", &c.Game.MaxCells); err != nil {
		return err
	}
	if s, ok := os.LookupEnv("MINES_IDLE_TIMEOUT"); ok {
		d, err := ParseDuration(s)
		if err != nil {
			return fmt.Errorf("unable to parse MINES_IDLE_TIMEOUT: %w", err)
		}
		c.Sessions.IdleTimeout = d
	}
	return nil
}
