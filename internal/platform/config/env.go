package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseEnvWithLookup loads configuration using lookup instead of the process
// environment. Tests use it to avoid mutating global state.
func ParseEnvWithLookup(target any, lookup func(string) (string, bool)) error {
	if lookup == nil {
		return ParseEnv(target)
	}
	environment := map[string]string{}
	for _, key := range envKeys(target) {
		if value, ok := lookup(key); ok {
			environment[key] = value
		}
	}
	if err := env.ParseWithOptions(target, env.Options{Environment: environment}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadDotEnv loads variables from the given dotenv files into the process
// environment without overriding values that are already set. Missing files
// are ignored.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load dotenv %s: %w", path, err)
		}
	}
	return nil
}

func envKeys(target any) []string {
	params, err := env.GetFieldParams(target)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(params))
	for _, param := range params {
		if param.Key != "" {
			keys = append(keys, param.Key)
		}
	}
	return keys
}
