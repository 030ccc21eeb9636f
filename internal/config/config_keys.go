// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the CLI interface where config is
// accessed by string keys (e.g., "imports.max_depth").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/false". This enables proper
// defaulting - we only apply defaults when the user hasn't set a value.

package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"imports.enabled", "imports.max_depth",
		"render.theme",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "author.name":
		return c.Author.Name, nil
	case "author.email":
		return c.Author.Email, nil
	case "imports.enabled":
		return strconv.FormatBool(c.ImportsEnabled()), nil
	case "imports.max_depth":
		return strconv.Itoa(c.MaxDepth()), nil
	case "render.theme":
		return c.Theme(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "imports.enabled":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: imports.enabled must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Imports.Enabled = &b
	case "imports.max_depth":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxDepth || n > MaxMaxDepth {
			return fmt.Errorf("%w: imports.max_depth must be an integer between %d and %d",
				ErrInvalidValue, MinMaxDepth, MaxMaxDepth)
		}
		c.Imports.MaxDepth = &n
	case "render.theme":
		c.Render.Theme = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":       c.Author.Name,
		"author.email":      c.Author.Email,
		"imports.enabled":   strconv.FormatBool(c.ImportsEnabled()),
		"imports.max_depth": strconv.Itoa(c.MaxDepth()),
		"render.theme":      c.Theme(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "imports.enabled":
		return c.Imports.Enabled != nil
	case "imports.max_depth":
		return c.Imports.MaxDepth != nil
	case "render.theme":
		return c.Render.Theme != ""
	default:
		return false
	}
}
