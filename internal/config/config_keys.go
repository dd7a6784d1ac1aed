// config_keys.go provides string-keyed access to configuration for the CLI
// and MCP, where settings are addressed as "limits.max_content" etc.
//
// Optional fields are pointers so "not set" (nil) is distinguishable from an
// explicit value; defaults only apply to unset fields.

package config

import (
	"fmt"
	"slices"
	"strconv"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"author.name", "author.email",
		"limits.max_title", "limits.max_path", "limits.max_content",
		"search.max_results",
		"pages.template",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	if !IsValidKey(key) {
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.All()[key], nil
}

func positiveInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
	}
	return n, nil
}

// Set sets the value of a configuration key. Bounds are checked by Validate.
func (c *Config) Set(key, value string) error {
	switch key {
	case "author.name":
		c.Author.Name = value
	case "author.email":
		c.Author.Email = value
	case "limits.max_title":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxTitle = &n
	case "limits.max_path":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Limits.MaxPath = &n
	case "limits.max_content":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", ErrInvalidValue, key)
		}
		c.Limits.MaxContent = &n
	case "search.max_results":
		n, err := positiveInt(key, value)
		if err != nil {
			return err
		}
		c.Search.MaxResults = &n
	case "pages.template":
		if value != TemplateMarkdown && value != TemplateHTML {
			return fmt.Errorf("%w: %s must be %s or %s", ErrInvalidValue, key, TemplateMarkdown, TemplateHTML)
		}
		c.Pages.Template = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

// All returns all configuration values as a map, defaults included.
func (c *Config) All() map[string]string {
	return map[string]string{
		"author.name":        c.Author.Name,
		"author.email":       c.Author.Email,
		"limits.max_title":   strconv.Itoa(c.MaxTitle()),
		"limits.max_path":    strconv.Itoa(c.MaxPath()),
		"limits.max_content": strconv.FormatInt(c.MaxContent(), 10),
		"search.max_results": strconv.Itoa(c.MaxResults()),
		"pages.template":     c.Template(),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "author.name":
		return c.Author.Name != ""
	case "author.email":
		return c.Author.Email != ""
	case "limits.max_title":
		return c.Limits.MaxTitle != nil
	case "limits.max_path":
		return c.Limits.MaxPath != nil
	case "limits.max_content":
		return c.Limits.MaxContent != nil
	case "search.max_results":
		return c.Search.MaxResults != nil
	case "pages.template":
		return c.Pages.Template != ""
	default:
		return false
	}
}
