// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
)

// Keys read by the guide
const (
	FeatureFlagsKey       = "feature-flags"
	ExperimentsEnabledKey = "experiments.enabled"
	LinkDocsKey           = "links.docs"
	LinkSourceKey         = "links.source"
	LinkHardwareKey       = "links.hardware"
	LinkSupportKey        = "links.support"
)

// ScopeConstraints defines per-scope validation rules for a configuration key
type ScopeConstraints struct {
	Forbidden  bool     // If true, this key cannot be set in this scope
	EnumValues []string // Valid enum values for this scope (overrides global EnumValues if set)
	Pattern    string   // Regex pattern for this scope (overrides global Pattern if set)
}

// ConfigKeyDefinition defines metadata for a configuration key
type ConfigKeyDefinition struct {
	Key         string      // Configuration key (dot notation)
	Type        string      // "string", "bool", "enum", "json", "url"
	Default     interface{} // Default value
	Description string      // Help text

	EnumValues []string // Valid values for enum type (if Type="enum")
	Pattern    string   // Regex pattern for validation (if Type="string")

	UserConstraints *ScopeConstraints // Constraints when setting in user config
	RepoConstraints *ScopeConstraints // Constraints when setting in repo config
}

// ConfigRegistry holds all known configuration keys.
//
// Keys without constraints may be set in either scope. A Forbidden
// constraint keeps a key out of one scope; precedence still resolves
// conflicts when a file carries it anyway.
var ConfigRegistry = map[string]ConfigKeyDefinition{
	"use-tui": {
		Key:         "use-tui",
		Type:        "bool",
		Default:     true,
		Description: "Use the interactive wizard when stdin is a terminal",
	},

	"log-level": {
		Key:         "log-level",
		Type:        "enum",
		Default:     "info",
		Description: "Log verbosity level",
		EnumValues:  []string{"disabled", "debug", "info", "warn", "error"},
	},

	FeatureFlagsKey: {
		Key:         FeatureFlagsKey,
		Type:        "json",
		Default:     "",
		Description: `Feature flags as a JSON object, e.g. {"advanced": true}`,
		RepoConstraints: &ScopeConstraints{
			Forbidden: true,
		},
	},

	ExperimentsEnabledKey: {
		Key:         ExperimentsEnabledKey,
		Type:        "bool",
		Default:     false,
		Description: "Let feature flags take effect",
		RepoConstraints: &ScopeConstraints{
			Forbidden: true,
		},
	},

	LinkDocsKey: {
		Key:         LinkDocsKey,
		Type:        "url",
		Default:     "",
		Description: "Absolute URL of the trusted OS documentation",
	},

	LinkSourceKey: {
		Key:         LinkSourceKey,
		Type:        "url",
		Default:     "",
		Description: "Absolute URL of the build manifest repository",
	},

	LinkHardwareKey: {
		Key:         LinkHardwareKey,
		Type:        "url",
		Default:     "",
		Description: "Absolute URL of the board hardware documentation",
	},

	LinkSupportKey: {
		Key:         LinkSupportKey,
		Type:        "url",
		Default:     "",
		Description: "Absolute URL of the support forum or issue tracker",
	},
}

// GetKeyDefinition returns the definition for a key, or nil if not found
func GetKeyDefinition(key string) *ConfigKeyDefinition {
	if def, ok := ConfigRegistry[key]; ok {
		return &def
	}
	return nil
}

// scopeConstraints picks the constraints that apply to scope
func (def ConfigKeyDefinition) scopeConstraints(scope ConfigScope) *ScopeConstraints {
	if scope == ScopeUser {
		return def.UserConstraints
	}
	return def.RepoConstraints
}

// ValidateKeyScope checks if a key can be set in the given scope
func ValidateKeyScope(key string, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	constraints := def.scopeConstraints(scope)
	if constraints == nil || !constraints.Forbidden {
		return nil
	}

	if scope == ScopeUser {
		return fmt.Errorf(
			"key '%s' cannot be set in user config\n\n"+
				"Hint: Remove --global flag:\n"+
				"  kiln config set %s <value>",
			key, key,
		)
	}
	return fmt.Errorf(
		"key '%s' cannot be set in repo config (operator preference)\n\n"+
			"Hint: Use --global flag:\n"+
			"  kiln config set --global %s <value>",
		key, key,
	)
}

// ValidateValue checks if a value is valid for the given key in the specified scope
func ValidateValue(key string, value interface{}, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	constraints := def.scopeConstraints(scope)

	switch def.Type {
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("key '%s' must be a boolean", key)
		}

	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}
		pattern := def.Pattern
		if constraints != nil && constraints.Pattern != "" {
			pattern = constraints.Pattern
		}
		if pattern != "" {
			matched, err := regexp.MatchString(pattern, str)
			if err != nil {
				return fmt.Errorf("pattern validation error: %w", err)
			}
			if !matched {
				return fmt.Errorf("key '%s' value '%s' does not match required format for %s scope",
					key, str, getScopeName(scope))
			}
		}

	case "enum":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}
		enumValues := def.EnumValues
		if constraints != nil && constraints.EnumValues != nil {
			enumValues = constraints.EnumValues
		}
		if !slices.Contains(enumValues, str) {
			return fmt.Errorf("key '%s' must be one of %v in %s scope (got '%s')",
				key, enumValues, getScopeName(scope), str)
		}

	case "json":
		switch v := value.(type) {
		case map[string]interface{}:
		case string:
			var obj map[string]interface{}
			if err := json.Unmarshal([]byte(v), &obj); err != nil {
				return fmt.Errorf("key '%s' must be a JSON object: %w", key, err)
			}
		default:
			return fmt.Errorf("key '%s' must be a JSON object", key)
		}

	case "url":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}
		if str == "" {
			return nil // unset means the link is omitted
		}
		if _, ok := ValidateAbsoluteURL(str); !ok {
			return fmt.Errorf("key '%s' must be an absolute URL with a host (got '%s')", key, str)
		}
	}

	return nil
}
