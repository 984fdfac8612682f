// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"strings"
)

// JSONSchema represents a JSON Schema Draft 2020-12 document
type JSONSchema struct {
	Schema               string                 `json:"$schema"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	Type                 string                 `json:"type"`
	Properties           map[string]interface{} `json:"properties"`
	AdditionalProperties bool                   `json:"additionalProperties"`
}

// JSONSchemaProperty represents a property in the JSON Schema
type JSONSchemaProperty struct {
	Type        interface{}            `json:"type,omitempty"`
	Description string                 `json:"description,omitempty"`
	Default     interface{}            `json:"default,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Pattern     string                 `json:"pattern,omitempty"`
	Format      string                 `json:"format,omitempty"`
	Properties  map[string]interface{} `json:"properties,omitempty"`
}

// GenerateJSONSchemaForScope generates a JSON Schema filtered by scope.
// Pass nil to include all keys.
func GenerateJSONSchemaForScope(scope *ConfigScope) ([]byte, error) {
	title := "Kiln Configuration"
	description := "Configuration schema for the kiln guide"

	if scope != nil {
		if *scope == ScopeUser {
			title = "Kiln User Configuration"
			description = "User-specific configuration (operator preferences)"
		} else {
			title = "Kiln Repo Configuration"
			description = "Directory-specific configuration (./kiln.yaml)"
		}
	}

	schema := JSONSchema{
		Schema:               "https://json-schema.org/draft/2020-12/schema",
		Title:                title,
		Description:          description,
		Type:                 "object",
		Properties:           make(map[string]interface{}),
		AdditionalProperties: false,
	}

	for _, def := range ConfigRegistry {
		if scope != nil {
			if c := def.scopeConstraints(*scope); c != nil && c.Forbidden {
				continue
			}
		}
		addProperty(&schema, def)
	}

	return json.MarshalIndent(schema, "", "  ")
}

// addProperty adds a property to the schema, handling nested keys
func addProperty(schema *JSONSchema, def ConfigKeyDefinition) {
	parts := strings.Split(def.Key, ".")

	current := schema.Properties
	for _, part := range parts[:len(parts)-1] {
		if _, exists := current[part]; !exists {
			current[part] = &JSONSchemaProperty{
				Type:       "object",
				Properties: make(map[string]interface{}),
			}
		}
		current = current[part].(*JSONSchemaProperty).Properties
	}

	current[parts[len(parts)-1]] = buildProperty(def)
}

// buildProperty creates a JSONSchemaProperty from a ConfigKeyDefinition
func buildProperty(def ConfigKeyDefinition) *JSONSchemaProperty {
	prop := &JSONSchemaProperty{
		Description: def.Description,
		Default:     def.Default,
	}

	switch def.Type {
	case "bool":
		prop.Type = "boolean"
	case "string":
		prop.Type = "string"
		prop.Pattern = def.Pattern
	case "enum":
		prop.Type = "string"
		prop.Enum = def.EnumValues
	case "json":
		// JSON text in env vars, a mapping in YAML files
		prop.Type = []string{"string", "object"}
	case "url":
		prop.Type = "string"
		prop.Format = "uri"
	}

	return prop
}
