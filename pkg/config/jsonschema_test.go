// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"testing"
)

func decodeSchema(t *testing.T, scope *ConfigScope) map[string]interface{} {
	t.Helper()
	data, err := GenerateJSONSchemaForScope(scope)
	if err != nil {
		t.Fatalf("GenerateJSONSchemaForScope() error = %v", err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	return out
}

func TestGenerateJSONSchema_AllKeys(t *testing.T) {
	schema := decodeSchema(t, nil)

	if schema["$schema"] != "https://json-schema.org/draft/2020-12/schema" {
		t.Errorf("unexpected $schema: %v", schema["$schema"])
	}

	props := schema["properties"].(map[string]interface{})
	for _, key := range []string{"use-tui", "log-level", "feature-flags", "experiments", "links"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}

	links := props["links"].(map[string]interface{})["properties"].(map[string]interface{})
	docs := links["docs"].(map[string]interface{})
	if docs["format"] != "uri" {
		t.Errorf("links.docs format = %v, want uri", docs["format"])
	}
}

func TestGenerateJSONSchema_RepoScopeOmitsForbidden(t *testing.T) {
	scope := ScopeRepo
	props := decodeSchema(t, &scope)["properties"].(map[string]interface{})

	if _, ok := props["feature-flags"]; ok {
		t.Error("repo schema should not contain feature-flags")
	}
	if _, ok := props["experiments"]; ok {
		t.Error("repo schema should not contain experiments")
	}
	if _, ok := props["links"]; !ok {
		t.Error("repo schema should contain links")
	}
}

func TestGenerateJSONSchema_UserScopeTitle(t *testing.T) {
	scope := ScopeUser
	schema := decodeSchema(t, &scope)
	if schema["title"] != "Kiln User Configuration" {
		t.Errorf("title = %v", schema["title"])
	}
}
