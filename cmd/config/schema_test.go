// SPDX-License-Identifier: Apache-2.0
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runConfig(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewConfigCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSchemaCmd_Scopes(t *testing.T) {
	tests := []struct {
		scope       string
		wantFlags   bool
		wantLinkURI bool
	}{
		{"", true, true},
		{"user", true, true},
		{"repo", false, true},
	}

	for _, tt := range tests {
		t.Run("scope="+tt.scope, func(t *testing.T) {
			args := []string{"schema"}
			if tt.scope != "" {
				args = append(args, "--scope", tt.scope)
			}
			out, err := runConfig(t, args...)
			if err != nil {
				t.Fatalf("schema failed: %v", err)
			}

			var doc struct {
				Properties map[string]json.RawMessage `json:"properties"`
			}
			if err := json.Unmarshal([]byte(out), &doc); err != nil {
				t.Fatalf("schema is not JSON: %v", err)
			}
			if _, ok := doc.Properties["feature-flags"]; ok != tt.wantFlags {
				t.Errorf("feature-flags present = %v, want %v", ok, tt.wantFlags)
			}

			links := string(doc.Properties["links"])
			for _, key := range []string{`"docs"`, `"source"`, `"hardware"`, `"support"`} {
				if !strings.Contains(links, key) {
					t.Errorf("links schema missing %s", key)
				}
			}
			if strings.Contains(links, `"format": "uri"`) != tt.wantLinkURI {
				t.Errorf("links schema format uri mismatch: %s", links)
			}
		})
	}
}

func TestSchemaCmd_InvalidScope(t *testing.T) {
	if _, err := runConfig(t, "schema", "--scope", "system"); err == nil {
		t.Fatal("expected error for unknown scope")
	}
}

func TestSchemaCmd_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kiln.schema.json")

	out, err := runConfig(t, "schema", "--scope", "repo", "-o", path)
	if err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	if !strings.Contains(out, "Schema written to "+path) {
		t.Errorf("unexpected output %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("schema file not written: %v", err)
	}
	if strings.Contains(string(data), "experiments") {
		t.Error("repo schema should not describe experiments")
	}
}
