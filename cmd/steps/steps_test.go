// SPDX-License-Identifier: Apache-2.0
package steps

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Work-Fort/Kiln/pkg/config"
	"github.com/Work-Fort/Kiln/pkg/guide"
	"gopkg.in/yaml.v3"
)

// run executes the steps command with args and returns its stdout
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewStepsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, id := range []string{"overview", "prerequisites", "sources", "build", "flash", "boot", "verify"} {
		if !strings.Contains(out, id) {
			t.Errorf("expected list to contain %q", id)
		}
	}
}

func TestShow(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{name: "whole step", args: []string{"show", "flash"}, want: "Identify the card"},
		{name: "one section", args: []string{"show", "prerequisites", "--section", "install-repo"}, want: "git-repo-downloads"},
		{name: "unknown step", args: []string{"show", "deploy"}, wantErr: "unknown step"},
		{name: "unknown section", args: []string{"show", "build", "--section", "nope"}, wantErr: "has no section"},
		{name: "advanced section hidden by default", args: []string{"show", "build", "--section", "debug-builds"}, wantErr: "has no section"},
		{name: "advanced section", args: []string{"show", "build", "--advanced", "--section", "debug-builds"}, want: "CFG_TEE_CORE_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("expected output to contain %q, got:\n%s", tt.want, out)
			}
		})
	}
}

func TestExport_Formats(t *testing.T) {
	t.Run("markdown", func(t *testing.T) {
		out, err := run(t, "export")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.HasPrefix(out, "# "+guide.Title) {
			t.Errorf("expected markdown document title, got %q", firstLine(out))
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "export", "--format", "json")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		var doc exportDocument
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if len(doc.Steps) != 7 || doc.Steps[0].ID != guide.StepOverview {
			t.Errorf("unexpected steps in export: %d", len(doc.Steps))
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "export", "--format", "yaml")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		var doc exportDocument
		if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid yaml: %v", err)
		}
		if doc.Release != guide.Release {
			t.Errorf("expected release %q, got %q", guide.Release, doc.Release)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := run(t, "export", "--format", "pdf"); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}

func TestExport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")

	out, err := run(t, "export", "-o", path)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, "Guide written to") {
		t.Errorf("expected confirmation, got %q", out)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	if !strings.Contains(string(data), "# 7. Verify the TEE") {
		t.Error("expected last step heading in exported file")
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func TestExport_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.json")
	if err := os.WriteFile(path, []byte("keep"), 0644); err != nil {
		t.Fatal(err)
	}

	// use-tui has no default here, so the command never prompts
	if _, err := run(t, "export", "--format", "json", "-o", path); err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("expected refusal mentioning --force, got %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "keep" {
		t.Error("existing file should be untouched")
	}

	if _, err := run(t, "export", "--format", "json", "-o", path, "--force"); err != nil {
		t.Fatalf("forced export failed: %v", err)
	}
	if data, _ := os.ReadFile(path); !strings.HasPrefix(string(data), "{") {
		t.Error("expected file to be overwritten with json")
	}
}

func TestEncodeSteps_RoundTrip(t *testing.T) {
	settings := config.GuideSettings{ExperimentsEnabled: true}.WithFlag(config.FlagAdvanced, true)
	settings.Links.Docs = "https://optee.readthedocs.io/"
	steps := guide.BuildSteps(settings)

	decoders := map[string]func([]byte, interface{}) error{
		"yaml": yaml.Unmarshal,
		"json": json.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			data, err := encodeSteps(steps, format)
			if err != nil {
				t.Fatalf("encodeSteps failed: %v", err)
			}
			var doc exportDocument
			if err := decode(data, &doc); err != nil {
				t.Fatalf("decoding %s export: %v", format, err)
			}
			if !reflect.DeepEqual(doc.Steps, steps) {
				t.Errorf("%s export does not round-trip", format)
			}
		})
	}
}
