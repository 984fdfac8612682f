// SPDX-License-Identifier: Apache-2.0
package config

import (
	"testing"
)

func TestParseFeatureFlags(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		wantErr  bool
		advanced bool
	}{
		{"nil", nil, false, false},
		{"empty string", "", false, false},
		{"blank string", "   ", false, false},
		{"empty object", "{}", false, false},
		{"advanced true", `{"advanced": true}`, false, true},
		{"advanced mixed case key", `{"Advanced": true}`, false, true},
		{"advanced string on", `{"advanced": "on"}`, false, true},
		{"advanced number", `{"advanced": 1}`, false, true},
		{"advanced zero", `{"advanced": 0}`, false, false},
		{"advanced false", `{"advanced": false}`, false, false},
		{"decoded map", map[string]interface{}{"advanced": true}, false, true},
		{"malformed", `{"advanced": tru`, true, false},
		{"array", `["advanced"]`, true, false},
		{"null", `null`, true, false},
		{"unsupported type", 12, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := ParseFeatureFlags(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFeatureFlags() error = %v, wantErr %v", err, tt.wantErr)
			}
			if flags == nil {
				t.Fatal("ParseFeatureFlags() must always return a usable set")
			}
			if tt.wantErr && len(flags) != 0 {
				t.Errorf("expected empty fallback set, got %v", flags)
			}
			if got := flags.Enabled(FlagAdvanced); got != tt.advanced {
				t.Errorf("Enabled(advanced) = %v, want %v", got, tt.advanced)
			}
		})
	}
}

func TestFeatureFlags_UnknownFlag(t *testing.T) {
	flags := FeatureFlags{"advanced": true}
	if flags.Enabled("something-else") {
		t.Error("unknown flags should be disabled")
	}
}

func TestValidateAbsoluteURL(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want string
	}{
		{"https://optee.readthedocs.io/en/latest/", true, "https://optee.readthedocs.io/en/latest/"},
		{"  http://example.com/path  ", true, "http://example.com/path"},
		{"ftp://mirror.example.org/optee/", true, "ftp://mirror.example.org/optee/"},
		{"", false, ""},
		{"not a url", false, ""},
		{"example.com", false, ""},
		{"/relative/path", false, ""},
		{"mailto:someone@example.com", false, ""},
		{"file:///etc/passwd", false, ""},
		{"https://", false, ""},
		{"http://[::1", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ValidateAbsoluteURL(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ValidateAbsoluteURL(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ValidateAbsoluteURL(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNewGuideSettings_Fallbacks(t *testing.T) {
	s := NewGuideSettings(`{broken`, true, ResourceLinks{
		Docs:     "https://optee.readthedocs.io/",
		Source:   "github.com/OP-TEE/build",
		Hardware: "",
		Support:  "javascript:alert(1)",
	})

	if len(s.FeatureFlags) != 0 {
		t.Errorf("expected empty flag set, got %v", s.FeatureFlags)
	}
	if s.Links.Docs != "https://optee.readthedocs.io/" {
		t.Errorf("Docs = %q, want valid URL kept", s.Links.Docs)
	}
	if s.Links.Source != "" {
		t.Errorf("Source = %q, want invalid URL dropped", s.Links.Source)
	}
	if s.Links.Hardware != "" {
		t.Errorf("Hardware = %q, want empty", s.Links.Hardware)
	}
	if s.Links.Support != "" {
		t.Errorf("Support = %q, want invalid URL dropped", s.Links.Support)
	}
}

func TestGuideSettings_FlagEnabledRequiresExperiments(t *testing.T) {
	flags := FeatureFlags{"advanced": true}

	off := GuideSettings{FeatureFlags: flags, ExperimentsEnabled: false}
	if off.FlagEnabled(FlagAdvanced) {
		t.Error("flags should be inert while experiments are disabled")
	}

	on := GuideSettings{FeatureFlags: flags, ExperimentsEnabled: true}
	if !on.FlagEnabled(FlagAdvanced) {
		t.Error("advanced flag should be in effect with experiments enabled")
	}
}

func TestGuideSettings_WithFlagCopies(t *testing.T) {
	orig := GuideSettings{FeatureFlags: FeatureFlags{"beta": "on"}, ExperimentsEnabled: true}

	next := orig.WithFlag("Advanced", true)

	if !next.FlagEnabled(FlagAdvanced) {
		t.Error("expected advanced flag in the copy")
	}
	if !next.FeatureFlags.Enabled("beta") {
		t.Error("expected existing flags to carry over")
	}
	if _, ok := orig.FeatureFlags[FlagAdvanced]; ok {
		t.Error("original flag set should be unchanged")
	}
}
