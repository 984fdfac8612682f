// SPDX-License-Identifier: Apache-2.0
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Feature flag names understood by the guide
const (
	FlagAdvanced = "advanced" // include advanced content sections
)

// FeatureFlags is a free-form flag name -> value map
type FeatureFlags map[string]interface{}

// Enabled reports whether the named flag holds a truthy value
func (f FeatureFlags) Enabled(name string) bool {
	v, ok := f[strings.ToLower(name)]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "on", "yes", "1", "enabled":
			return true
		}
		return false
	default:
		n, err := cast.ToFloat64E(val)
		return err == nil && n != 0
	}
}

// ResourceLinks holds the optional external URLs. Empty fields mean the
// link is omitted.
type ResourceLinks struct {
	Docs     string
	Source   string
	Hardware string
	Support  string
}

// GuideSettings is the explicit configuration the step list is built from
type GuideSettings struct {
	FeatureFlags       FeatureFlags
	ExperimentsEnabled bool
	Links              ResourceLinks
}

// FlagEnabled reports whether a feature flag is in effect. Flags are inert
// while experiments are disabled.
func (s GuideSettings) FlagEnabled(name string) bool {
	return s.ExperimentsEnabled && s.FeatureFlags.Enabled(name)
}

// WithFlag returns a copy of s with the named flag set to value. The flag
// map of s is left untouched.
func (s GuideSettings) WithFlag(name string, value bool) GuideSettings {
	flags := make(FeatureFlags, len(s.FeatureFlags)+1)
	for k, v := range s.FeatureFlags {
		flags[k] = v
	}
	flags[strings.ToLower(name)] = value
	s.FeatureFlags = flags
	return s
}

// ParseFeatureFlags decodes a flag set from a JSON object string or an
// already decoded map. On error the returned set is empty and usable.
func ParseFeatureFlags(raw interface{}) (FeatureFlags, error) {
	flags := FeatureFlags{}

	switch v := raw.(type) {
	case nil:
		return flags, nil
	case map[string]interface{}:
		for k, val := range v {
			flags[strings.ToLower(k)] = val
		}
		return flags, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return flags, nil
		}
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return FeatureFlags{}, fmt.Errorf("invalid feature flags: %w", err)
		}
		if obj == nil {
			return FeatureFlags{}, fmt.Errorf("invalid feature flags: expected a JSON object")
		}
		for k, val := range obj {
			flags[strings.ToLower(k)] = val
		}
		return flags, nil
	default:
		return FeatureFlags{}, fmt.Errorf("invalid feature flags: unsupported type %T", raw)
	}
}

// ValidateAbsoluteURL returns the trimmed URL and true when raw is an
// absolute URL with a scheme and a host
func ValidateAbsoluteURL(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}
	return u.String(), true
}

// optionalURL validates a link value, logging and dropping invalid ones
func optionalURL(key, raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	u, ok := ValidateAbsoluteURL(raw)
	if !ok {
		log.Warn("ignoring invalid resource link", "key", key, "value", raw)
		return ""
	}
	return u
}

// NewGuideSettings builds settings from raw values, substituting the
// documented fallbacks (empty flag set, omitted link) for malformed input
func NewGuideSettings(rawFlags interface{}, experiments bool, links ResourceLinks) GuideSettings {
	flags, err := ParseFeatureFlags(rawFlags)
	if err != nil {
		log.Warn("using empty feature flag set", "err", err)
	}

	return GuideSettings{
		FeatureFlags:       flags,
		ExperimentsEnabled: experiments,
		Links: ResourceLinks{
			Docs:     optionalURL(LinkDocsKey, links.Docs),
			Source:   optionalURL(LinkSourceKey, links.Source),
			Hardware: optionalURL(LinkHardwareKey, links.Hardware),
			Support:  optionalURL(LinkSupportKey, links.Support),
		},
	}
}

// LoadGuideSettings reads guide settings from the loaded configuration
func LoadGuideSettings() GuideSettings {
	return NewGuideSettings(
		viper.Get(FeatureFlagsKey),
		viper.GetBool(ExperimentsEnabledKey),
		ResourceLinks{
			Docs:     viper.GetString(LinkDocsKey),
			Source:   viper.GetString(LinkSourceKey),
			Hardware: viper.GetString(LinkHardwareKey),
			Support:  viper.GetString(LinkSupportKey),
		},
	)
}
