// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitViper initializes Viper configuration with defaults and search paths
// Precedence order: ENV > dir-conf > user-conf > defaults
func InitViper() {
	viper.SetConfigType(ConfigType)

	// Defaults come from the registry so `config schema` and runtime agree
	for key, def := range ConfigRegistry {
		viper.SetDefault(key, def.Default)
	}

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

// LoadConfig reads config files in precedence order
// Precedence: ENV > ./kiln.yaml > ~/.config/kiln/config.yaml > defaults
func LoadConfig() error {
	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(GlobalPaths.ConfigDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read user config file: %w", err)
		}
	} else {
		auditConfigFile(getConfigPath(ScopeUser), ScopeUser)
	}

	viper.SetConfigName(LocalConfigFile)
	viper.AddConfigPath(".")

	if err := viper.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read local config file: %w", err)
		}
	} else {
		auditConfigFile(getConfigPath(ScopeRepo), ScopeRepo)
	}

	return nil
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// auditConfigFile logs keys that are unknown, outside their scope, or carry
// invalid values. None of these fail the run: the guide falls back to
// defaults for anything it cannot use.
func auditConfigFile(configPath string, scope ConfigScope) []string {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(ConfigType)
	if err := v.ReadInConfig(); err != nil {
		return nil
	}

	var problems []string
	for _, key := range flattenKeys(v.AllSettings(), "") {
		// feature-flags may be written as a nested map instead of a JSON string
		if strings.HasPrefix(key, FeatureFlagsKey+".") {
			continue
		}
		if err := ValidateKeyScope(key, scope); err != nil {
			log.Debug("config key outside its scope", "file", configPath, "key", key, "err", err)
			problems = append(problems, key)
			continue
		}
		if err := ValidateValue(key, v.Get(key), scope); err != nil {
			log.Debug("config value will be ignored", "file", configPath, "key", key, "err", err)
			problems = append(problems, key)
		}
	}
	return problems
}

// BindFlags binds all relevant cobra flags to Viper
func BindFlags(flags *pflag.FlagSet) error {
	flagsToBind := []string{
		"use-tui",
		"log-level",
	}

	for _, flagName := range flagsToBind {
		if err := viper.BindPFlag(flagName, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	return nil
}
