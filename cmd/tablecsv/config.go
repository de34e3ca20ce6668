// Config loading for the tablecsv CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "tablecsv"
	configFileType = "yaml"
	envPrefix      = "TABLECSV"

	cfgKeyTrim     = "trim"
	cfgKeyDatabase = "database"
	cfgKeyLogLevel = "log_level"

	flagLogLevel = "log-level"

	defaultDatabaseFile = "tables.db"
	defaultLogLevel     = "warn"
)

// configFlags maps config keys to the flags that override them.
var configFlags = map[string]string{
	cfgKeyTrim:     cfgKeyTrim,
	cfgKeyDatabase: cfgKeyDatabase,
	cfgKeyLogLevel: flagLogLevel,
}

// resolveConfigDir returns dir if set, else ~/.tablecsv.
func resolveConfigDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if env := os.Getenv(envPrefix + "_CONFIG_DIR"); env != "" {
		return env, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".tablecsv"), nil
}

// loadConfig reads tablecsv.yaml from configDir using Viper, layered under
// environment variables and the command's flags. A missing config file is
// not an error.
func loadConfig(configDir string, cmd *cobra.Command) (*viper.Viper, error) {
	flags := cmd.Flags()
	v := viper.New()
	v.SetDefault(cfgKeyTrim, false)
	v.SetDefault(cfgKeyDatabase, filepath.Join(configDir, defaultDatabaseFile))
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, flag := range configFlags {
		if f := flags.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}
