package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/shapestone/shape-tablecsv/internal/store"
)

// cli holds state shared by all subcommands for one invocation.
type cli struct {
	configDir string
	cfg       *viper.Viper
	log       *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "tablecsv",
		Short: "tablecsv converts CSV to typed tables and stores them",
		Long: `tablecsv parses CSV into typed rows (integer, float, string, null),
renders typed rows back to CSV, and saves parsed tables in a SQLite database.

Configuration is read from tablecsv.yaml in the config directory and from
TABLECSV_* environment variables; flags take precedence.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configDir, "config-dir", "", "config directory (default: ~/.tablecsv)")
	flags.Bool(cfgKeyTrim, false, "trim whitespace around unquoted fields before type inference")
	flags.String(cfgKeyDatabase, "", "SQLite database path (default: <config-dir>/tables.db)")
	flags.String(flagLogLevel, defaultLogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		newParseCmd(c),
		newFormatCmd(c),
		newImportCmd(c),
		newExportCmd(c),
		newListCmd(c),
		newDeleteCmd(c),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and installs the logger before any subcommand runs.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir(c.configDir)
	if err != nil {
		return err
	}
	c.configDir = configDir

	cfg, err := loadConfig(configDir, cmd)
	if err != nil {
		return err
	}
	c.cfg = cfg

	log, err := newLogger(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		return err
	}
	c.log = log
	store.SetLogger(log.Named("store"))

	log.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("config_file", cfg.ConfigFileUsed()))
	return nil
}
