package cli

import (
	"fmt"

	"github.com/Project-Sylos/Mimic/internal/config"
	"github.com/Project-Sylos/Mimic/internal/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configFlag      = "config"
	logLevelFlag    = "log-level"
	logEncodingFlag = "log-encoding"
)

// NewRootCommand builds the mimic command tree. Every invocation gets its own
// viper instance so flags of one run never leak into another.
func NewRootCommand() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:   "mimic",
		Short: "Synthetic backup corpus generator",
		Long: `Mimic writes many near-identical copies of a seed directory tree so that
deduplicating backup tools can be exercised against a large, predictable corpus.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return readConfigFile(v, cmd)
		},
	}

	ff := root.PersistentFlags()
	ff.StringP(configFlag, "c", "", "Configuration file (JSON or YAML)")
	ff.String(logLevelFlag, "info", "Log level (debug, info, warn, error)")
	ff.String(logEncodingFlag, "console", "Log encoding (console, json)")
	bindFlags(v, ff, map[string]string{
		"logger.level":    logLevelFlag,
		"logger.encoding": logEncodingFlag,
	})

	root.AddCommand(
		newGenerateCommand(v),
		newSeedCommand(v),
		newVersionCommand(),
	)

	return root
}

func readConfigFile(v *viper.Viper, cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString(configFlag)
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// bindFlags maps config keys to flags of ff.
func bindFlags(v *viper.Viper, ff *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		_ = v.BindPFlag(key, ff.Lookup(name))
	}
}

// loadConfig decodes the layered configuration, applying positional
// overrides last.
func loadConfig(v *viper.Viper, overrides map[string]string) (*types.Config, error) {
	for key, val := range overrides {
		if val != "" {
			v.Set(key, val)
		}
	}
	return config.FromViper(v)
}
