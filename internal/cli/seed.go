package cli

import (
	"fmt"

	"github.com/Project-Sylos/Mimic/sdk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSeedCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed [root]",
		Short: "Generate a synthetic seed tree",
		Long: `Writes a deterministic tree of random files under root (the configured
source by default), plus a single hole-only "sparse" file at its top level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(v, nil)
			if err != nil {
				return err
			}
			cfg.Manifest.Enabled = false

			root := cfg.Source
			if len(args) > 0 {
				root = args[0]
			}

			m, err := sdk.New(cfg, sdk.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer m.Close()

			created, err := m.Seed(root)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d files under %s\n", len(created), root)
			return nil
		},
	}

	ff := cmd.Flags()
	ff.Int("files", 32, "Number of content files")
	ff.Int64("min-size", 1, "Minimum content file size in bytes")
	ff.Int64("max-size", 256<<10, "Maximum content file size in bytes")
	ff.Int("depth", 3, "Maximum directory depth")
	ff.Int64("sparse-size", 1<<30, "Apparent size of the sparse file, 0 to skip it")
	ff.Int64("seed", 42, "Random seed")
	bindFlags(v, ff, map[string]string{
		"fixture.files":       "files",
		"fixture.min_size":    "min-size",
		"fixture.max_size":    "max-size",
		"fixture.max_depth":   "depth",
		"fixture.sparse_size": "sparse-size",
		"fixture.seed":        "seed",
	})

	return cmd
}
