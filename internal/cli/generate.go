package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Project-Sylos/Mimic/internal/generator"
	"github.com/Project-Sylos/Mimic/sdk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	copiesFlag    = "copies"
	blockSizeFlag = "block-size"
	progressFlag  = "progress"
	manifestFlag  = "manifest"
	dbPathFlag    = "db-path"
)

func newGenerateCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [source] [destination]",
		Short: "Write perturbed copies of a seed tree",
		Long: `Loads every file under source once and writes the requested number of
copies into destination/0, destination/1, ... Each copy of a content file is
split into segments, each followed by an 8-byte marker holding the copy index.
A file named "sparse" is recreated as a hole of the same apparent size.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]string{}
			if len(args) > 0 {
				overrides["source"] = args[0]
			}
			if len(args) > 1 {
				overrides["destination"] = args[1]
			}

			cfg, err := loadConfig(v, overrides)
			if err != nil {
				return err
			}

			m, err := sdk.New(cfg, sdk.WithOutput(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			defer m.Close()

			ctx, stop := interruptContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, err = m.Run(ctx)
			return err
		},
	}

	ff := cmd.Flags()
	ff.IntP(copiesFlag, "n", 5000, "Number of copies to write")
	ff.IntP(blockSizeFlag, "b", generator.DefaultBlockSize, "Segment size in bytes")
	ff.Bool(progressFlag, false, "Show a progress bar instead of per-copy lines")
	ff.Bool(manifestFlag, false, "Record the run in the manifest database")
	ff.String(dbPathFlag, "./mimic.db", "Manifest database path")
	bindFlags(v, ff, map[string]string{
		"copies":           copiesFlag,
		"block_size":       blockSizeFlag,
		"progress":         progressFlag,
		"manifest.enabled": manifestFlag,
		"manifest.db_path": dbPathFlag,
	})

	return cmd
}

// interruptContext is cancelled by the first of sigs. Default handling is
// restored right after, so a second signal terminates the process.
func interruptContext(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(parent, sigs...)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}
