// Package cli wires the utilmon command line to the sampling loop.
package cli

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/utilmon/internal/config"
	apperrors "github.com/Dicklesworthstone/utilmon/internal/errors"
	"github.com/Dicklesworthstone/utilmon/internal/logging"
	"github.com/Dicklesworthstone/utilmon/internal/monitor"
	"github.com/Dicklesworthstone/utilmon/internal/sampler"
)

// NewRootCommand builds the utilmon command around src. Flag parsing is left
// to config.Parse: positional values are only honoured in leading position
// and unknown arguments are ignored.
func NewRootCommand(src sampler.CounterSource, log zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "utilmon [samples] [tdelay] [--memory] [--cpu] [--cores] [--samples=N] [--tdelay=N] [--live]",
		Short: "Sample memory and CPU utilization and draw ASCII trend graphs",
		Long: `utilmon samples system memory, CPU utilization and core topology at a fixed
interval and redraws ASCII trend graphs after every sample. Averages are
printed once the run ends.

Examples:
  utilmon                      # 20 samples every 0.5s, all metrics
  utilmon 60 1000000 --cpu     # 60 CPU samples, one per second
  utilmon --memory --samples=5 --tdelay=200000`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Parse(args)
			log.Debug().
				Int("samples", cfg.Samples).
				Int64("tdelay_us", cfg.DelayMicros()).
				Bool("memory", cfg.ShowMemory).
				Bool("cpu", cfg.ShowCPU).
				Bool("cores", cfg.ShowCores).
				Msg("starting")

			m := monitor.New(cfg, src, monitor.WithLogger(log))
			if cfg.Live {
				return m.RunLive(cmd.Context(), cmd.OutOrStdout())
			}
			return m.Run(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

// Execute runs utilmon with args and returns the process exit code.
func Execute(args []string) int {
	log := logging.New(os.Stderr)
	cmd := NewRootCommand(sampler.New(log), log)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("utilmon aborted")
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}
