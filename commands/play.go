package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/penwyp/go-geo-replay/internal/application/replay"
	"github.com/spf13/cobra"
)

var (
	playTickMS      int
	playMetricsAddr string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Animate the replay live in the terminal",
	Long: `Plays the timeline in real time: one month per tick, rendered in place in
the alternate screen buffer. Playback pauses automatically on the final
month. Rewriting any input file reloads the dataset and restarts the
replay; Ctrl+C exits.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().IntVar(&playTickMS, "tick-ms", 0,
		"Auto-advance cadence in milliseconds (0 = configured default)")
	playCmd.Flags().StringVar(&playMetricsAddr, "metrics-addr", "",
		"Expose Prometheus metrics on this address (e.g., :9810)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}
	if playTickMS > 0 {
		cfg.TickMS = playTickMS
	}
	if playMetricsAddr != "" {
		cfg.MetricsAddr = playMetricsAddr
	}
	if err := initRuntime(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return replay.NewOrchestrator(cfg).Run(ctx)
}
