package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lukmanhakim/user-portal/pkg/logger"
)

var reseedInterval time.Duration

// reseedCmd keeps demo environments usable: it periodically re-applies the
// sample accounts so they survive manual deletion during testing sessions.
var reseedCmd = &cobra.Command{
	Use:   "reseed",
	Short: "Periodically re-apply the sample accounts",
	Long:  `Run a maintenance loop that re-applies the sample accounts on an interval, for demo and testing environments.`,
	Run: func(cmd *cobra.Command, args []string) {
		startReseedLoop()
	},
}

func init() {
	reseedCmd.Flags().DurationVar(&reseedInterval, "interval", 30*time.Minute, "how often to re-apply the sample accounts")
}

func startReseedLoop() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.L()

	db, err := openSeedDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init db: %v\n", err)
		os.Exit(1)
	}

	if err := seedAccounts(db); err != nil {
		lg.Error("initial seed failed", "error", err)
	}

	ticker := time.NewTicker(reseedInterval)
	defer ticker.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("reseed loop is running. Press Ctrl+C to stop.", "interval", reseedInterval.String())

	for {
		select {
		case <-ticker.C:
			if err := seedAccounts(db); err != nil {
				lg.Error("reseed failed", "error", err)
				continue
			}
			lg.Info("sample accounts re-applied")
		case sig := <-sigChan:
			lg.Info("received signal, shutting down reseed loop", "signal", sig.String())
			return
		}
	}
}
