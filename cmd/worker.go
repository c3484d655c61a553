package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bidquo/rfq-marketplace/internal/core/events"
	"github.com/bidquo/rfq-marketplace/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start and manage background workers, e.g. the delegation audit stream.`,
}

var eventWorkerCmd = &cobra.Command{
	Use:   "events",
	Short: "Start the delegation audit worker",
	Long:  `Subscribe a structured-log audit handler to the delegation event stream`,
	Run: func(cmd *cobra.Command, args []string) {
		startEventWorker()
	},
}

func startEventWorker() {
	cfg, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Observability.Logging.Format, cfg.Observability.Logging.Level)
	lg := logger.LoggerWrapper()

	eventBus := events.NewEventBus(lg)
	events.RegisterAuditLogger(eventBus, lg)

	lg.Info("delegation audit worker started. Waiting for events...")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down audit worker", "signal", sig)
}

func init() {
	workerCmd.AddCommand(eventWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
