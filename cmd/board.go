package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dockyard/app"
	"github.com/kilianp07/dockyard/infra/logger"
)

var boardHTTP bool

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Run the terminal live board",
	RunE:  runBoard,
}

func init() {
	boardCmd.Flags().BoolVar(&boardHTTP, "http", false, "also serve the dashboard and API")
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// Keep log lines off the board.
	path := cfg.Log.File
	if path == "" {
		path = "dockyard.log"
	}
	w := logger.FileOutput(path, cfg.Log.MaxSizeMB, 3)
	defer func() { _ = w.Close() }()
	logger.SetOutput(w)

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.RunBoard(ctx, boardHTTP)
}
