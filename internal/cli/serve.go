package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/existflow/ironboard/internal/api"
	"github.com/existflow/ironboard/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board over a local JSON API",
	Long: `Serve the board over a JSON API on a loopback address until interrupted.

Examples:
  ironboard serve
  ironboard serve --addr 127.0.0.1:9000`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.ServeAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, _, err := openBoard(ctx)
	if err != nil {
		return err
	}
	defer closeStore(store)

	srv := api.New(store)
	fmt.Printf("🌐 Serving %s on http://%s\n", store.Path(), addr)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
