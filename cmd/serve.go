package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/prospectlab/milbstats/internal/pbpstore"
	"github.com/prospectlab/milbstats/internal/registry"
	"github.com/prospectlab/milbstats/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve monthly stats and player search over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	store := pbpstore.New(dataDir)

	// The search endpoint needs the index, but the stats endpoints work
	// without it.
	var reg *registry.DB
	if _, err := os.Stat(registryPath()); err == nil {
		reg, err = registry.Open(registryPath())
		if err != nil {
			fmt.Fprintf(os.Stderr, "[warn] player index unavailable: %v\n", err)
			reg = nil
		}
	} else {
		fmt.Fprintln(os.Stderr, "[warn] no player index; /api/search disabled until 'milbstats index' runs")
	}
	if reg != nil {
		defer reg.Close()
	}

	srv := server.New(store, reg, serveAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	fmt.Printf("Serving on %s (data: %s)\n", serveAddr, dataDir)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	fmt.Println("Server stopped")
	return nil
}
