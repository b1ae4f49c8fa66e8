package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	qhttp "croprec/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recommendation page over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := bootstrap(os.Stderr)
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.watchConfig(ctx)

	server, err := qhttp.NewServer(qhttp.ServerConfig{
		Port:         a.config.HTTP.Port,
		Timeout:      a.config.HTTP.Timeout,
		MaxBodyBytes: a.config.HTTP.MaxBodyBytes,
	}, a.service, a.logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	a.logger.Info("shutting down")
	if err := server.Stop(); err != nil {
		a.logger.Error("server forced to shutdown", zap.Error(err))
	}
	a.logger.Info("exiting")
	return nil
}
