package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizzeria/cmd"
	"pizzeria/internal/config"
	"pizzeria/internal/core/application/pizzeria"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const httpShutdownTimeout = 5 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCommand() *cobra.Command {
	var envFile, paramsFile string

	root := &cobra.Command{
		Use:           "pizzeria",
		Short:         "Run the pizzeria order pipeline",
		Long:          "Runs the pizzeria with its HTTP API and background jobs. A line on stdin, SIGINT or SIGTERM closes the pizzeria; the process exits once every accepted order is delivered.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			configs, err := cmd.LoadConfig(envFile)
			if err != nil {
				return err
			}
			if paramsFile != "" {
				configs.ParamsFile = paramsFile
			}
			return run(c.Context(), configs, c.InOrStdin())
		},
	}

	root.Flags().StringVar(&envFile, "env-file", cmd.DefaultEnvFile, "dotenv file with process configuration")
	root.Flags().StringVar(&paramsFile, "params", "", "pizzeria parameters file (overrides PARAMS_FILE)")

	return root
}

func run(ctx context.Context, configs cmd.Config, stdin io.Reader) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: configs.LogLevel}))
	slog.SetDefault(logger)

	params, err := config.Load(configs.ParamsFile)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, params, logger)
	if err != nil {
		return err
	}
	p := app.Pizzeria()

	e, err := app.CreateEcho()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	go closeOnInput(stdin, p, logger)

	logger.Info("Pizzeria started", "http_port", configs.HTTPPort, "params_file", configs.ParamsFile)
	runErr := p.Run(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	if runErr != nil {
		return runErr
	}

	stats := p.Stats()
	logger.Info("Pizzeria drained", "submitted", stats.Submitted, "delivered", stats.Delivered, "storage_peak", stats.StoragePeak)
	return nil
}

// closeOnInput closes the pizzeria after the first line read from r.
func closeOnInput(r io.Reader, p *pizzeria.Pizzeria, logger *slog.Logger) {
	if _, err := bufio.NewReader(r).ReadString('\n'); err != nil {
		return
	}
	logger.Info("Close requested from console")
	p.Close()
}
