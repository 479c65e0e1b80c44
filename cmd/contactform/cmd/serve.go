package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/runvoy/contactform/internal/app"
	"github.com/runvoy/contactform/internal/client/output"
	"github.com/runvoy/contactform/internal/config"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/logger"
	"github.com/runvoy/contactform/internal/server"

	"github.com/spf13/cobra"
)

var (
	servePort   string
	serveDryRun bool
)

// dryRunDefaults fill the required settings when serving without AWS.
var dryRunDefaults = map[string]any{
	"table_name":  "contact-submissions-dev",
	"admin_email": "admin@localhost",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the contact endpoint as a local HTTP server",
	Example: fmt.Sprintf(`  - %s serve
  - %s serve --dry-run --port 8080`, constants.ProjectName, constants.ProjectName),
	RunE: serveRun,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (default from CONTACTFORM_DEV_SERVER_PORT or "+constants.DevServerPort+")")
	serveCmd.Flags().BoolVar(&serveDryRun, "dry-run", false, "Keep submissions in memory and log emails instead of sending them")
	rootCmd.AddCommand(serveCmd)
}

func serveRun(cmd *cobra.Command, _ []string) error {
	var (
		cfg *config.Config
		err error
	)
	if serveDryRun {
		cfg, err = config.LoadWithDefaults(dryRunDefaults)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.GetLogLevel()
	if debug {
		level = logLevel()
	}
	log := logger.Initialize(constants.Development, level)

	var opts []app.Option
	if serveDryRun {
		opts = append(opts, app.WithDryRun())
		output.Warningf("Dry run: submissions are kept in memory and emails are only logged")
	}

	initCtx, cancel := context.WithTimeout(context.Background(), cfg.InitTimeout)
	a, err := app.Initialize(initCtx, cfg, log, opts...)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	port := servePort
	if port == "" {
		port = cfg.Port
	}

	router := server.NewRouter(a.Handler, a.Registry, cfg.RequestTimeout, log)
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router.Handler(),
		ReadTimeout:  constants.ServerReadTimeout,
		WriteTimeout: constants.ServerWriteTimeout,
		IdleTimeout:  constants.ServerIdleTimeout,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		output.Infof("Starting local server on :%s (Ctrl+C to stop)", port)
		output.KeyValue("Contact", fmt.Sprintf("http://localhost:%s%s", port, constants.ContactPath))
		output.KeyValue("Health", fmt.Sprintf("http://localhost:%s%s", port, constants.HealthPath))
		output.KeyValue("Metrics", fmt.Sprintf("http://localhost:%s%s", port, constants.MetricsPath))
		if listenErr := srv.ListenAndServe(); listenErr != nil && !errors.Is(listenErr, http.ErrServerClosed) {
			serveErr <- listenErr
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	output.Infof("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	output.Successf("Server stopped")
	return nil
}
