package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/getstitchd/stitchd/pkg/config"
	"github.com/getstitchd/stitchd/pkg/graphql"
)

var (
	serveAddr      string
	serveLogLevel  string
	serveLogFormat string
)

// shutdownTimeout bounds graceful shutdown of the gateway server.
const shutdownTimeout = 10 * time.Second

// serveCmd stitches the configured endpoints and runs the gateway server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stitch the configured endpoints and serve the gateway",
	Long: `Stitch the configured endpoints and serve queries against the stitched
schema. Incoming queries are forwarded to the upstream endpoint and the
responses are shaped through the stitched types.`,
	Example: `  # Serve with defaults (listens on :4480)
  stitchd serve --config stitchd.yaml

  # Custom listen address and debug logging
  stitchd serve --addr :8080 --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides serve.addr)")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log.level)")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "", "Log format: text, json (overrides log.format)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Serve.Addr = serveAddr
	}
	if serveLogLevel != "" {
		cfg.Log.Level = serveLogLevel
	}
	if serveLogFormat != "" {
		cfg.Log.Format = serveLogFormat
	}
	logger := buildLogger(cfg)

	stitcher, endpoints, err := buildStitcher(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := stitcher.Stitch(ctx, endpoints...); err != nil {
		return err
	}

	upCfg, upEndpoint := upstreamEndpoint(cfg)

	rootName := cfg.Serve.RootType
	if rootName == "" {
		schema, err := stitcher.Schema(ctx, upEndpoint)
		if err != nil {
			return err
		}
		rootName = schema.QueryTypeName()
	}
	root := stitcher.Type(upEndpoint, rootName)

	executor := graphql.NewExecutor(root, logger)
	handler := graphql.NewHandler(executor, upCfg.URL, graphql.HandlerOptions{
		Headers: upCfg.Headers,
		Logger:  logger,
	})

	mux := http.NewServeMux()
	mux.Handle(cfg.Serve.Path, handler)

	srv := &http.Server{
		Addr:    cfg.Serve.Addr,
		Handler: mux,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("gateway listening",
			"addr", cfg.Serve.Addr,
			"path", cfg.Serve.Path,
			"upstream", upEndpoint.Identifier(),
			"rootType", root.Name())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
