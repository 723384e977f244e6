package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/vango-dev/mdx/pkg/middleware"
	"github.com/vango-dev/mdx/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve [dir]",
		Short: "Start the preview server",
		Long: `Serve a directory of documents as rendered HTML pages.

Documents are rendered on every request. The server also exposes
/healthz and Prometheus metrics on /metrics.

Examples:
  mdx serve
  mdx serve docs --addr :8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) == 1 {
				dir = args[0]
			}
			return runServe(cmd, dir, addr, configPath, verbose)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from mdx.json)")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to mdx.json (default: search from working directory)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

func runServe(cmd *cobra.Command, dir, addr, configPath string, verbose bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), slog.LevelInfo, verbose)

	metrics := middleware.NewMetrics(middleware.WithRegistry(prometheus.DefaultRegisterer))
	handler, err := newHandler(cfg, logger,
		middleware.OpenTelemetry(),
		metrics.Middleware(),
	)
	if err != nil {
		return err
	}

	if dir == "" {
		dir = cfg.DocumentsPath()
	}
	if addr == "" {
		addr = cfg.Address()
	}

	srv := server.New(&server.ServerConfig{
		Address:  addr,
		Dir:      dir,
		Engine:   newEngine(cfg, logger, 0),
		Handler:  handler,
		Logger:   logger,
		Metrics:  metrics,
		Gatherer: prometheus.DefaultGatherer,
	})

	success(cmd.OutOrStdout(), "Serving %s on http://%s", dir, addr)
	return srv.Run()
}
