package server

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vango-dev/mdx"
	"github.com/vango-dev/mdx/pkg/middleware"
	"github.com/vango-dev/mdx/pkg/render"
)

// ServerConfig holds configuration for the preview server.
type ServerConfig struct {
	// Address is the address to listen on (e.g., ":8080" or "localhost:4000").
	// Default: "localhost:4000".
	Address string

	// Dir is the documents directory. Ignored when FS is set.
	// Default: ".".
	Dir string

	// FS is the file system documents are read from.
	// Default: os.DirFS(Dir).
	FS fs.FS

	// Engine renders documents.
	// Default: mdx.New().
	Engine *mdx.Engine

	// Handler renders components.
	// Default: render.NopHandler.
	Handler render.Handler

	// Page styling

	// Lang is the html lang attribute. Default: "en".
	Lang string

	// StyleSheets are linked from every page.
	StyleSheets []string

	// Styles are inlined into every page.
	Styles []string

	// Observability

	// Logger is the structured logger for the server.
	// Default: slog.Default().
	Logger *slog.Logger

	// Metrics records document renders when set.
	Metrics *middleware.Metrics

	// Gatherer backs the /metrics endpoint.
	// Default: prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer

	// Server lifecycle

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout limits the time to read request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// WriteTimeout limits the time to render and write a response.
	// Default: 30 seconds.
	WriteTimeout time.Duration

	// IdleTimeout limits keep-alive connections.
	// Default: 60 seconds.
	IdleTimeout time.Duration
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:4000",
		Dir:               ".",
		Lang:              "en",
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Clone returns a shallow copy of the ServerConfig.
func (c *ServerConfig) Clone() *ServerConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults returns a copy of c with unset fields filled in.
func (c *ServerConfig) withDefaults() *ServerConfig {
	defaults := DefaultServerConfig()
	if c == nil {
		return defaults
	}
	out := c.Clone()
	if out.Address == "" {
		out.Address = defaults.Address
	}
	if out.Dir == "" {
		out.Dir = defaults.Dir
	}
	if out.Lang == "" {
		out.Lang = defaults.Lang
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = defaults.WriteTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = defaults.IdleTimeout
	}
	return out
}
