package main

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"os"

	"github.com/vango-dev/mdx"
	"github.com/vango-dev/mdx/internal/config"
	"github.com/vango-dev/mdx/internal/errors"
	"github.com/vango-dev/mdx/pkg/components"
	"github.com/vango-dev/mdx/pkg/markdown"
	"github.com/vango-dev/mdx/pkg/middleware"
	"github.com/vango-dev/mdx/pkg/render"
)

// errReported is returned after a command has already printed its errors.
var errReported = stderrors.New("errors reported")

// loadConfig reads the config file at path, or mdx.json from the working
// directory tree when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFromWorkingDir()
}

// mergeComponents adds the templates in the JSON file at path to cfg,
// replacing templates of the same name. An empty path is a no-op.
func mergeComponents(cfg *config.Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New("E131").WithDetail("Could not read " + path + ".").Wrap(err)
	}
	var templates map[string]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return errors.New("E131").WithDetail(path + " is not a JSON object of name to template.").Wrap(err)
	}
	if cfg.Components == nil {
		cfg.Components = make(map[string]string, len(templates))
	}
	for name, src := range templates {
		cfg.Components[name] = src
	}
	return cfg.Validate()
}

// newLogger returns a text logger on w at level, or Debug when verbose.
func newLogger(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newEngine builds the pipeline from cfg. A positive concurrency
// overrides render.concurrency.
func newEngine(cfg *config.Config, logger *slog.Logger, concurrency int) *mdx.Engine {
	if concurrency <= 0 {
		concurrency = cfg.Render.Concurrency
	}
	return mdx.New(
		mdx.WithCompiler(markdown.New(markdown.WithOptions(cfg.MarkdownOptions()))),
		mdx.WithConcurrency(concurrency),
		mdx.WithLogger(logger),
	)
}

// newHandler builds the component handler for the configured templates,
// wrapped with the standard middleware and any extra.
func newHandler(cfg *config.Config, logger *slog.Logger, extra ...middleware.Middleware) (render.Handler, error) {
	var opts []components.RegistryOption
	if cfg.Render.Strict {
		opts = append(opts, components.Strict())
	}
	registry := components.NewRegistry(opts...)
	if err := registry.RegisterTemplates(cfg.Components); err != nil {
		return nil, errors.New("E130").WithDetail(err.Error()).Wrap(err)
	}

	mw := []middleware.Middleware{
		middleware.Recover(),
		middleware.Logging(logger),
	}
	mw = append(mw, extra...)
	mw = append(mw, middleware.Timeout(cfg.HandlerTimeout()))
	return middleware.Chain(registry, mw...), nil
}

// readInput reads a document from path, or stdin for "-" or "".
func readInput(path string, stdin io.Reader) (string, string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "<stdin>", errors.New("E140").Wrap(err)
		}
		return string(data), "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", path, errors.New("E140").WithDetail("Could not read " + path + ".").Wrap(err)
	}
	return string(data), path, nil
}
