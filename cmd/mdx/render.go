package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vango-dev/mdx/internal/errors"
	"github.com/vango-dev/mdx/pkg/render"
)

type renderOptions struct {
	output      string
	configPath  string
	components  string
	concurrency int
	page        bool
	verbose     bool
}

func renderCmd() *cobra.Command {
	var opts renderOptions

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a document to HTML",
		Long: `Render a markdown document with custom components to HTML.

Reads from stdin when no file or "-" is given. Components are the
templates listed under "components" in mdx.json, extended or overridden
by a JSON file of tag to template given with --components.

Examples:
  mdx render intro.md
  mdx render intro.md -o intro.html --page
  cat intro.md | mdx render --concurrency 4
  mdx render intro.md --components badges.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, path, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write HTML to file instead of stdout")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to mdx.json (default: search from working directory)")
	cmd.Flags().StringVar(&opts.components, "components", "", "JSON file mapping component names to templates")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Sibling render concurrency (default from mdx.json)")
	cmd.Flags().BoolVar(&opts.page, "page", false, "Wrap the output in a complete HTML page")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log component rendering to stderr")

	return cmd
}

func runRender(cmd *cobra.Command, path string, opts renderOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := mergeComponents(cfg, opts.components); err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), slog.LevelWarn, opts.verbose)

	handler, err := newHandler(cfg, logger)
	if err != nil {
		return err
	}
	engine := newEngine(cfg, logger, opts.concurrency)

	source, name, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	doc, err := engine.RenderDocument(ctx, source, handler)
	if err != nil {
		return errors.FromRenderError(err, name, source)
	}

	html := doc.HTML
	if opts.page {
		title, _ := doc.Frontmatter.String("title")
		if title == "" && path != "" && path != "-" {
			title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		var buf bytes.Buffer
		if err := render.RenderPage(&buf, render.PageData{Body: html, Title: title}); err != nil {
			return err
		}
		html = buf.String()
	} else {
		html += "\n"
	}

	return writeOutput(cmd.OutOrStdout(), opts.output, html)
}

func writeOutput(stdout io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Newf(errors.CategoryCLI, "write %s: %v", path, err).Wrap(err)
	}
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
