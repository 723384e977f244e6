package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vango-dev/mdx/internal/errors"
)

func checkCmd() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Check documents for compile and markup errors",
		Long: `Compile and parse documents without rendering components.

Reports front-matter problems and markup that is not a well-formed
tree, such as a component that is never closed. Exits non-zero if any
document fails.

Examples:
  mdx check docs/*.md
  mdx check --json intro.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to mdx.json (default: search from working directory)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print errors as JSON lines")

	return cmd
}

func runCheck(cmd *cobra.Command, files []string, configPath string, jsonOutput bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	engine := newEngine(cfg, newLogger(cmd.ErrOrStderr(), slog.LevelWarn, false), 0)

	out := cmd.OutOrStdout()
	failed := 0
	for _, file := range files {
		source, name, err := readInput(file, cmd.InOrStdin())
		if err == nil {
			if cerr := engine.Check(source); cerr != nil {
				err = errors.FromRenderError(cerr, name, source)
			}
		}
		if err == nil {
			if !jsonOutput {
				success(out, "%s", file)
			}
			continue
		}

		failed++
		e := errors.FromError(err, "E140")
		switch {
		case jsonOutput:
			fmt.Fprintln(out, e.FormatJSON())
		default:
			errorMsg(out, "%s", e.FormatCompact())
		}
	}

	if failed > 0 {
		return errReported
	}
	return nil
}
