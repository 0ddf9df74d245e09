package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"statutes/internal/deps"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			statuses := deps.CheckBinaries(deps.Requirements(cfg.PdftotextBinary()))
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			missingRequired := false
			for _, status := range statuses {
				fmt.Fprintln(out, renderDepLine(status, colorize))
				if !status.Available && !status.Optional {
					missingRequired = true
				}
			}
			if missingRequired {
				return fmt.Errorf("required binaries are missing")
			}
			return nil
		},
	}
}

func renderDepLine(status deps.Status, colorize bool) string {
	label := "OK"
	color := ansiGreen
	if !status.Available {
		if status.Optional {
			label = "MISSING (optional)"
			color = ansiYellow
		} else {
			label = "MISSING"
			color = ansiRed
		}
	}

	line := fmt.Sprintf("  %-12s [%s]", status.Name+":", label)
	if status.Detail != "" {
		line += " " + status.Detail
	} else if status.Description != "" {
		line += " " + status.Description
	}
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
