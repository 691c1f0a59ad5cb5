package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/tui"
)

type tuiOptions struct {
	year    int
	logFile string
}

func newRootCmd() *cobra.Command {
	opts := &tuiOptions{}
	cmd := &cobra.Command{
		Use:          "taxadvisor-tui <scenario-file>",
		Short:        "Interactive what-if explorer for a tax scenario",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts)
		},
	}
	cmd.Flags().IntVar(&opts.year, "year", config.DefaultTaxYear, "Tax year to compute")
	cmd.Flags().StringVar(&opts.logFile, "log-file", "", "Write debug logs to this file (the screen is owned by the TUI)")
	return cmd
}

func run(path string, opts *tuiOptions) error {
	scenario, err := config.NewInputParser().LoadScenarioFile(path)
	if err != nil {
		return err
	}

	reg, err := config.DefaultRegistry()
	if err != nil {
		return err
	}
	cfg, err := reg.Get(opts.year)
	if err != nil {
		return err
	}

	var logOut io.Writer = io.Discard
	level := charmlog.WarnLevel
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logOut = f
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(logOut, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "taxadvisor-tui",
		Level:           level,
	})

	engine := advisory.NewEngine(cfg, advisory.WithLogger(logger))
	model := tui.NewModel(engine, scenario, path)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
