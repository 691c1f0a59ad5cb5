package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/rgehrsitz/taxadvisor/internal/compare"
	"github.com/rgehrsitz/taxadvisor/internal/transform"
	"github.com/spf13/cobra"
)

// compareParams holds the parsed flags for the compare command
type compareParams struct {
	input  string
	with   []string
	format string
	stdin  io.Reader
	stdout io.Writer
}

// runCompare is the testable body of the compare command
func runCompare(ctx context.Context, opts *globalOptions, p compareParams) error {
	if len(p.with) == 0 {
		return fmt.Errorf("--with is required (see 'taxadvisor compare --list')")
	}

	scenario, err := readScenario(p.input, p.stdin)
	if err != nil {
		return err
	}

	engine, err := newEngine(opts, "")
	if err != nil {
		return err
	}

	baseName := "stdin"
	if p.input != "-" {
		baseName = strings.TrimSuffix(filepath.Base(p.input), filepath.Ext(p.input))
	}

	compSet, err := compare.NewCompareEngine(engine).Compare(ctx, scenario, compare.CompareOptions{
		BaseScenarioName: baseName,
		Alternatives:     p.with,
		SourcePath:       p.input,
	})
	if err != nil {
		return err
	}

	var out string
	switch p.format {
	case "table", "":
		out = (&compare.TableFormatter{}).Format(compSet)
	case "compact":
		out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
	case "csv":
		out, err = (&compare.CSVFormatter{}).Format(compSet)
	case "json":
		var data []byte
		data, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		out = string(data) + "\n"
	default:
		return fmt.Errorf("unsupported compare format: %s (use table, compact, csv, or json)", p.format)
	}
	if err != nil {
		return fmt.Errorf("failed to format comparison: %w", err)
	}

	_, err = io.WriteString(p.stdout, out)
	return err
}

// writeAlternatives lists the built-in templates and transforms
func writeAlternatives(w io.Writer, opts *globalOptions) error {
	cfg, err := loadTaxYear(opts)
	if err != nil {
		return err
	}
	templates := transform.CreateBuiltInTemplates(cfg.Advisor)

	fmt.Fprintln(w, "Templates:")
	for _, name := range templates.List() {
		tpl, _ := templates.Get(name)
		fmt.Fprintf(w, "  %-22s %s\n", name, tpl.Description)
	}
	fmt.Fprintln(w, "\nTransforms (name:key=value,... joined with +):")
	for _, name := range transform.NewTransformRegistry(cfg.Advisor).List() {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

func newCompareCmd(opts *globalOptions) *cobra.Command {
	var (
		with   []string
		format string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "compare [scenario-file]",
		Short: "Compare a scenario against what-if alternatives",
		Long: `Compare a base scenario against built-in templates or ad-hoc transform chains.

Examples:
  taxadvisor compare scenario.yaml --with max_retirement --with home_office
  taxadvisor compare scenario.yaml --with "adjust_income:delta=-10000+max_retirement" -f csv
  taxadvisor compare --list`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return writeAlternatives(cmd.OutOrStdout(), opts)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runCompare(ctx, opts, compareParams{
				input:  args[0],
				with:   with,
				format: format,
				stdin:  os.Stdin,
				stdout: cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringArrayVar(&with, "with", nil, "template name or transform chain to compare (repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, compact, csv, or json")
	cmd.Flags().BoolVar(&list, "list", false, "list available templates and transforms")

	return cmd
}
