package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/output"
	"github.com/spf13/cobra"
)

// batchParams holds the parsed flags for the batch command
type batchParams struct {
	inputs []string
	format string
	rules  string
	stdout io.Writer
}

// runBatch loads every scenario up front, then computes them concurrently
func runBatch(ctx context.Context, opts *globalOptions, p batchParams) error {
	if p.format != "json" && p.format != "text" {
		return fmt.Errorf("invalid format %q: must be 'json' or 'text'", p.format)
	}

	scenarios := make([]domain.TaxScenario, 0, len(p.inputs))
	for _, path := range p.inputs {
		s, err := readScenario(path, os.Stdin)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		scenarios = append(scenarios, s)
	}

	engine, err := newEngine(opts, p.rules)
	if err != nil {
		return err
	}

	results, err := engine.ComputeBatch(ctx, scenarios)
	if err != nil {
		return err
	}

	entries := make([]output.BatchEntry, len(results))
	for i, r := range results {
		entries[i] = output.BatchEntry{Source: p.inputs[i], Result: r}
	}

	if p.format == "json" {
		return output.WriteJSONBatch(p.stdout, entries)
	}
	tf := output.TextFormatter{Styles: output.DefaultStyles()}
	for i, e := range entries {
		if i > 0 {
			fmt.Fprintln(p.stdout)
		}
		fmt.Fprintf(p.stdout, "# %s\n", e.Source)
		if err := tf.Write(p.stdout, e.Result); err != nil {
			return err
		}
	}
	return nil
}

func newBatchCmd(opts *globalOptions) *cobra.Command {
	var (
		format string
		rules  string
	)

	cmd := &cobra.Command{
		Use:   "batch [scenario-file...]",
		Short: "Compute advice for several scenarios in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return runBatch(ctx, opts, batchParams{
				inputs: args,
				format: format,
				rules:  rules,
				stdout: cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or text")
	cmd.Flags().StringVar(&rules, "rules", "", "comma-separated advisor rules to run (default: all)")

	return cmd
}
