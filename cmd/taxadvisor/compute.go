package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/output"
	"github.com/spf13/cobra"
)

// computeParams holds the parsed flags for the compute command
type computeParams struct {
	input       string
	format      string
	rules       string
	assumptions bool
	outputDir   string
	stdin       io.Reader
	stdout      io.Writer
}

// readScenario loads a scenario from a file, or from stdin when path is "-"
func readScenario(path string, stdin io.Reader) (domain.TaxScenario, error) {
	parser := config.NewInputParser()
	if path != "-" {
		return parser.LoadScenarioFile(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return domain.TaxScenario{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	return parser.ParseScenario(data)
}

// runCompute is the testable body of the compute command
func runCompute(opts *globalOptions, p computeParams) error {
	formatter, err := output.GetFormatterByName(p.format)
	if err != nil {
		return err
	}
	if tf, ok := formatter.(output.TextFormatter); ok {
		tf.Assumptions = p.assumptions
		formatter = tf
	}

	scenario, err := readScenario(p.input, p.stdin)
	if err != nil {
		return err
	}

	engine, err := newEngine(opts, p.rules)
	if err != nil {
		return err
	}

	result, err := engine.ComputeTaxAdvice(scenario)
	if err != nil {
		return err
	}

	if p.outputDir != "" {
		path, err := output.WriteFormatted(p.outputDir, formatter, result, reportExt(formatter.Name()))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(p.stdout, "report written to %s\n", path)
		return err
	}

	data, err := formatter.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = p.stdout.Write(data)
	return err
}

func reportExt(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}

func newComputeCmd(opts *globalOptions) *cobra.Command {
	var (
		format      string
		rules       string
		assumptions bool
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "compute [scenario-file]",
		Short: "Compute taxes and advice for a scenario",
		Long: `Compute federal and self-employment tax for a YAML or JSON scenario file
(use "-" to read stdin) and print ranked insights and the audit risk assessment.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompute(opts, computeParams{
				input:       args[0],
				format:      format,
				rules:       rules,
				assumptions: assumptions,
				outputDir:   outputDir,
				stdin:       os.Stdin,
				stdout:      cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, text, or csv")
	cmd.Flags().StringVar(&rules, "rules", "", "comma-separated advisor rules to run (default: all)")
	cmd.Flags().BoolVar(&assumptions, "assumptions", false, "append modeling assumptions to text output")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write the report to a timestamped file in this directory")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario-file]",
		Short: "Validate a scenario file without computing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readScenario(args[0], os.Stdin)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scenario is valid: income=%s filingStatus=%s selfEmployed=%t\n",
				s.Income.StringFixed(2), s.FilingStatus, s.SelfEmployed)
			return nil
		},
	}
}
