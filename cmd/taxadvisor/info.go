package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/taxadvisor/internal/advisor"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/output"
	"github.com/spf13/cobra"
)

// writeBrackets prints the bracket table used for status
func writeBrackets(w io.Writer, cfg *config.TaxYearConfig, status domain.FilingStatus) {
	s := output.DefaultStyles()
	brackets, used, ok := cfg.BracketsFor(status)

	fmt.Fprintln(w, s.Header.Render(fmt.Sprintf("=== %d federal brackets: %s ===", cfg.Year, used)))
	if !ok {
		fmt.Fprintln(w, s.Muted.Render(fmt.Sprintf("    no %s table for %d, showing %s", status, cfg.Year, used)))
	}

	rows := make([][]string, 0, len(brackets))
	for _, b := range brackets {
		upper := "and up"
		if !b.Unbounded() {
			upper = output.FormatCurrency(*b.Max)
		}
		rows = append(rows, []string{output.FormatCurrency(b.Min), upper, output.FormatRate(b.Rate)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.TableHeader
			}
			return s.TableCell
		}).
		Headers("FROM", "UP TO", "RATE").
		Rows(rows...)
	fmt.Fprintln(w, t)
}

func newBracketsCmd(opts *globalOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "brackets",
		Short: "Show the federal bracket table for a tax year and filing status",
		RunE: func(cmd *cobra.Command, args []string) error {
			fs, ok := domain.ParseFilingStatus(status)
			if !ok {
				return fmt.Errorf("unknown filing status %q", status)
			}
			cfg, err := loadTaxYear(opts)
			if err != nil {
				return err
			}
			writeBrackets(cmd.OutOrStdout(), cfg, fs)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(domain.FilingSingle), "filing status")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the advisor rules in evaluation order",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range advisor.NewRegistry().Ordered() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for compute --format=json output",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), output.Schema)
		},
	}
}
