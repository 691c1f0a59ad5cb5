package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/rgehrsitz/taxadvisor/internal/advisor"
	"github.com/rgehrsitz/taxadvisor/internal/advisory"
	"github.com/rgehrsitz/taxadvisor/internal/config"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	year      int
	taxConfig string
	debug     bool
}

// newLogger builds the stderr logger backing calculation.Logger
func newLogger(debugMode bool) *charmlog.Logger {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "taxadvisor",
	})
	if debugMode {
		logger.SetLevel(charmlog.DebugLevel)
	} else {
		logger.SetLevel(charmlog.WarnLevel)
	}
	return logger
}

// loadTaxYear resolves the tax-year configuration from --tax-config or the
// embedded registry
func loadTaxYear(opts *globalOptions) (*config.TaxYearConfig, error) {
	if opts.taxConfig != "" {
		cfg, err := config.LoadTaxYearFile(opts.taxConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to load tax config: %w", err)
		}
		return cfg, nil
	}
	reg, err := config.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	return reg.Get(opts.year)
}

// newEngine builds an engine for the selected year, optionally restricted to
// a comma-separated rule list
func newEngine(opts *globalOptions, rules string) (*advisory.Engine, error) {
	cfg, err := loadTaxYear(opts)
	if err != nil {
		return nil, err
	}
	engineOpts := []advisory.Option{advisory.WithLogger(newLogger(opts.debug))}
	if strings.TrimSpace(rules) != "" {
		selected, err := advisor.NewRegistry().CreateAll(strings.Split(rules, ","))
		if err != nil {
			return nil, err
		}
		if len(selected) == 0 {
			return nil, fmt.Errorf("no rules selected")
		}
		engineOpts = append(engineOpts, advisory.WithRules(selected...))
	}
	return advisory.NewEngine(cfg, engineOpts...), nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxadvisor %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "taxadvisor",
		Short: "Federal tax computation and optimization advisor",
		Long: `taxadvisor computes federal income and self-employment tax for a
scenario, then ranks deterministic optimization, warning and planning insights
and scores audit exposure.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().IntVar(&opts.year, "year", config.DefaultTaxYear, "tax year to use from the embedded tables")
	root.PersistentFlags().StringVar(&opts.taxConfig, "tax-config", "", "path to a tax-year YAML file (overrides --year)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging to stderr")

	root.AddCommand(newComputeCmd(opts))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newBatchCmd(opts))
	root.AddCommand(newCompareCmd(opts))
	root.AddCommand(newBracketsCmd(opts))
	root.AddCommand(newRulesCmd())
	root.AddCommand(newSchemaCmd())
	root.AddCommand(versionCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
