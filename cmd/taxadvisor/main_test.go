package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/rgehrsitz/taxadvisor/internal/output"
)

const scenarioB = `income: 85000
filingStatus: single
deductions: 13850
retirementContributions: 6000
selfEmployed: true
`

const scenarioA = `{"income": 50000, "filingStatus": "single", "deductions": 13850}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func defaultOptions() *globalOptions {
	return &globalOptions{year: 2023}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCmd()

	if cmd.Use != "taxadvisor" {
		t.Errorf("Expected root command use to be 'taxadvisor', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected root command to have a short description")
	}
	if cmd.Long == "" {
		t.Error("Expected root command to have a long description")
	}
	for _, flag := range []string{"year", "tax-config", "debug"} {
		if cmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("Expected persistent flag --%s", flag)
		}
	}
}

func TestRootCommand_Execute(t *testing.T) {
	out, err := execute(t)
	if err != nil {
		t.Errorf("Expected no error for root command execution, got %v", err)
	}
	if out == "" {
		t.Error("Expected root command to show help/usage")
	}
}

func TestCommandSubcommands(t *testing.T) {
	expectedCommands := []string{"compute", "validate", "batch", "compare", "brackets", "rules", "schema", "version"}

	cmds := newRootCmd().Commands()
	for _, expectedCmd := range expectedCommands {
		found := false
		for _, c := range cmds {
			if c.Name() == expectedCmd {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected command '%s' to be registered with root command", expectedCmd)
		}
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	if _, err := execute(t, "invalid-command"); err == nil {
		t.Error("Expected error for invalid command")
	}
}

func TestRootCommand_InvalidFlag(t *testing.T) {
	if _, err := execute(t, "--invalid-flag"); err == nil {
		t.Error("Expected error for invalid flag")
	}
}

func TestRunCompute_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := runCompute(defaultOptions(), computeParams{
		input:  writeTemp(t, "b.yaml", scenarioB),
		format: "json",
		stdout: &buf,
	})
	if err != nil {
		t.Fatalf("runCompute failed: %v", err)
	}

	var result domain.AdvisoryResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got := result.Calculations.TotalTax.String(); got != "21651" {
		t.Errorf("totalTax = %s, want 21651", got)
	}
	if result.AIConfidence != 92 {
		t.Errorf("aiConfidence = %d, want 92", result.AIConfidence)
	}
}

func TestRunCompute_StdinText(t *testing.T) {
	var buf bytes.Buffer
	err := runCompute(defaultOptions(), computeParams{
		input:       "-",
		format:      "text",
		assumptions: true,
		stdin:       strings.NewReader(scenarioA),
		stdout:      &buf,
	})
	if err != nil {
		t.Fatalf("runCompute failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"$4118.00", "8.24%", "Assumptions:"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected text output to contain %q", want)
		}
	}
}

func TestRunCompute_InvalidFormat(t *testing.T) {
	err := runCompute(defaultOptions(), computeParams{
		input:  writeTemp(t, "b.yaml", scenarioB),
		format: "pdf",
		stdout: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

func TestRunCompute_OutputDir(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	err := runCompute(defaultOptions(), computeParams{
		input:     writeTemp(t, "b.yaml", scenarioB),
		format:    "text",
		outputDir: dir,
		stdout:    &buf,
	})
	if err != nil {
		t.Fatalf("runCompute failed: %v", err)
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "tax_advice_*.txt"))
	if len(matches) != 1 {
		t.Fatalf("expected one text report in %s, got %v", dir, matches)
	}
	if !strings.Contains(buf.String(), "report written to "+matches[0]) {
		t.Errorf("unexpected stdout: %s", buf.String())
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "21651") {
		t.Error("report file should contain the total tax")
	}
}

func TestRunCompute_ValidationError(t *testing.T) {
	err := runCompute(defaultOptions(), computeParams{
		input:  writeTemp(t, "bad.yaml", "income: -5\nfilingStatus: widowed\n"),
		format: "json",
		stdout: &bytes.Buffer{},
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if got := strings.Join(verr.FieldNames(), ","); got != "income,filingStatus" {
		t.Errorf("fields = %s, want income,filingStatus", got)
	}
}

func TestRunCompute_RuleSubset(t *testing.T) {
	var buf bytes.Buffer
	err := runCompute(defaultOptions(), computeParams{
		input:  writeTemp(t, "b.yaml", scenarioB),
		format: "csv",
		rules:  "quarterly_payments",
		stdout: &buf,
	})
	if err != nil {
		t.Fatalf("runCompute failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one insight, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "quarterly_payments") {
		t.Errorf("expected quarterly_payments row, got %s", lines[1])
	}

	err = runCompute(defaultOptions(), computeParams{
		input:  writeTemp(t, "b.yaml", scenarioB),
		format: "json",
		rules:  "nope",
		stdout: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), "unknown rule") {
		t.Errorf("expected unknown rule error, got %v", err)
	}
}

func TestRunCompute_YearSelection(t *testing.T) {
	path := writeTemp(t, "b.yaml", scenarioB)

	opts := defaultOptions()
	opts.year = 1999
	err := runCompute(opts, computeParams{input: path, format: "json", stdout: &bytes.Buffer{}})
	if err == nil || !strings.Contains(err.Error(), "no tax configuration for year 1999") {
		t.Errorf("expected unknown year error, got %v", err)
	}

	opts.year = 2024
	var buf bytes.Buffer
	if err := runCompute(opts, computeParams{input: path, format: "json", stdout: &buf}); err != nil {
		t.Fatalf("runCompute for 2024 failed: %v", err)
	}
	var result domain.AdvisoryResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result.Calculations.TaxYear != 2024 {
		t.Errorf("taxYear = %d, want 2024", result.Calculations.TaxYear)
	}
}

func TestRunCompute_TaxConfigOverride(t *testing.T) {
	taxConfig := writeTemp(t, "flat.yaml", `
year: 2030
brackets:
  single:
    - { min: 0, rate: 0.10 }
self_employment:
  base_factor: 0.9235
  rate: 0.153
advisor:
  quarterly_periods: 4
risk:
  low_max: 1
  medium_max: 3
`)
	opts := defaultOptions()
	opts.taxConfig = taxConfig

	var buf bytes.Buffer
	err := runCompute(opts, computeParams{
		input:  writeTemp(t, "a.json", scenarioA),
		format: "json",
		stdout: &buf,
	})
	if err != nil {
		t.Fatalf("runCompute failed: %v", err)
	}
	var result domain.AdvisoryResult
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	// 36150 * 0.10
	if got := result.Calculations.FederalTax.String(); got != "3615" {
		t.Errorf("federalTax = %s, want 3615", got)
	}
}

func TestRunBatch_JSON(t *testing.T) {
	a := writeTemp(t, "a.json", scenarioA)
	b := writeTemp(t, "b.yaml", scenarioB)

	var buf bytes.Buffer
	err := runBatch(context.Background(), defaultOptions(), batchParams{
		inputs: []string{a, b},
		format: "json",
		stdout: &buf,
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}

	var entries []output.BatchEntry
	if err := json.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Source != a || entries[1].Source != b {
		t.Errorf("entries are not aligned with inputs")
	}
	if got := entries[1].Result.Calculations.TotalTax.String(); got != "21651" {
		t.Errorf("second totalTax = %s, want 21651", got)
	}
}

func TestRunBatch_Text(t *testing.T) {
	var buf bytes.Buffer
	err := runBatch(context.Background(), defaultOptions(), batchParams{
		inputs: []string{writeTemp(t, "a.json", scenarioA), writeTemp(t, "b.yaml", scenarioB)},
		format: "text",
		stdout: &buf,
	})
	if err != nil {
		t.Fatalf("runBatch failed: %v", err)
	}
	if n := strings.Count(buf.String(), "Federal tax summary"); n != 2 {
		t.Errorf("expected 2 summaries, got %d", n)
	}
}

func TestRunBatch_Errors(t *testing.T) {
	err := runBatch(context.Background(), defaultOptions(), batchParams{
		inputs: []string{writeTemp(t, "a.json", scenarioA)},
		format: "csv",
		stdout: &bytes.Buffer{},
	})
	if err == nil {
		t.Error("expected error for csv batch format")
	}

	bad := writeTemp(t, "bad.yaml", "income: lots\n")
	err = runBatch(context.Background(), defaultOptions(), batchParams{
		inputs: []string{bad},
		format: "json",
		stdout: &bytes.Buffer{},
	})
	if err == nil || !strings.Contains(err.Error(), bad) {
		t.Errorf("expected error naming %s, got %v", bad, err)
	}
}

func TestRunCompare_Table(t *testing.T) {
	var buf bytes.Buffer
	err := runCompare(context.Background(), defaultOptions(), compareParams{
		input:  writeTemp(t, "scenario_b.yaml", scenarioB),
		with:   []string{"max_retirement", "adjust_income:delta=-5000+home_office"},
		format: "table",
		stdout: &buf,
	})
	if err == nil {
		t.Fatal("expected error: home_office is a template, not a transform")
	}

	buf.Reset()
	err = runCompare(context.Background(), defaultOptions(), compareParams{
		input:  writeTemp(t, "scenario_b.yaml", scenarioB),
		with:   []string{"max_retirement", "adjust_income:delta=-5000+set_home_office"},
		format: "table",
		stdout: &buf,
	})
	if err != nil {
		t.Fatalf("runCompare failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"TAX SCENARIO COMPARISON (2023)",
		"scenario_b (base)",
		"Lowest tax: max_retirement saves $3355 versus the base scenario",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected compare output to contain %q:\n%s", want, out)
		}
	}
}

func TestRunCompare_Formats(t *testing.T) {
	input := writeTemp(t, "b.yaml", scenarioB)

	var buf bytes.Buffer
	if err := runCompare(context.Background(), defaultOptions(), compareParams{
		input: input, with: []string{"w2_employee"}, format: "json", stdout: &buf,
	}); err != nil {
		t.Fatalf("json compare failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("compare json invalid: %v", err)
	}
	if decoded["baseScenarioName"] != "b" {
		t.Errorf("baseScenarioName = %v, want b", decoded["baseScenarioName"])
	}

	buf.Reset()
	if err := runCompare(context.Background(), defaultOptions(), compareParams{
		input: input, with: []string{"w2_employee"}, format: "compact", stdout: &buf,
	}); err != nil {
		t.Fatalf("compact compare failed: %v", err)
	}
	if got := buf.String(); got != "Base: b | w2_employee: -$12.0K\n" {
		t.Errorf("compact output = %q", got)
	}

	buf.Reset()
	if err := runCompare(context.Background(), defaultOptions(), compareParams{
		input: input, with: []string{"w2_employee"}, format: "csv", stdout: &buf,
	}); err != nil {
		t.Fatalf("csv compare failed: %v", err)
	}
	if n := strings.Count(strings.TrimSpace(buf.String()), "\n"); n != 2 {
		t.Errorf("expected 3 csv lines, got %d", n+1)
	}

	if err := runCompare(context.Background(), defaultOptions(), compareParams{
		input: input, with: []string{"w2_employee"}, format: "html", stdout: &buf,
	}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if err := runCompare(context.Background(), defaultOptions(), compareParams{
		input: input, format: "table", stdout: &buf,
	}); err == nil {
		t.Error("expected error when --with is missing")
	}
}

func TestCompareCommand_List(t *testing.T) {
	out, err := execute(t, "compare", "--list")
	if err != nil {
		t.Fatalf("compare --list failed: %v", err)
	}
	for _, want := range []string{"Templates:", "max_retirement", "w2_employee", "Transforms", "adjust_income"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected list to contain %q", want)
		}
	}

	out, err = execute(t, "compare", writeTemp(t, "b.yaml", scenarioB), "--with", "home_office", "-f", "compact")
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "home_office: =") {
		t.Errorf("unexpected compare output: %s", out)
	}
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, "validate", writeTemp(t, "b.yaml", scenarioB))
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !strings.Contains(out, "scenario is valid") {
		t.Errorf("unexpected output: %s", out)
	}

	if _, err := execute(t, "validate", writeTemp(t, "bad.yaml", "filingStatus: single\n")); err == nil {
		t.Error("expected validation error for missing income")
	}
}

func TestBracketsCommand(t *testing.T) {
	out, err := execute(t, "brackets", "--status", "mfj")
	if err != nil {
		t.Fatalf("brackets failed: %v", err)
	}
	for _, want := range []string{"2023 federal brackets: marriedJoint", "$22000.00", "and up", "37%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected brackets output to contain %q", want)
		}
	}

	if _, err := execute(t, "brackets", "--status", "widowed"); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestRulesCommand(t *testing.T) {
	out, err := execute(t, "rules")
	if err != nil {
		t.Fatalf("rules failed: %v", err)
	}
	want := "home_office\nretirement_contribution\nquarterly_payments\nbusiness_expense_ratio\nbracket_proximity\n"
	if out != want {
		t.Errorf("rules output = %q, want %q", out, want)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := execute(t, "schema")
	if err != nil {
		t.Fatalf("schema failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("schema is not valid JSON: %v", err)
	}
	if decoded["title"] != "Tax Advisory Result" {
		t.Errorf("unexpected schema title: %v", decoded["title"])
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "taxadvisor dev") {
		t.Errorf("unexpected version output: %s", out)
	}
}
