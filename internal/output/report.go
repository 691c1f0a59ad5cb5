// Package output renders advisory results as JSON, styled text or CSV.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rgehrsitz/taxadvisor/internal/domain"
	"github.com/shopspring/decimal"
)

// Formatter renders a single advisory result
type Formatter interface {
	Name() string
	Format(result *domain.AdvisoryResult) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(result *domain.AdvisoryResult) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(result *domain.AdvisoryResult) ([]byte, error) { return f.F(result) }

// FormatNames lists the names accepted by GetFormatterByName
var FormatNames = []string{"json", "text", "csv"}

// GetFormatterByName returns the formatter registered under name
func GetFormatterByName(name string) (Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSONFormatter{Pretty: true}, nil
	case "json-compact":
		return JSONFormatter{}, nil
	case "text", "console", "table":
		return TextFormatter{Styles: DefaultStyles()}, nil
	case "csv":
		return CSVFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(FormatNames, ", "))
	}
}

// GenerateReport formats result with the named formatter and writes it to w
func GenerateReport(w io.Writer, result *domain.AdvisoryResult, format string) error {
	f, err := GetFormatterByName(format)
	if err != nil {
		return err
	}
	data, err := f.Format(result)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// WriteFormatted writes the formatted result to a timestamped file in dir and
// returns its path
func WriteFormatted(dir string, f Formatter, result *domain.AdvisoryResult, ext string) (string, error) {
	data, err := f.Format(result)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("tax_advice_%s.%s", time.Now().Format("20060102_150405"), ext)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a decimal percent value
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRate formats a fractional rate (0.22) as a percentage
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(0) + "%"
}
