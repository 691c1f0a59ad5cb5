package config

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultTaxYear is the year used when callers do not ask for one
const DefaultTaxYear = 2023

//go:embed taxdata/*.yaml
var embeddedTaxData embed.FS

// Registry holds the loaded tax-year configurations keyed by year.
// It is populated before use and only read afterwards.
type Registry struct {
	years map[int]*TaxYearConfig
}

var (
	defaultRegistry     *Registry
	defaultRegistryErr  error
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the process-wide registry of embedded tax years.
// The embedded data is parsed and validated exactly once.
func DefaultRegistry() (*Registry, error) {
	defaultRegistryOnce.Do(func() {
		defaultRegistry, defaultRegistryErr = loadEmbedded()
	})
	return defaultRegistry, defaultRegistryErr
}

// MustDefault returns the embedded configuration for DefaultTaxYear and
// panics if the embedded data is broken
func MustDefault() *TaxYearConfig {
	reg, err := DefaultRegistry()
	if err != nil {
		panic(err)
	}
	cfg, err := reg.Get(DefaultTaxYear)
	if err != nil {
		panic(err)
	}
	return cfg
}

func loadEmbedded() (*Registry, error) {
	entries, err := embeddedTaxData.ReadDir("taxdata")
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded tax data: %w", err)
	}
	reg := NewRegistry()
	for _, entry := range entries {
		data, err := embeddedTaxData.ReadFile(path.Join("taxdata", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", entry.Name(), err)
		}
		cfg, err := ParseTaxYear(data)
		if err != nil {
			return nil, fmt.Errorf("embedded %s: %w", entry.Name(), err)
		}
		if err := reg.Add(cfg); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{years: make(map[int]*TaxYearConfig)}
}

// Add registers a validated configuration. Adding a year twice is an error.
func (r *Registry) Add(cfg *TaxYearConfig) error {
	if _, exists := r.years[cfg.Year]; exists {
		return fmt.Errorf("tax year %d already registered", cfg.Year)
	}
	r.years[cfg.Year] = cfg
	return nil
}

// Get returns the configuration for year
func (r *Registry) Get(year int) (*TaxYearConfig, error) {
	cfg, ok := r.years[year]
	if !ok {
		return nil, fmt.Errorf("no tax configuration for year %d (available: %v)", year, r.Years())
	}
	return cfg, nil
}

// Years lists the registered years in ascending order
func (r *Registry) Years() []int {
	years := make([]int, 0, len(r.years))
	for y := range r.years {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ParseTaxYear decodes and validates a tax-year YAML document
func ParseTaxYear(data []byte) (*TaxYearConfig, error) {
	var cfg TaxYearConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tax configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// LoadTaxYearFile loads a tax-year configuration from a YAML file
func LoadTaxYearFile(filename string) (*TaxYearConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ParseTaxYear(data)
}
