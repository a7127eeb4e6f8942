package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/priosim/priosim/sim"
)

// Scenario is the YAML description of one simulation run. Zero-valued
// optional fields fall back to the engine defaults.
type Scenario struct {
	Name               string  `yaml:"name"`
	Seed               int64   `yaml:"seed"`
	CorporateSources   int     `yaml:"corporate_sources"`
	PremiumSources     int     `yaml:"premium_sources"`
	FreeSources        int     `yaml:"free_sources"`
	Devices            int     `yaml:"devices"`
	MaxRequests        int     `yaml:"max_requests"`
	BufferCapacity     int     `yaml:"buffer_capacity"`
	ServiceMeanMinutes float64 `yaml:"service_mean_minutes"`
}

// LoadScenario reads and validates a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := scenario.Validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// Validate checks the scenario for impossible configurations.
func (s *Scenario) Validate() error {
	if s.MaxRequests <= 0 {
		return fmt.Errorf("scenario %q: max_requests must be positive, got %d", s.Name, s.MaxRequests)
	}
	if s.CorporateSources < 0 || s.PremiumSources < 0 || s.FreeSources < 0 {
		return fmt.Errorf("scenario %q: source counts must be non-negative", s.Name)
	}
	if s.CorporateSources+s.PremiumSources+s.FreeSources == 0 {
		return fmt.Errorf("scenario %q: at least one source is required", s.Name)
	}
	if s.Devices < 0 {
		return fmt.Errorf("scenario %q: devices must be non-negative, got %d", s.Name, s.Devices)
	}
	if s.BufferCapacity < 0 {
		return fmt.Errorf("scenario %q: buffer_capacity must be non-negative, got %d", s.Name, s.BufferCapacity)
	}
	if s.ServiceMeanMinutes < 0 {
		return fmt.Errorf("scenario %q: service_mean_minutes must be non-negative, got %f", s.Name, s.ServiceMeanMinutes)
	}
	return nil
}

// Config translates the scenario into an engine configuration.
func (s *Scenario) Config() sim.Config {
	serviceRate := 0.0 // engine default
	if s.ServiceMeanMinutes > 0 {
		serviceRate = 60.0 / s.ServiceMeanMinutes
	}
	return sim.Config{
		CorporateSources: s.CorporateSources,
		PremiumSources:   s.PremiumSources,
		FreeSources:      s.FreeSources,
		Devices:          s.Devices,
		TargetRequests:   s.MaxRequests,
		BufferCapacity:   s.BufferCapacity,
		ServiceRate:      serviceRate,
		Seed:             s.Seed,
	}
}
