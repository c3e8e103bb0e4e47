package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"epias-settlement/internal/contract"
	"epias-settlement/internal/cost"
	"epias-settlement/internal/series"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario configuration shape (YAML).
type Config struct {
	// Optional: load party parameters from a separate YAML (e.g. examples/parties/*.yaml).
	// If both PartyFile and Party are provided, Party overrides PartyFile.
	PartyFile  string           `yaml:"party_file"`
	Party      PartyConfig      `yaml:"party"`
	Gate       GateConfig       `yaml:"gate"`
	Settlement SettlementConfig `yaml:"settlement"`
}

type PartyConfig struct {
	Name       string `yaml:"name"`
	IsProducer bool   `yaml:"is_producer"`
	Source     string `yaml:"source"`
	// DSGTolerance overrides the regime default when set; an explicit 0
	// disables the band, which is why this is a pointer.
	DSGTolerance        *float64 `yaml:"dsg_tolerance"`
	ToleranceMultiplier *float64 `yaml:"tolerance_multiplier"`
	MaintenancePenalty  bool     `yaml:"maintenance_penalty"`
}

type GateConfig struct {
	// OpenHour and CloseLeadSeconds are pointers so explicit zeros (gate
	// opening at midnight, closing at the delivery instant) survive default
	// application.
	OpenHour         *int `yaml:"open_hour"`
	CloseLeadSeconds *int `yaml:"close_lead_seconds"`
}

type SettlementConfig struct {
	DayOfMonth int `yaml:"day_of_month"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it or apply
// defaults. Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If party_file is set, load it and merge in any explicit overrides from c.Party.
	if c.PartyFile != "" {
		partyPath := c.PartyFile
		if !filepath.IsAbs(partyPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), partyPath)
			if _, err := os.Stat(cand); err == nil {
				partyPath = cand
			}
		}
		loaded, err := loadPartyFile(partyPath)
		if err != nil {
			return nil, err
		}
		c.Party = MergeParty(loaded, c.Party)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Gate.OpenHour == nil {
		h := contract.DefaultGateOpenHour
		c.Gate.OpenHour = &h
	}
	if c.Gate.CloseLeadSeconds == nil {
		s := int(contract.DefaultGateCloseLead / time.Second)
		c.Gate.CloseLeadSeconds = &s
	}
	if c.Settlement.DayOfMonth == 0 {
		c.Settlement.DayOfMonth = contract.DefaultSettlementDay
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Party.IsProducer && c.Party.Source == "" {
		return errors.New("party.source is required for producers")
	}
	if m := c.Party.ToleranceMultiplier; m != nil && (*m < 0 || *m > 1) {
		return fmt.Errorf("party.tolerance_multiplier %v outside [0, 1]", *m)
	}
	if t := c.Party.DSGTolerance; t != nil && *t < 0 {
		return fmt.Errorf("party.dsg_tolerance %v must be >= 0", *t)
	}
	if h := c.Gate.OpenHour; h != nil && (*h < 0 || *h > 23) {
		return fmt.Errorf("gate.open_hour %d outside [0, 23]", *h)
	}
	if s := c.Gate.CloseLeadSeconds; s != nil && *s < 0 {
		return fmt.Errorf("gate.close_lead_seconds %d must be >= 0", *s)
	}
	if c.Settlement.DayOfMonth < 1 || c.Settlement.DayOfMonth > 31 {
		return fmt.Errorf("settlement.day_of_month %d outside [1, 31]", c.Settlement.DayOfMonth)
	}
	return nil
}

// ToParty converts the party section to the series run input.
func (c *Config) ToParty() series.Party {
	return series.Party{
		Name:       c.Party.Name,
		IsProducer: c.Party.IsProducer,
		Source:     c.Party.Source,
	}
}

// ToSettlementParams converts the party section to engine tunables.
func (c *Config) ToSettlementParams() cost.SettlementParams {
	return cost.SettlementParams{
		Kupst: cost.KupstParams{
			MaintenancePenalty: c.Party.MaintenancePenalty,
			Source:             c.Party.Source,
		},
		Amount: cost.AmountParams{
			DSGTolerance:        c.Party.DSGTolerance,
			ToleranceMultiplier: c.Party.ToleranceMultiplier,
		},
	}
}

// CloseLead returns the gate close lead as a duration. The market default
// covers configs loaded without default application.
func (c *Config) CloseLead() time.Duration {
	if c.Gate.CloseLeadSeconds == nil {
		return contract.DefaultGateCloseLead
	}
	return time.Duration(*c.Gate.CloseLeadSeconds) * time.Second
}

type partyFileWrapper struct {
	Party PartyConfig `yaml:"party"`
}

func loadPartyFile(path string) (PartyConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PartyConfig{}, err
	}
	var w partyFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PartyConfig{}, err
	}
	return w.Party, nil
}

// MergeParty overlays non-zero fields from override onto base.
// This is used when loading a party file and then applying overrides from the
// main config or a request.
func MergeParty(base, override PartyConfig) PartyConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.IsProducer {
		out.IsProducer = true
	}
	if override.Source != "" {
		out.Source = override.Source
	}
	if override.DSGTolerance != nil {
		out.DSGTolerance = override.DSGTolerance
	}
	if override.ToleranceMultiplier != nil {
		out.ToleranceMultiplier = override.ToleranceMultiplier
	}
	if override.MaintenancePenalty {
		out.MaintenancePenalty = true
	}
	return out
}
