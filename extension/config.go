package extension

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the bank extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.bank" or "bank" keys).
type Config struct {
	// Branch is the branch code new accounts are opened in (default: "0001").
	Branch string `json:"branch" mapstructure:"branch" yaml:"branch"`

	// OverdraftLimit is the per-withdrawal ceiling of checking accounts,
	// written as a decimal amount in reais (default: "500.00").
	OverdraftLimit string `json:"overdraft_limit" mapstructure:"overdraft_limit" yaml:"overdraft_limit"`

	// MaxWithdrawals is how many withdrawals a checking account accepts over
	// its lifetime (default: 3). Unset means the default; an explicit 0 opens
	// checking accounts that refuse every withdrawal.
	MaxWithdrawals *int `json:"max_withdrawals" mapstructure:"max_withdrawals" yaml:"max_withdrawals"`

	// HookTimeout bounds each plugin hook call (default: 5s).
	HookTimeout time.Duration `json:"hook_timeout" mapstructure:"hook_timeout" yaml:"hook_timeout"`

	// EnableMetrics registers the Prometheus metrics plugin on the default registerer.
	EnableMetrics bool `json:"enable_metrics" mapstructure:"enable_metrics" yaml:"enable_metrics"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Branch:         "0001",
		OverdraftLimit: "500.00",
		MaxWithdrawals: intPtr(3),
		HookTimeout:    5 * time.Second,
	}
}

func intPtr(n int) *int { return &n }

// configDocument accepts the bank section at the top level of a file, under
// "bank", or under "extensions.bank".
type configDocument struct {
	Extensions struct {
		Bank *Config `yaml:"bank"`
	} `yaml:"extensions"`
	Bank *Config `yaml:"bank"`
}

// LoadConfigFile reads a bank Config from a YAML file.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("bank: read config %s: %w", path, err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	var doc configDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Config{}, fmt.Errorf("bank: parse config: %w", err)
	}
	switch {
	case doc.Extensions.Bank != nil:
		return *doc.Extensions.Bank, nil
	case doc.Bank != nil:
		return *doc.Bank, nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("bank: parse config: %w", err)
	}
	return cfg, nil
}
