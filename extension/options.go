package extension

import (
	"time"

	"github.com/xraph/bank"
	"github.com/xraph/bank/plugin"
	"github.com/xraph/bank/store"
)

// Option configures the bank Forge extension.
type Option func(*Extension)

// WithStore sets the store for the bank registry.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithBankOption passes a bank.Option through to the underlying registry.
func WithBankOption(opt bank.Option) Option {
	return func(e *Extension) {
		e.bankOpts = append(e.bankOpts, opt)
	}
}

// WithPlugin registers a bank plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.bankOpts = append(e.bankOpts, bank.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithConfigFile names a YAML file consulted when the Forge config manager
// has no bank section.
func WithConfigFile(path string) Option {
	return func(e *Extension) { e.configFile = path }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithBranch sets the branch code for new accounts.
func WithBranch(branch string) Option {
	return func(e *Extension) { e.config.Branch = branch }
}

// WithOverdraftLimit sets the checking per-withdrawal ceiling, e.g. "500.00".
func WithOverdraftLimit(limit string) Option {
	return func(e *Extension) { e.config.OverdraftLimit = limit }
}

// WithMaxWithdrawals sets the checking withdrawal count limit.
func WithMaxWithdrawals(n int) Option {
	return func(e *Extension) { e.config.MaxWithdrawals = intPtr(n) }
}

// WithHookTimeout bounds each plugin hook call.
func WithHookTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.HookTimeout = d }
}

// WithMetrics registers the Prometheus metrics plugin.
func WithMetrics() Option {
	return func(e *Extension) { e.config.EnableMetrics = true }
}
