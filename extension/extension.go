// Package extension provides the Forge extension adapter for the bank.
//
// It implements the forge.Extension interface to integrate the bank
// registry into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions,
// via Forge configuration under "extensions.bank" or "bank" keys, or via a
// standalone YAML file named with WithConfigFile.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/bank"
	"github.com/xraph/bank/account"
	"github.com/xraph/bank/observability"
	"github.com/xraph/bank/store"
	"github.com/xraph/bank/store/memory"
	"github.com/xraph/bank/types"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "bank"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "In-memory banking core"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the bank Registry as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	configFile string
	registry   *bank.Registry
	store      store.Store
	bankOpts   []bank.Option
}

// New creates a new bank Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the underlying bank Registry.
// This is nil until Register is called.
func (e *Extension) Registry() *bank.Registry { return e.registry }

// Config returns the resolved configuration.
func (e *Extension) Config() Config { return e.config }

// Register implements [forge.Extension]. It loads configuration,
// builds the registry, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	opts, err := e.buildBankOpts()
	if err != nil {
		return err
	}

	e.registry = bank.New(e.store, opts...)

	return vessel.Provide(fapp.Container(), func() (*bank.Registry, error) {
		return e.registry, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.registry == nil {
		return errors.New("bank: extension not initialized")
	}

	if err := e.registry.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.registry != nil {
		if err := e.registry.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("bank: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildBankOpts constructs bank.Option values from the resolved config.
func (e *Extension) buildBankOpts() ([]bank.Option, error) {
	opts := make([]bank.Option, 0, len(e.bankOpts)+5)

	limit, err := types.ParseMoney(e.config.OverdraftLimit)
	if err != nil {
		return nil, fmt.Errorf("bank: overdraft_limit %q: %w", e.config.OverdraftLimit, err)
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("bank: overdraft_limit %q: %w", e.config.OverdraftLimit, bank.ErrInvalidInput)
	}
	maxWithdrawals := account.DefaultMaxWithdrawals
	if e.config.MaxWithdrawals != nil {
		maxWithdrawals = *e.config.MaxWithdrawals
	}
	if maxWithdrawals < 0 {
		return nil, fmt.Errorf("bank: max_withdrawals %d: %w", maxWithdrawals, bank.ErrInvalidInput)
	}

	opts = append(opts,
		bank.WithBranch(e.config.Branch),
		bank.WithOverdraftLimit(limit),
		bank.WithMaxWithdrawals(maxWithdrawals),
		bank.WithHookTimeout(e.config.HookTimeout),
	)

	if e.config.EnableMetrics {
		factory := observability.NewPrometheusFactory(nil)
		opts = append(opts, bank.WithPlugin(observability.NewMetricsExtension(factory)))
	}

	// Append any pass-through bank options.
	opts = append(opts, e.bankOpts...)

	return opts, nil
}

// --- Config Loading ---

// loadConfiguration loads config from Forge, a YAML file, or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from the Forge config manager, then from a named file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()
	if !configLoaded && e.configFile != "" {
		cfg, err := LoadConfigFile(e.configFile)
		if err != nil {
			return err
		}
		fileConfig, configLoaded = cfg, true
	}

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("bank: configuration is required but not found in config files; " +
				"ensure 'extensions.bank' or 'bank' key exists in your config")
		}

		// Use programmatic config merged with defaults.
		e.config = e.mergeWithDefaults(programmaticConfig)
	} else {
		// Config loaded from YAML -- merge with programmatic options.
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("bank: configuration loaded",
		forge.F("branch", e.config.Branch),
		forge.F("overdraft_limit", e.config.OverdraftLimit),
		forge.F("max_withdrawals", *e.config.MaxWithdrawals),
		forge.F("hook_timeout", e.config.HookTimeout),
		forge.F("enable_metrics", e.config.EnableMetrics),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from the Forge config manager.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.bank" first (namespaced pattern).
	if cm.IsSet("extensions.bank") {
		if err := cm.Bind("extensions.bank", &cfg); err == nil {
			e.Logger().Debug("bank: loaded config from file",
				forge.F("key", "extensions.bank"),
			)
			return cfg, true
		}
		e.Logger().Warn("bank: failed to bind extensions.bank config",
			forge.F("error", "bind failed"),
		)
	}

	// Try the top-level "bank" key.
	if cm.IsSet("bank") {
		if err := cm.Bind("bank", &cfg); err == nil {
			e.Logger().Debug("bank: loaded config from file",
				forge.F("key", "bank"),
			)
			return cfg, true
		}
		e.Logger().Warn("bank: failed to bind bank config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued and unset fields with defaults.
func (e *Extension) mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.Branch == "" {
		cfg.Branch = defaults.Branch
	}
	if cfg.OverdraftLimit == "" {
		cfg.OverdraftLimit = defaults.OverdraftLimit
	}
	if cfg.MaxWithdrawals == nil {
		cfg.MaxWithdrawals = defaults.MaxWithdrawals
	}
	if cfg.HookTimeout == 0 {
		cfg.HookTimeout = defaults.HookTimeout
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence for most fields; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	// Programmatic bool flags override when true.
	if programmaticConfig.EnableMetrics {
		yamlConfig.EnableMetrics = true
	}

	// String fields: YAML takes precedence.
	if yamlConfig.Branch == "" && programmaticConfig.Branch != "" {
		yamlConfig.Branch = programmaticConfig.Branch
	}
	if yamlConfig.OverdraftLimit == "" && programmaticConfig.OverdraftLimit != "" {
		yamlConfig.OverdraftLimit = programmaticConfig.OverdraftLimit
	}

	// Duration/int fields: YAML takes precedence, programmatic fills gaps.
	if yamlConfig.MaxWithdrawals == nil && programmaticConfig.MaxWithdrawals != nil {
		yamlConfig.MaxWithdrawals = programmaticConfig.MaxWithdrawals
	}
	if yamlConfig.HookTimeout == 0 && programmaticConfig.HookTimeout != 0 {
		yamlConfig.HookTimeout = programmaticConfig.HookTimeout
	}

	// Fill remaining zeros with defaults.
	return e.mergeWithDefaults(yamlConfig)
}
