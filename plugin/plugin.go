// Package plugin provides an extensible plugin system for the bank registry.
// Plugins can hook into lifecycle events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/client"
	"github.com/xraph/bank/history"
	"github.com/xraph/bank/transaction"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the registry starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, registry interface{}) error
}

// OnShutdown is called when the registry stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Client and account hooks
// ──────────────────────────────────────────────────

// OnClientRegistered is called after a client is added to the registry.
type OnClientRegistered interface {
	Plugin
	OnClientRegistered(ctx context.Context, c *client.Individual) error
}

// OnAccountOpened is called after an account is numbered and attached to its client.
type OnAccountOpened interface {
	Plugin
	OnAccountOpened(ctx context.Context, c *client.Individual, a account.Account) error
}

// ──────────────────────────────────────────────────
// Transaction hooks
// ──────────────────────────────────────────────────

// OnTransactionRecorded is called after a movement is applied and appended to history.
type OnTransactionRecorded interface {
	Plugin
	OnTransactionRecorded(ctx context.Context, a account.Account, rec history.Record) error
}

// OnTransactionRejected is called when an account refuses a movement.
type OnTransactionRejected interface {
	Plugin
	OnTransactionRejected(ctx context.Context, a account.Account, req transaction.Request, reason error) error
}
