package store

import (
	"context"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/client"
)

// Store holds the registry's collections: clients keyed by national id and
// accounts in creation order.
type Store interface {
	// Client methods
	CreateClient(ctx context.Context, c *client.Individual) error
	GetClient(ctx context.Context, nationalID string) (*client.Individual, error)
	ListClients(ctx context.Context, opts ListOpts) ([]*client.Individual, error)

	// Account methods
	CreateAccount(ctx context.Context, a account.Account) error
	ListAccounts(ctx context.Context, opts ListOpts) ([]account.Account, error)
	// MaxAccountNumber returns the highest number ever stored, or 0.
	MaxAccountNumber(ctx context.Context) (account.Number, error)

	// Core methods
	Ping(ctx context.Context) error
	Close() error
}

type ListOpts struct {
	Limit  int
	Offset int
}
