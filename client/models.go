// Package client implements account holders.
//
// A Client owns its accounts and is the authorizing entry point for every
// movement: it checks ownership and holds the account lock around account.Apply.
package client

import (
	"errors"
	"sync"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/history"
	"github.com/xraph/bank/id"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// ErrForeignAccount is returned when a client dispatches a transaction against
// an account it does not own.
var ErrForeignAccount = errors.New("bank: account does not belong to client")

// Client is the base account holder.
type Client struct {
	types.Entity
	ID      id.ClientID `json:"id"`
	Address string      `json:"address" validate:"omitempty,max=200"`

	mu       sync.RWMutex
	accounts []account.Account
}

// Individual is a natural person identified by a national id (CPF).
type Individual struct {
	Client
	NationalID string `json:"national_id" validate:"required,max=32"`
	Name       string `json:"name" validate:"required,max=120"`
	// BirthDate is kept as entered, dd-mm-yyyy.
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=02-01-2006"`
}

// NewIndividual creates an individual client with no accounts.
func NewIndividual(address, nationalID, name, birthDate string) *Individual {
	return &Individual{
		Client: Client{
			Entity:  types.NewEntity(),
			ID:      id.NewClientID(),
			Address: address,
		},
		NationalID: nationalID,
		Name:       name,
		BirthDate:  birthDate,
	}
}

// AddAccount appends an account to the client's collection.
// Uniqueness of account numbers is the registry's concern.
func (c *Client) AddAccount(a account.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append(c.accounts, a)
	c.Touch()
}

// Accounts returns the client's accounts in the order they were added.
func (c *Client) Accounts() []account.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]account.Account, len(c.accounts))
	copy(out, c.accounts)
	return out
}

// FindAccount looks up one of the client's own accounts by number.
func (c *Client) FindAccount(number account.Number) (account.Account, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, a := range c.accounts {
		if a.Number() == number {
			return a, true
		}
	}
	return nil, false
}

// ExecuteTransaction dispatches req against a and, on success, appends the
// movement to the account history. On failure the history is untouched and
// the account error is returned unchanged.
//
// The account lock is held across the rule checks, the balance change and
// the append, so two transactions on one account never interleave.
func (c *Client) ExecuteTransaction(a account.Account, req transaction.Request) (history.Record, error) {
	if err := req.Validate(); err != nil {
		return history.Record{}, err
	}
	// A nil or typed-nil account is never one of the client's.
	if account.IsNil(a) || a.Owner() != c.ID {
		return history.Record{}, ErrForeignAccount
	}

	a.Lock()
	defer a.Unlock()

	return account.Apply(a, req)
}
