package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/xraph/bank"
	"github.com/xraph/bank/account"
	"github.com/xraph/bank/client"
	"github.com/xraph/bank/store"
)

var _ store.Store = (*Store)(nil)

type Store struct {
	mu sync.RWMutex

	// Client storage, keyed by national id; order keeps registration order.
	clients     map[string]*client.Individual
	clientOrder []string

	// Account storage in creation order.
	accounts  []account.Account
	byNumber  map[account.Number]account.Account
	maxNumber account.Number

	closed bool
}

func New() *Store {
	return &Store{
		clients:     make(map[string]*client.Individual),
		clientOrder: make([]string, 0),
		accounts:    make([]account.Account, 0),
		byNumber:    make(map[account.Number]account.Account),
	}
}

// Client Store implementation
func (s *Store) CreateClient(_ context.Context, c *client.Individual) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return bank.ErrStoreClosed
	}
	if _, exists := s.clients[c.NationalID]; exists {
		return fmt.Errorf("%w: %s", bank.ErrDuplicateClient, c.NationalID)
	}
	s.clients[c.NationalID] = c
	s.clientOrder = append(s.clientOrder, c.NationalID)
	return nil
}

func (s *Store) GetClient(_ context.Context, nationalID string) (*client.Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, bank.ErrStoreClosed
	}
	if c, ok := s.clients[nationalID]; ok {
		return c, nil
	}
	return nil, bank.ErrClientNotFound
}

func (s *Store) ListClients(_ context.Context, opts store.ListOpts) ([]*client.Individual, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, bank.ErrStoreClosed
	}
	start, end := window(len(s.clientOrder), opts)
	result := make([]*client.Individual, 0, end-start)
	for _, nid := range s.clientOrder[start:end] {
		result = append(result, s.clients[nid])
	}
	return result, nil
}

// Account Store implementation
func (s *Store) CreateAccount(_ context.Context, a account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return bank.ErrStoreClosed
	}
	if _, exists := s.byNumber[a.Number()]; exists {
		return fmt.Errorf("%w: account %d", bank.ErrAlreadyExists, a.Number())
	}
	s.accounts = append(s.accounts, a)
	s.byNumber[a.Number()] = a
	if a.Number() > s.maxNumber {
		s.maxNumber = a.Number()
	}
	return nil
}

func (s *Store) ListAccounts(_ context.Context, opts store.ListOpts) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, bank.ErrStoreClosed
	}
	start, end := window(len(s.accounts), opts)
	result := make([]account.Account, end-start)
	copy(result, s.accounts[start:end])
	return result, nil
}

func (s *Store) MaxAccountNumber(_ context.Context) (account.Number, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, bank.ErrStoreClosed
	}
	return s.maxNumber, nil
}

// Core methods
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return bank.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}

// window applies limit/offset to a collection of length n.
func window(n int, opts store.ListOpts) (int, int) {
	start := opts.Offset
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end := start + opts.Limit
	if opts.Limit <= 0 || end > n {
		end = n
	}
	return start, end
}
