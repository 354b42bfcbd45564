package bank

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/client"
	"github.com/xraph/bank/history"
	"github.com/xraph/bank/plugin"
	"github.com/xraph/bank/store"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// Registry is the bank: it owns the client and account collections and
// assigns account numbers.
type Registry struct {
	store    store.Store
	plugins  *plugin.Registry
	logger   *slog.Logger
	validate *validator.Validate

	// mu serializes numbering so two accounts never share a number.
	mu         sync.Mutex
	lastNumber account.Number

	// err holds the first invalid option; Start and OpenAccount return it.
	err error

	// Configuration
	branch         string
	overdraftLimit types.Money
	maxWithdrawals int
}

// New creates a new Registry backed by s.
func New(s store.Store, opts ...Option) *Registry {
	r := &Registry{
		store:          s,
		plugins:        plugin.NewRegistry(),
		logger:         slog.Default(),
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		branch:         account.DefaultBranch,
		overdraftLimit: account.DefaultOverdraftLimit,
		maxWithdrawals: account.DefaultMaxWithdrawals,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Option configures a Registry instance.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
		r.plugins.WithLogger(logger)
	}
}

// WithPlugin registers a plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(r *Registry) {
		_ = r.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
}

// WithHookTimeout bounds each plugin hook call.
func WithHookTimeout(d time.Duration) Option {
	return func(r *Registry) {
		r.plugins.WithTimeout(d)
	}
}

// WithBranch sets the branch code new accounts are opened in.
func WithBranch(branch string) Option {
	return func(r *Registry) {
		if branch != "" {
			r.branch = branch
		}
	}
}

// WithOverdraftLimit sets the per-withdrawal ceiling of new checking accounts.
// A negative limit is an invalid configuration.
func WithOverdraftLimit(limit types.Money) Option {
	return func(r *Registry) {
		if limit.IsNegative() {
			r.fail(fmt.Errorf("%w: overdraft limit %s", ErrInvalidInput, limit))
			return
		}
		r.overdraftLimit = limit
	}
}

// WithMaxWithdrawals sets the withdrawal count limit of new checking accounts.
// Zero opens accounts that accept no withdrawals; a negative count is an
// invalid configuration.
func WithMaxWithdrawals(n int) Option {
	return func(r *Registry) {
		if n < 0 {
			r.fail(fmt.Errorf("%w: max withdrawals %d", ErrInvalidInput, n))
			return
		}
		r.maxWithdrawals = n
	}
}

func (r *Registry) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Store returns the underlying store.
func (r *Registry) Store() store.Store { return r.store }

// Plugins returns the plugin registry.
func (r *Registry) Plugins() *plugin.Registry { return r.plugins }

// Branch returns the branch code used for new accounts.
func (r *Registry) Branch() string { return r.branch }

// Start checks the store and initializes plugins.
func (r *Registry) Start(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreNotReady, err)
	}

	r.plugins.EmitInit(ctx, r)

	r.logger.Info("bank started",
		"branch", r.branch,
		"overdraft_limit", r.overdraftLimit.String(),
		"max_withdrawals", r.maxWithdrawals,
		"plugins", r.plugins.Count(),
	)

	return nil
}

// Stop shuts down the Registry.
func (r *Registry) Stop() error {
	ctx := context.Background()
	r.plugins.EmitShutdown(ctx)

	return r.store.Close()
}

// ──────────────────────────────────────────────────
// Clients
// ──────────────────────────────────────────────────

// RegisterClient validates c and adds it to the registry. A national id may
// be registered only once.
//
// A single failing field comes back as a ValidationError; several come back
// as a MultiError of ValidationError values. Both match ErrInvalidInput under
// errors.Is. A second registration of the same national id returns
// ErrDuplicateClient.
func (r *Registry) RegisterClient(ctx context.Context, c *client.Individual) error {
	if err := r.validateClient(c); err != nil {
		return err
	}

	if err := r.store.CreateClient(ctx, c); err != nil {
		return err
	}

	r.logger.Info("client registered",
		"national_id", c.NationalID,
		"client_id", c.ID.String(),
	)

	r.plugins.EmitClientRegistered(ctx, c)
	return nil
}

// validateClient maps validator failures onto ValidationError values.
func (r *Registry) validateClient(c *client.Individual) error {
	if c == nil {
		return ValidationError{Field: "client", Message: "required"}
	}

	err := r.validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var multi MultiError
	for _, fe := range verrs {
		multi.Add(ValidationError{Field: fe.Field(), Message: fe.Tag()})
	}
	if len(multi.Errors) == 1 {
		return multi.First()
	}
	return multi
}

// FindClient returns the client registered under nationalID.
func (r *Registry) FindClient(ctx context.Context, nationalID string) (*client.Individual, error) {
	return r.store.GetClient(ctx, nationalID)
}

// Clients returns every registered client in registration order.
func (r *Registry) Clients(ctx context.Context) ([]*client.Individual, error) {
	return r.store.ListClients(ctx, store.ListOpts{})
}

// ──────────────────────────────────────────────────
// Accounts
// ──────────────────────────────────────────────────

// OpenAccount creates an account of the given kind for a registered client.
// Numbers are assigned sequentially across all clients and never reused.
func (r *Registry) OpenAccount(ctx context.Context, c *client.Individual, kind account.Kind) (account.Account, error) {
	if r.err != nil {
		return nil, r.err
	}
	if c == nil {
		return nil, ErrClientNotFound
	}
	registered, err := r.store.GetClient(ctx, c.NationalID)
	if err != nil {
		return nil, err
	}
	if registered != c {
		return nil, fmt.Errorf("%w: %s", ErrClientNotFound, c.NationalID)
	}

	r.mu.Lock()
	a, err := r.openLocked(ctx, c, kind)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	r.logger.Info("account opened",
		"national_id", c.NationalID,
		"account", a.Number().String(),
		"branch", a.Branch(),
		"kind", string(a.Kind()),
	)

	r.plugins.EmitAccountOpened(ctx, c, a)
	return a, nil
}

func (r *Registry) openLocked(ctx context.Context, c *client.Individual, kind account.Kind) (account.Account, error) {
	stored, err := r.store.MaxAccountNumber(ctx)
	if err != nil {
		return nil, err
	}
	next := max(stored, r.lastNumber) + 1

	a, err := account.New(kind, next, r.branch, c.ID,
		account.WithOverdraftLimit(r.overdraftLimit),
		account.WithMaxWithdrawals(r.maxWithdrawals),
	)
	if err != nil {
		return nil, err
	}

	if err := r.store.CreateAccount(ctx, a); err != nil {
		return nil, err
	}
	c.AddAccount(a)
	r.lastNumber = next

	return a, nil
}

// FindAccount looks up one of c's own accounts by number.
func (r *Registry) FindAccount(c *client.Individual, number account.Number) (account.Account, error) {
	if c == nil {
		return nil, ErrClientNotFound
	}
	a, ok := c.FindAccount(number)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, number)
	}
	return a, nil
}

// Accounts returns every account in creation order.
func (r *Registry) Accounts(ctx context.Context) ([]account.Account, error) {
	return r.store.ListAccounts(ctx, store.ListOpts{})
}

// ──────────────────────────────────────────────────
// Transactions
// ──────────────────────────────────────────────────

// Execute applies req to a on behalf of c. A rejected movement leaves the
// balance and history untouched and returns the account's error.
func (r *Registry) Execute(ctx context.Context, c *client.Individual, a account.Account, req transaction.Request) (history.Record, error) {
	if c == nil {
		return history.Record{}, ErrClientNotFound
	}

	rec, err := c.ExecuteTransaction(a, req)
	if err != nil {
		attrs := []any{
			"national_id", c.NationalID,
			"kind", req.Kind().String(),
			"amount", req.Amount().String(),
			"error", err,
		}
		if !account.IsNil(a) {
			attrs = append(attrs, "account", a.Number().String())
		}
		r.logger.Warn("transaction rejected", attrs...)

		if !account.IsNil(a) && !errors.Is(err, ErrForeignAccount) {
			r.plugins.EmitTransactionRejected(ctx, a, req, err)
		}
		return history.Record{}, err
	}

	r.logger.Info("transaction recorded",
		"national_id", c.NationalID,
		"account", a.Number().String(),
		"kind", rec.Kind.String(),
		"amount", rec.Amount.String(),
		"sequence", rec.Sequence,
	)

	r.plugins.EmitTransactionRecorded(ctx, a, rec)
	return rec, nil
}

// Transact resolves the client and account, then executes req.
func (r *Registry) Transact(ctx context.Context, nationalID string, number account.Number, req transaction.Request) (history.Record, error) {
	c, err := r.FindClient(ctx, nationalID)
	if err != nil {
		return history.Record{}, err
	}
	a, err := r.FindAccount(c, number)
	if err != nil {
		return history.Record{}, err
	}
	return r.Execute(ctx, c, a, req)
}
