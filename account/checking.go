package account

import (
	"github.com/xraph/bank/id"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

var _ Account = (*Checking)(nil)

// Checking defaults.
var (
	DefaultOverdraftLimit = types.Reais(500)
	DefaultMaxWithdrawals = 3
)

// Checking is a standard account with two extra withdrawal rules: a
// per-transaction ceiling and a maximum number of withdrawals over the account lifetime.
// The ceiling is not a negative-balance allowance; the base balance check
// still applies.
type Checking struct {
	*Standard

	overdraftLimit types.Money
	maxWithdrawals int
}

// Option configures a Checking account.
type Option func(*Checking)

// WithOverdraftLimit sets the largest amount a single withdrawal may move.
func WithOverdraftLimit(limit types.Money) Option {
	return func(c *Checking) { c.overdraftLimit = limit }
}

// WithMaxWithdrawals sets how many withdrawals the account allows in total.
func WithMaxWithdrawals(n int) Option {
	return func(c *Checking) { c.maxWithdrawals = n }
}

// NewChecking opens an empty checking account.
func NewChecking(number Number, branch string, owner id.ClientID, opts ...Option) *Checking {
	c := &Checking{
		Standard:       NewStandard(number, branch, owner),
		overdraftLimit: DefaultOverdraftLimit,
		maxWithdrawals: DefaultMaxWithdrawals,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Checking) Kind() Kind                  { return KindChecking }
func (c *Checking) OverdraftLimit() types.Money { return c.overdraftLimit }
func (c *Checking) MaxWithdrawals() int         { return c.maxWithdrawals }

// Withdraw checks the withdrawal count first, then the per-transaction
// ceiling, then delegates to the base rules. The base result is authoritative.
func (c *Checking) Withdraw(amount types.Money) error {
	if c.history.CountByKind(transaction.KindWithdrawal) >= c.maxWithdrawals {
		return ErrWithdrawalLimitExceeded
	}
	if amount.GreaterThan(c.overdraftLimit) {
		return ErrOverdraftLimitExceeded
	}
	return c.Standard.Withdraw(amount)
}
