package account

import (
	"sync"

	"github.com/xraph/bank/history"
	"github.com/xraph/bank/id"
	"github.com/xraph/bank/types"
)

var _ Account = (*Standard)(nil)

// Standard is the base account: any positive amount up to the balance may be withdrawn.
type Standard struct {
	types.Entity

	mu      sync.RWMutex
	id      id.AccountID
	number  Number
	branch  string
	owner   id.ClientID
	balance types.Money
	history *history.History
}

// NewStandard opens an empty standard account.
func NewStandard(number Number, branch string, owner id.ClientID) *Standard {
	if branch == "" {
		branch = DefaultBranch
	}
	return &Standard{
		Entity:  types.NewEntity(),
		id:      id.NewAccountID(),
		number:  number,
		branch:  branch,
		owner:   owner,
		history: history.New(),
	}
}

func (a *Standard) Lock()   { a.mu.Lock() }
func (a *Standard) Unlock() { a.mu.Unlock() }

func (a *Standard) ID() id.AccountID      { return a.id }
func (a *Standard) Number() Number        { return a.number }
func (a *Standard) Branch() string        { return a.branch }
func (a *Standard) Owner() id.ClientID    { return a.owner }
func (a *Standard) Kind() Kind            { return KindStandard }
func (a *Standard) History() history.View { return a.history.ReadOnly() }

func (a *Standard) journal() *history.History { return a.history }

// Balance returns the current balance. It must not be called while holding the account lock.
func (a *Standard) Balance() types.Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.balance
}

// Deposit adds a positive amount to the balance. A deposit that would push
// the balance past the Money range returns types.ErrAmountOverflow.
func (a *Standard) Deposit(amount types.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	next, err := a.balance.CheckedAdd(amount)
	if err != nil {
		return err
	}
	a.balance = next
	a.Touch()
	return nil
}

// Withdraw removes a positive amount that does not exceed the balance.
// The balance never goes negative.
func (a *Standard) Withdraw(amount types.Money) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(a.balance) {
		return ErrInsufficientFunds
	}
	a.balance = a.balance.Subtract(amount)
	a.Touch()
	return nil
}
