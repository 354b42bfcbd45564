// Package account implements bank accounts and their withdrawal policies.
//
// Every account supports Deposit and Withdraw. Standard applies the base
// rules; Checking layers a per-transaction ceiling and a withdrawal count
// limit on top of them. Deposit and Withdraw never touch the history; Apply
// pairs a successful balance change with a history append, and the client
// calls it under the account lock.
package account

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/xraph/bank/history"
	"github.com/xraph/bank/id"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// Account rule violations.
var (
	ErrInvalidAmount           = errors.New("bank: amount must be greater than zero")
	ErrInsufficientFunds       = errors.New("bank: insufficient funds")
	ErrOverdraftLimitExceeded  = errors.New("bank: withdrawal exceeds per-transaction limit")
	ErrWithdrawalLimitExceeded = errors.New("bank: withdrawal count limit reached")
	ErrUnknownKind             = errors.New("bank: unknown account kind")
)

// DefaultBranch is the branch code every account is opened in unless configured otherwise.
const DefaultBranch = "0001"

// Number is the customer-facing account number, assigned sequentially from 1.
type Number int

func (n Number) String() string { return fmt.Sprintf("%d", int(n)) }

// Kind names an account variant.
type Kind string

const (
	KindStandard Kind = "standard"
	KindChecking Kind = "checking"
)

// Account is the capability set shared by every variant.
//
// Deposit and Withdraw check and mutate the balance without locking; callers
// that may run concurrently must hold the account lock around them.
type Account interface {
	sync.Locker

	ID() id.AccountID
	Number() Number
	Branch() string
	// Owner is a lookup reference only; the client owns the account, not the reverse.
	Owner() id.ClientID
	Kind() Kind
	Balance() types.Money
	// History is read-only; records are added through Apply.
	History() history.View

	Deposit(amount types.Money) error
	Withdraw(amount types.Money) error

	journal() *history.History
}

// New constructs an account of the given kind. Options only affect Checking.
func New(kind Kind, number Number, branch string, owner id.ClientID, opts ...Option) (Account, error) {
	switch kind {
	case KindStandard:
		return NewStandard(number, branch, owner), nil
	case KindChecking:
		return NewChecking(number, branch, owner, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// Apply dispatches req to a and, on success, appends the movement to the
// account history. On failure the history is untouched and the account error
// is returned unchanged. The caller must hold a's lock.
func Apply(a Account, req transaction.Request) (history.Record, error) {
	var err error
	switch req.Kind() {
	case transaction.KindDeposit:
		err = a.Deposit(req.Amount())
	case transaction.KindWithdrawal:
		err = a.Withdraw(req.Amount())
	default:
		err = fmt.Errorf("%w: %q", transaction.ErrUnknownKind, req.Kind())
	}
	if err != nil {
		return history.Record{}, err
	}
	return a.journal().Append(req.Kind(), req.Amount()), nil
}

// IsNil reports whether a is nil or a typed nil pointer.
func IsNil(a Account) bool {
	if a == nil {
		return true
	}
	v := reflect.ValueOf(a)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
