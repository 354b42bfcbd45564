// Package transaction defines the closed set of money movements a client can
// request against one of its accounts.
package transaction

import (
	"errors"

	"github.com/xraph/bank/types"
)

// ErrUnknownKind is returned for a request whose kind is not deposit or withdrawal.
var ErrUnknownKind = errors.New("bank: unknown transaction kind")

// Kind names the direction of a movement.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

func (k Kind) String() string { return string(k) }

// Request is an immutable instruction to move money. It carries no reference
// to an account until it is dispatched by a client.
type Request struct {
	kind   Kind
	amount types.Money
}

// Deposit builds a deposit request.
func Deposit(amount types.Money) Request {
	return Request{kind: KindDeposit, amount: amount}
}

// Withdrawal builds a withdrawal request.
func Withdrawal(amount types.Money) Request {
	return Request{kind: KindWithdrawal, amount: amount}
}

func (r Request) Kind() Kind { return r.kind }

func (r Request) Amount() types.Money { return r.amount }

// Validate rejects the zero Request. Amount rules belong to the account.
func (r Request) Validate() error {
	if !r.kind.Valid() {
		return ErrUnknownKind
	}
	return nil
}
