package bank

import (
	"context"
	"time"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/history"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// Statement is a point-in-time view of one account: its identity, current
// balance and every recorded movement in chronological order.
type Statement struct {
	AccountNumber account.Number   `json:"account_number"`
	Branch        string           `json:"branch"`
	Kind          account.Kind     `json:"kind"`
	Owner         string           `json:"owner"`
	NationalID    string           `json:"national_id"`
	Balance       types.Money      `json:"balance"`
	Deposits      types.Money      `json:"deposits"`
	Withdrawals   types.Money      `json:"withdrawals"`
	Records       []history.Record `json:"records"`
	GeneratedAt   time.Time        `json:"generated_at"`
}

// Empty reports whether the account has no recorded movements.
func (s *Statement) Empty() bool { return len(s.Records) == 0 }

// Statement builds the statement of a client's account. It fails with
// ErrAmountOverflow when a movement total no longer fits in Money.
func (r *Registry) Statement(ctx context.Context, nationalID string, number account.Number) (*Statement, error) {
	c, err := r.FindClient(ctx, nationalID)
	if err != nil {
		return nil, err
	}
	a, err := r.FindAccount(c, number)
	if err != nil {
		return nil, err
	}

	h := a.History()
	deposits, err := h.Total(transaction.KindDeposit)
	if err != nil {
		return nil, err
	}
	withdrawals, err := h.Total(transaction.KindWithdrawal)
	if err != nil {
		return nil, err
	}
	return &Statement{
		AccountNumber: a.Number(),
		Branch:        a.Branch(),
		Kind:          a.Kind(),
		Owner:         c.Name,
		NationalID:    c.NationalID,
		Balance:       a.Balance(),
		Deposits:      deposits,
		Withdrawals:   withdrawals,
		Records:       h.Records(),
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
