package client

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

func newClientWithChecking(t *testing.T) (*Individual, account.Account) {
	t.Helper()
	c := NewIndividual("Rua A, 1 - Centro - Recife/PE", "111", "Maria", "01-02-1990")
	a := account.NewChecking(1, "", c.ID)
	c.AddAccount(a)
	return c, a
}

func TestAccountsAndFindAccount(t *testing.T) {
	c := NewIndividual("", "222", "João", "")
	a1 := account.NewStandard(1, "", c.ID)
	a2 := account.NewChecking(4, "", c.ID)
	c.AddAccount(a1)
	c.AddAccount(a2)

	if got := c.Accounts(); len(got) != 2 || got[0] != account.Account(a1) || got[1] != account.Account(a2) {
		t.Fatalf("Accounts() = %v", got)
	}
	if a, ok := c.FindAccount(4); !ok || a != account.Account(a2) {
		t.Fatalf("FindAccount(4) = %v, %v", a, ok)
	}
	if _, ok := c.FindAccount(2); ok {
		t.Fatal("FindAccount(2) should miss")
	}
}

func TestExecuteTransactionRecordsSuccess(t *testing.T) {
	c, a := newClientWithChecking(t)

	rec, err := c.ExecuteTransaction(a, transaction.Deposit(types.Reais(1000)))
	if err != nil {
		t.Fatal(err)
	}
	if rec.Kind != transaction.KindDeposit || !rec.Amount.Equal(types.Reais(1000)) || rec.Sequence != 1 {
		t.Fatalf("unexpected record: %+v", rec)
	}

	if _, err := c.ExecuteTransaction(a, transaction.Withdrawal(types.Reais(200))); err != nil {
		t.Fatal(err)
	}
	if got := a.Balance(); !got.Equal(types.Reais(800)) {
		t.Fatalf("balance=%v want=%v", got, types.Reais(800))
	}
	if a.History().Len() != 2 {
		t.Fatalf("history len=%d want=2", a.History().Len())
	}
}

func TestExecuteTransactionLeavesHistoryOnFailure(t *testing.T) {
	c, a := newClientWithChecking(t)

	tests := []struct {
		name string
		req  transaction.Request
		want error
	}{
		{"zero deposit", transaction.Deposit(types.Zero()), account.ErrInvalidAmount},
		{"negative deposit", transaction.Deposit(types.Reais(-5)), account.ErrInvalidAmount},
		{"overdrawn", transaction.Withdrawal(types.Reais(10)), account.ErrInsufficientFunds},
		{"over ceiling", transaction.Withdrawal(types.Reais(501)), account.ErrOverdraftLimitExceeded},
		{"unknown kind", transaction.Request{}, transaction.ErrUnknownKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.ExecuteTransaction(a, tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("want %v, got %v", tt.want, err)
			}
			if !a.History().IsEmpty() || !a.Balance().IsZero() {
				t.Fatalf("state changed: balance=%v history=%d", a.Balance(), a.History().Len())
			}
		})
	}
}

func TestExecuteTransactionRejectsForeignAccount(t *testing.T) {
	owner, a := newClientWithChecking(t)
	other := NewIndividual("", "333", "Ana", "")

	if _, err := other.ExecuteTransaction(a, transaction.Deposit(types.Reais(10))); !errors.Is(err, ErrForeignAccount) {
		t.Fatalf("want ErrForeignAccount, got %v", err)
	}
	if _, err := owner.ExecuteTransaction(nil, transaction.Deposit(types.Reais(10))); !errors.Is(err, ErrForeignAccount) {
		t.Fatalf("want ErrForeignAccount for nil account, got %v", err)
	}
	typedNil := []account.Account{(*account.Standard)(nil), (*account.Checking)(nil)}
	for _, n := range typedNil {
		if _, err := owner.ExecuteTransaction(n, transaction.Deposit(types.Reais(10))); !errors.Is(err, ErrForeignAccount) {
			t.Fatalf("want ErrForeignAccount for %T nil, got %v", n, err)
		}
	}
	if !a.History().IsEmpty() {
		t.Fatal("history should be untouched")
	}
}

// Concurrent withdrawals must not both pass the count check.
func TestExecuteTransactionSerializesPerAccount(t *testing.T) {
	c, a := newClientWithChecking(t)
	if _, err := c.ExecuteTransaction(a, transaction.Deposit(types.Reais(1000))); err != nil {
		t.Fatal(err)
	}

	const workers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := c.ExecuteTransaction(a, transaction.Withdrawal(types.Reais(1))); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if succeeded != account.DefaultMaxWithdrawals {
		t.Fatalf("succeeded=%d want=%d", succeeded, account.DefaultMaxWithdrawals)
	}
	if got := a.Balance(); !got.Equal(types.Reais(997)) {
		t.Fatalf("balance=%v want=%v", got, types.Reais(997))
	}
	if a.History().Len() != 1+account.DefaultMaxWithdrawals {
		t.Fatalf("history len=%d", a.History().Len())
	}
}

func TestExecuteTransactionDepositOverflow(t *testing.T) {
	c, a := newClientWithChecking(t)
	if _, err := c.ExecuteTransaction(a, transaction.Deposit(types.BRL(math.MaxInt64))); err != nil {
		t.Fatal(err)
	}

	_, err := c.ExecuteTransaction(a, transaction.Deposit(types.BRL(1)))
	if !errors.Is(err, types.ErrAmountOverflow) {
		t.Fatalf("want ErrAmountOverflow, got %v", err)
	}
	if got := a.Balance(); !got.Equal(types.BRL(math.MaxInt64)) {
		t.Fatalf("balance=%v want unchanged", got)
	}
	if a.History().Len() != 1 {
		t.Fatalf("history len=%d want=1", a.History().Len())
	}
}
