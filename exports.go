package bank

import (
	"github.com/xraph/bank/account"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Money constructors
var (
	BRL        = types.BRL
	Reais      = types.Reais
	Zero       = types.Zero
	Sum        = types.Sum
	ParseMoney = types.ParseMoney
)

// Re-export Entity constructor
var NewEntity = types.NewEntity

// Re-export account kinds and transaction constructors
const (
	Standard = account.KindStandard
	Checking = account.KindChecking
)

var (
	Deposit    = transaction.Deposit
	Withdrawal = transaction.Withdrawal
)
