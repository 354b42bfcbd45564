// Package bank provides an in-memory banking core for Go applications.
//
// Bank is designed as a library, not a service. It provides:
//
//   - Clients identified by national id, each owning any number of accounts
//   - Standard accounts that never go below zero
//   - Checking accounts with a per-withdrawal ceiling and a withdrawal count limit
//   - An append-only history per account, written only for successful movements
//   - Plugin hooks for auditing and metrics
//
// # Quick Start
//
//	import (
//	    "github.com/xraph/bank"
//	    "github.com/xraph/bank/client"
//	    "github.com/xraph/bank/store/memory"
//	)
//
//	b := bank.New(memory.New())
//	if err := b.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	defer b.Stop()
//
//	c := client.NewIndividual("Rua A, 10", "111", "Ana", "01-02-1990")
//	if err := b.RegisterClient(ctx, c); err != nil {
//	    log.Fatal(err)
//	}
//
//	acct, _ := b.OpenAccount(ctx, c, bank.Checking)
//	_, err := b.Execute(ctx, c, acct, bank.Deposit(bank.Reais(1000)))
//
// # Money
//
// All monetary values are integer centavos. Use ParseMoney to read
// user input such as "12,50" or "12.50"; amounts with more than two
// decimal places are rejected rather than rounded.
//
// # Errors
//
// Rejected movements return sentinel errors comparable with errors.Is:
// ErrInvalidAmount, ErrInsufficientFunds, ErrOverdraftLimitExceeded and
// ErrWithdrawalLimitExceeded. A rejected movement never changes the balance
// and never appears in the history.
//
// # TypeID
//
// Clients, accounts and history records carry TypeIDs:
//
//	cli_01h2xcejqtf2nbrexx3vqjhp41   // Client ID
//	acct_01h2xcejqtf2nbrexx3vqjhp41  // Account ID
//	txn_01h455vb4pex5vsknk084sn02q   // Transaction ID
package bank
