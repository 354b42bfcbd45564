// Package observability provides a metrics extension for the bank that
// records lifecycle event counts through a MetricFactory.
package observability

import (
	"context"
	"errors"

	"github.com/xraph/bank/account"
	"github.com/xraph/bank/client"
	"github.com/xraph/bank/history"
	"github.com/xraph/bank/plugin"
	"github.com/xraph/bank/transaction"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                = (*MetricsExtension)(nil)
	_ plugin.OnInit                = (*MetricsExtension)(nil)
	_ plugin.OnClientRegistered    = (*MetricsExtension)(nil)
	_ plugin.OnAccountOpened       = (*MetricsExtension)(nil)
	_ plugin.OnTransactionRecorded = (*MetricsExtension)(nil)
	_ plugin.OnTransactionRejected = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records system-wide lifecycle metrics.
// Register it as a bank plugin to track clients, accounts and movements.
type MetricsExtension struct {
	factory MetricFactory

	// Client metrics
	ClientsRegistered Counter

	// Account metrics
	AccountsOpened Counter
	StandardOpened Counter
	CheckingOpened Counter

	// Movement metrics, amounts observed in reais
	Deposits         Counter
	Withdrawals      Counter
	DepositAmount    Histogram
	WithdrawalAmount Histogram

	// Rejection metrics
	Rejected                  Counter
	RejectedInvalidAmount     Counter
	RejectedInsufficientFunds Counter
	RejectedOverdraftLimit    Counter
	RejectedWithdrawalLimit   Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions or NewPrometheusFactory standalone.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		ClientsRegistered: factory.Counter("bank.client.registered"),

		AccountsOpened: factory.Counter("bank.account.opened"),
		StandardOpened: factory.Counter("bank.account.opened.standard"),
		CheckingOpened: factory.Counter("bank.account.opened.checking"),

		Deposits:         factory.Counter("bank.transaction.deposits"),
		Withdrawals:      factory.Counter("bank.transaction.withdrawals"),
		DepositAmount:    factory.Histogram("bank.transaction.deposit.amount"),
		WithdrawalAmount: factory.Histogram("bank.transaction.withdrawal.amount"),

		Rejected:                  factory.Counter("bank.transaction.rejected"),
		RejectedInvalidAmount:     factory.Counter("bank.transaction.rejected.invalid_amount"),
		RejectedInsufficientFunds: factory.Counter("bank.transaction.rejected.insufficient_funds"),
		RejectedOverdraftLimit:    factory.Counter("bank.transaction.rejected.overdraft_limit"),
		RejectedWithdrawalLimit:   factory.Counter("bank.transaction.rejected.withdrawal_limit"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	// No initialization needed
	return nil
}

// ──────────────────────────────────────────────────
// Client and account hooks
// ──────────────────────────────────────────────────

// OnClientRegistered implements plugin.OnClientRegistered.
func (m *MetricsExtension) OnClientRegistered(_ context.Context, _ *client.Individual) error {
	m.ClientsRegistered.Inc()
	return nil
}

// OnAccountOpened implements plugin.OnAccountOpened.
func (m *MetricsExtension) OnAccountOpened(_ context.Context, _ *client.Individual, a account.Account) error {
	m.AccountsOpened.Inc()
	switch a.Kind() {
	case account.KindStandard:
		m.StandardOpened.Inc()
	case account.KindChecking:
		m.CheckingOpened.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Transaction hooks
// ──────────────────────────────────────────────────

// OnTransactionRecorded implements plugin.OnTransactionRecorded.
func (m *MetricsExtension) OnTransactionRecorded(_ context.Context, _ account.Account, rec history.Record) error {
	reais, _ := rec.Amount.Decimal().Float64()
	switch rec.Kind {
	case transaction.KindDeposit:
		m.Deposits.Inc()
		m.DepositAmount.Observe(reais)
	case transaction.KindWithdrawal:
		m.Withdrawals.Inc()
		m.WithdrawalAmount.Observe(reais)
	}
	return nil
}

// OnTransactionRejected implements plugin.OnTransactionRejected.
func (m *MetricsExtension) OnTransactionRejected(_ context.Context, _ account.Account, _ transaction.Request, reason error) error {
	m.Rejected.Inc()
	switch {
	case errors.Is(reason, account.ErrInvalidAmount):
		m.RejectedInvalidAmount.Inc()
	case errors.Is(reason, account.ErrInsufficientFunds):
		m.RejectedInsufficientFunds.Inc()
	case errors.Is(reason, account.ErrOverdraftLimitExceeded):
		m.RejectedOverdraftLimit.Inc()
	case errors.Is(reason, account.ErrWithdrawalLimitExceeded):
		m.RejectedWithdrawalLimit.Inc()
	}
	return nil
}
