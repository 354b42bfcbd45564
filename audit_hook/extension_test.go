package audithook_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xraph/bank"
	audithook "github.com/xraph/bank/audit_hook"
	"github.com/xraph/bank/client"
	"github.com/xraph/bank/store/memory"
)

type memRecorder struct {
	mu     sync.Mutex
	events []*audithook.AuditEvent
}

func (r *memRecorder) Record(_ context.Context, evt *audithook.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, evt)
	return nil
}

func (r *memRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

func runScenario(t *testing.T, ext *audithook.Extension) {
	t.Helper()
	ctx := context.Background()
	b := bank.New(memory.New(), bank.WithPlugin(ext))
	if err := b.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer b.Stop()

	c := client.NewIndividual("Rua A, 10", "111", "Ana", "")
	if err := b.RegisterClient(ctx, c); err != nil {
		t.Fatal(err)
	}
	a, err := b.OpenAccount(ctx, c, bank.Standard)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = b.Execute(ctx, c, a, bank.Deposit(bank.Reais(10)))
	_, _ = b.Execute(ctx, c, a, bank.Withdrawal(bank.Reais(4)))
	_, _ = b.Execute(ctx, c, a, bank.Withdrawal(bank.Reais(100)))
}

func TestExtensionRecordsLifecycle(t *testing.T) {
	rec := &memRecorder{}
	runScenario(t, audithook.New(rec))

	want := []string{
		audithook.ActionClientRegistered,
		audithook.ActionAccountOpened,
		audithook.ActionDeposit,
		audithook.ActionWithdrawal,
		audithook.ActionTransactionRejected,
	}
	got := rec.actions()
	if len(got) != len(want) {
		t.Fatalf("actions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("action[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	rejected := rec.events[4]
	if rejected.Outcome != audithook.OutcomeFailure || rejected.Severity != audithook.SeverityWarning {
		t.Errorf("rejected outcome/severity = %s/%s", rejected.Outcome, rejected.Severity)
	}
	if rejected.Reason != bank.ErrInsufficientFunds.Error() {
		t.Errorf("rejected reason = %q", rejected.Reason)
	}
	if rec.events[2].ResourceID == "" {
		t.Error("transaction events should carry the record id")
	}
	if got := rec.events[1].Metadata["account"]; got != "1" {
		t.Errorf("account metadata = %v, want 1", got)
	}
}

func TestExtensionActionFilters(t *testing.T) {
	tests := []struct {
		name string
		opt  audithook.Option
		want int
	}{
		{"enabled only", audithook.WithEnabledActions(audithook.ActionTransactionRejected), 1},
		{"disabled", audithook.WithDisabledActions(audithook.ActionDeposit, audithook.ActionWithdrawal), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memRecorder{}
			runScenario(t, audithook.New(rec, tt.opt))
			if got := len(rec.actions()); got != tt.want {
				t.Errorf("events = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExtensionSwallowsRecorderErrors(t *testing.T) {
	failing := audithook.RecorderFunc(func(context.Context, *audithook.AuditEvent) error {
		return errors.New("backend down")
	})
	ext := audithook.New(failing)

	c := client.NewIndividual("", "111", "Ana", "")
	if err := ext.OnClientRegistered(context.Background(), c); err != nil {
		t.Errorf("OnClientRegistered returned %v, want nil", err)
	}
}
