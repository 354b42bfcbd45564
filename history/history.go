// Package history holds the append-only record of money movements on one account.
package history

import (
	"fmt"
	"sync"
	"time"

	"github.com/xraph/bank/id"
	"github.com/xraph/bank/transaction"
	"github.com/xraph/bank/types"
)

// Record is one ledger event. Records are values; a History hands out copies.
type Record struct {
	ID         id.TransactionID `json:"id"`
	Kind       transaction.Kind `json:"kind"`
	Amount     types.Money      `json:"amount"`
	Sequence   int              `json:"sequence"` // 1-based, chronological
	RecordedAt time.Time        `json:"recorded_at"`
}

// View is the read-only side of a History.
type View interface {
	Records() []Record
	Len() int
	IsEmpty() bool
	CountByKind(kind transaction.Kind) int
	Total(kind transaction.Kind) (types.Money, error)
}

var _ View = (*History)(nil)

// History is an ordered, append-only sequence of records.
// Insertion order is chronological order; records are never reordered or edited.
type History struct {
	mu      sync.RWMutex
	records []Record
}

// New returns an empty history.
func New() *History {
	return &History{records: make([]Record, 0)}
}

// Append records a movement and returns the stored record.
func (h *History) Append(kind transaction.Kind, amount types.Money) Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	r := Record{
		ID:         id.NewTransactionID(),
		Kind:       kind,
		Amount:     amount,
		Sequence:   len(h.records) + 1,
		RecordedAt: time.Now().UTC(),
	}
	h.records = append(h.records, r)
	return r
}

// CountByKind returns how many records of the given kind exist.
// A linear scan; per-session histories stay small.
func (h *History) CountByKind(kind transaction.Kind) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	n := 0
	for _, r := range h.records {
		if r.Kind == kind {
			n++
		}
	}
	return n
}

// Total sums the amounts of all records of the given kind. Lifetime totals
// can exceed the range of a balance; that case returns types.ErrAmountOverflow.
func (h *History) Total(kind transaction.Kind) (types.Money, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := types.Zero()
	for _, r := range h.records {
		if r.Kind != kind {
			continue
		}
		var err error
		if total, err = total.CheckedAdd(r.Amount); err != nil {
			return types.Zero(), fmt.Errorf("history: %s total: %w", kind, err)
		}
	}
	return total, nil
}

// IsEmpty reports whether nothing has been recorded yet.
func (h *History) IsEmpty() bool {
	return h.Len() == 0
}

// Len returns the number of records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Records returns a copy of all records in chronological order.
func (h *History) Records() []Record {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]Record, len(h.records))
	copy(out, h.records)
	return out
}

// ReadOnly returns a View of h that cannot be converted back into h.
func (h *History) ReadOnly() View { return readOnly{h} }

type readOnly struct{ h *History }

func (r readOnly) Records() []Record                     { return r.h.Records() }
func (r readOnly) Len() int                              { return r.h.Len() }
func (r readOnly) IsEmpty() bool                         { return r.h.IsEmpty() }
func (r readOnly) CountByKind(kind transaction.Kind) int { return r.h.CountByKind(kind) }
func (r readOnly) Total(kind transaction.Kind) (types.Money, error) {
	return r.h.Total(kind)
}
