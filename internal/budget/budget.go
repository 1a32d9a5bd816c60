// Package budget implements the byte accounting used by every generator:
// a fixed overhead is subtracted from the target size up front, the rest
// is divided evenly across content units, and remainders are dropped so
// the finished artifact lands at or under the requested size.
package budget

import (
	"errors"
	"fmt"
)

// ErrInsufficientBudget reports that a target size cannot cover its fixed
// overhead plus at least one byte per content unit.
var ErrInsufficientBudget = errors.New("insufficient byte budget")

// IsInsufficient reports whether err is a budget shortfall.
func IsInsufficient(err error) bool {
	return errors.Is(err, ErrInsufficientBudget)
}

// PerUnit divides a target byte count across count units after reserving
// overhead bytes of fixed cost. Division floors, so the combined output
// never exceeds the target.
func PerUnit(target, overhead int64, count int) (int64, error) {
	if target <= 0 {
		return 0, fmt.Errorf("target size must be positive, got %d", target)
	}
	if overhead < 0 {
		return 0, fmt.Errorf("fixed overhead must not be negative, got %d", overhead)
	}
	if count < 1 {
		return 0, fmt.Errorf("unit count must be at least 1, got %d", count)
	}
	avail := target - overhead
	if avail < int64(count) {
		return 0, fmt.Errorf("%w: %d bytes remain after %d bytes of overhead, need at least %d",
			ErrInsufficientBudget, avail, overhead, count)
	}
	return avail / int64(count), nil
}

// Ledger tracks bytes spent against a fixed total while a container is
// being filled.
type Ledger struct {
	total     int64
	remaining int64
}

// NewLedger returns a ledger holding total bytes.
func NewLedger(total int64) *Ledger {
	return &Ledger{total: total, remaining: total}
}

// Spend records n bytes written against the ledger.
func (l *Ledger) Spend(n int64) {
	l.remaining -= n
}

// Remaining returns the unspent byte count. It goes negative if callers
// overspend, which the generators treat as a bug in their own sizing.
func (l *Ledger) Remaining() int64 {
	return l.remaining
}

// Spent returns the bytes recorded so far.
func (l *Ledger) Spent() int64 {
	return l.total - l.remaining
}

// Exhausted reports whether fewer than minViable bytes remain, i.e. no
// further unit of that size fits.
func (l *Ledger) Exhausted(minViable int64) bool {
	return l.remaining < minViable
}
