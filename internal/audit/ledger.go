package audit

import (
	"sync"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/execution"
)

// Ledger stores intents in memory for quick inspection (tests, preflight).
type Ledger struct {
	mu      sync.Mutex
	intents []execution.Intent
}

// NewLedger creates an empty ledger optionally pre-sizing storage.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{intents: make([]execution.Intent, 0, capacity)}
}

// Record appends an intent to the ledger.
func (l *Ledger) Record(intent execution.Intent) {
	l.mu.Lock()
	l.intents = append(l.intents, intent)
	l.mu.Unlock()
}

// Snapshot returns a copy of the recorded intents.
func (l *Ledger) Snapshot() []execution.Intent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]execution.Intent, len(l.intents))
	copy(out, l.intents)
	return out
}

// Reset clears all stored intents.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.intents = l.intents[:0]
	l.mu.Unlock()
}
