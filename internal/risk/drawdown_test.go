package risk

import (
	"testing"
	"time"
)

func TestRecordEvictsBeyondSpan(t *testing.T) {
	guard := NewDrawdownGuard(24*time.Hour, 0.05)
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	guard.Record(Snapshot{Ts: t0, ValueUSD: 1000})
	guard.Record(Snapshot{Ts: t0.Add(time.Hour), ValueUSD: 1000})
	guard.Record(Snapshot{Ts: t0.Add(25 * time.Hour), ValueUSD: 1000})

	if guard.Size() != 2 {
		t.Fatalf("expected t0 evicted, size %d", guard.Size())
	}
	oldest, ok := guard.Oldest()
	if !ok {
		t.Fatalf("expected surviving snapshots")
	}
	if !oldest.Ts.Equal(t0.Add(time.Hour)) {
		t.Fatalf("expected day-start to slide to t0+1h, got %v", oldest.Ts)
	}
}

func TestEvaluateHaltAtThreshold(t *testing.T) {
	guard := NewDrawdownGuard(24*time.Hour, 0.05)
	t0 := time.Now().UTC()
	guard.Record(Snapshot{Ts: t0, ValueUSD: 1000})
	guard.Record(Snapshot{Ts: t0.Add(time.Hour), ValueUSD: 940})

	v := guard.Evaluate()
	if !v.Halt {
		t.Fatalf("expected halt at 6%% drawdown, got %+v", v)
	}
	if v.Drawdown != 0.06 {
		t.Fatalf("expected drawdown 0.06, got %v", v.Drawdown)
	}
}

func TestEvaluateContinueUnderThreshold(t *testing.T) {
	guard := NewDrawdownGuard(24*time.Hour, 0.05)
	t0 := time.Now().UTC()
	guard.Record(Snapshot{Ts: t0, ValueUSD: 1000})
	guard.Record(Snapshot{Ts: t0.Add(time.Hour), ValueUSD: 960})

	v := guard.Evaluate()
	if v.Halt {
		t.Fatalf("expected continue at 4%% drawdown")
	}
	if v.Drawdown != 0.04 {
		t.Fatalf("expected drawdown 0.04, got %v", v.Drawdown)
	}
}

func TestEvaluateEmptyRecordContinues(t *testing.T) {
	guard := NewDrawdownGuard(24*time.Hour, 0.05)
	if v := guard.Evaluate(); v.Halt {
		t.Fatalf("empty record must not halt")
	}
}

func TestEvaluateNonPositiveBaselineContinues(t *testing.T) {
	guard := NewDrawdownGuard(24*time.Hour, 0.05)
	t0 := time.Now().UTC()
	guard.Record(Snapshot{Ts: t0, ValueUSD: 0})
	guard.Record(Snapshot{Ts: t0.Add(time.Hour), ValueUSD: 500})
	if v := guard.Evaluate(); v.Halt {
		t.Fatalf("non-positive baseline must read as continue")
	}
}

func TestSlidingBaselineRecovers(t *testing.T) {
	// Once the losing snapshot ages out, the baseline slides forward and the
	// same current value no longer breaches.
	guard := NewDrawdownGuard(24*time.Hour, 0.10)
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	guard.Record(Snapshot{Ts: t0, ValueUSD: 1000})
	guard.Record(Snapshot{Ts: t0.Add(25 * time.Hour), ValueUSD: 950})

	v := guard.Evaluate()
	if v.Halt {
		t.Fatalf("baseline should have slid to 950, got %+v", v)
	}
	if v.DayStart != 950 {
		t.Fatalf("expected day-start 950, got %v", v.DayStart)
	}
}
