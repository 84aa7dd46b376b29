package audit

import (
	"bufio"
	"encoding/json"
	"os"
	"testing"

	"github.com/xBwomp/Sentinel-Alpha-P/internal/execution"
	"github.com/xBwomp/Sentinel-Alpha-P/internal/signal"
)

func TestJSONLRecorder(t *testing.T) {
	tmp := t.TempDir()
	path := tmp + "/intents.jsonl"

	recorder, err := NewJSONLRecorder(path)
	if err != nil {
		t.Fatalf("NewJSONLRecorder error: %v", err)
	}
	intent := execution.Intent{
		Signal: signal.Sell, Pair: "BTC-USD", Price: 50000,
		NotionalUSD: 200, SizeAsset: 0.004, Mode: execution.ModeShadow,
	}
	recorder.Record(intent)
	if err := recorder.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open recorded file: %v", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() {
		t.Fatalf("expected one line in recorder output")
	}
	var decoded execution.Intent
	if err := json.Unmarshal(scanner.Bytes(), &decoded); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if decoded.Pair != intent.Pair || decoded.Signal != intent.Signal || decoded.SizeAsset != intent.SizeAsset {
		t.Fatalf("unexpected decoded intent: %+v", decoded)
	}
}

func TestLedgerSnapshotCopies(t *testing.T) {
	ledger := NewLedger(4)
	ledger.Record(execution.Intent{Pair: "BTC-USD", Signal: signal.Buy})
	snap := ledger.Snapshot()
	if len(snap) != 1 {
		t.Fatalf("expected one intent, got %d", len(snap))
	}
	ledger.Reset()
	if len(ledger.Snapshot()) != 0 {
		t.Fatalf("expected ledger cleared")
	}
	if len(snap) != 1 {
		t.Fatalf("snapshot must be unaffected by reset")
	}
}
