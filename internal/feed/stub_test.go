package feed

import (
	"context"
	"testing"
)

func TestStubReplaysAndHolds(t *testing.T) {
	stub := NewStub(100, 101, 102)
	ctx := context.Background()
	for _, want := range []float64{100, 101, 102, 102, 102} {
		px, err := stub.Fetch(ctx, "BTC-USD")
		if err != nil {
			t.Fatalf("Fetch returned error: %v", err)
		}
		if px != want {
			t.Fatalf("expected %v, got %v", want, px)
		}
	}
}

func TestStubEmptyErrors(t *testing.T) {
	stub := NewStub()
	if _, err := stub.Fetch(context.Background(), "BTC-USD"); err == nil {
		t.Fatalf("expected error from empty stub")
	}
}
