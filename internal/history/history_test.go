package history

import (
	"fmt"
	"testing"
)

func TestRecordAndSnapshot(t *testing.T) {
	b := New(10)
	b.Record("/pages/home")
	b.Record("/pages/detail?id=1")

	got := b.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0] != "/pages/home" || got[1] != "/pages/detail?id=1" {
		t.Errorf("unexpected entries: %v", got)
	}
}

func TestEvictsOldestAtCapacity(t *testing.T) {
	b := New(3)
	for i := 0; i < 4; i++ {
		b.Record(fmt.Sprintf("/pages/p%d", i))
	}

	got := b.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected capacity 3, got %d entries", len(got))
	}
	if got[0] != "/pages/p1" {
		t.Errorf("oldest entry should be evicted, front is %q", got[0])
	}
	if got[2] != "/pages/p3" {
		t.Errorf("newest entry missing, back is %q", got[2])
	}
}

func TestNeverExceedsCapacity(t *testing.T) {
	b := New(5)
	for i := 0; i < 100; i++ {
		b.Record(fmt.Sprintf("/pages/p%d", i))
		if b.Len() > 5 {
			t.Fatalf("length %d exceeds capacity after %d inserts", b.Len(), i+1)
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	b := New(10)
	b.Record("/pages/home")

	snap := b.Snapshot()
	snap[0] = "mutated"

	if got := b.Snapshot()[0]; got != "/pages/home" {
		t.Errorf("buffer affected by snapshot mutation: %q", got)
	}
}

func TestClear(t *testing.T) {
	b := New(10)
	b.Record("/pages/home")
	b.Clear()

	if b.Len() != 0 {
		t.Errorf("expected empty buffer after clear, got %d", b.Len())
	}
	b.Record("/pages/detail")
	if b.Len() != 1 {
		t.Errorf("buffer unusable after clear")
	}
}

func TestNonPositiveCapacityUsesDefault(t *testing.T) {
	b := New(0)
	for i := 0; i < DefaultCapacity+10; i++ {
		b.Record("/pages/home")
	}
	if b.Len() != DefaultCapacity {
		t.Errorf("expected default capacity %d, got %d", DefaultCapacity, b.Len())
	}
}
