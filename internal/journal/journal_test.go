package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

func TestAppendAndRecent(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []Entry{
		{ID: uuid.NewString(), Time: base, From: "", To: "/pages/home", Kind: "open_new", Outcome: OutcomeOK},
		{ID: uuid.NewString(), Time: base.Add(time.Second), From: "/pages/home", To: "/pages/admin", Kind: "open_new", Outcome: OutcomeGuardRejected, Detail: "admin area"},
		{ID: uuid.NewString(), Time: base.Add(2 * time.Second), From: "/pages/home", To: "/pages/detail?id=1", Kind: "replace", Outcome: OutcomeHostFailed, Detail: "host: page not ready"},
	}
	for _, e := range entries {
		if err := j.Append(e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	// Newest first.
	if got[0].To != "/pages/detail?id=1" {
		t.Errorf("expected newest first, got %q", got[0].To)
	}
	if got[0].Outcome != OutcomeHostFailed {
		t.Errorf("unexpected outcome %q", got[0].Outcome)
	}
	if got[2].To != "/pages/home" {
		t.Errorf("expected oldest last, got %q", got[2].To)
	}
	if !got[2].Time.Equal(base) {
		t.Errorf("time round-trip failed: %v", got[2].Time)
	}
}

func TestRecentOrdersSubSecondEntries(t *testing.T) {
	j := openTestJournal(t)

	// Fractional seconds of different widths within the same second:
	// chronological order must hold regardless of how the timestamps
	// would render as text.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := Entry{ID: uuid.NewString(), Time: base.Add(100 * time.Millisecond), To: "/older", Kind: "open_new", Outcome: OutcomeOK}
	newer := Entry{ID: uuid.NewString(), Time: base.Add(150 * time.Millisecond), To: "/newer", Kind: "open_new", Outcome: OutcomeOK}
	for _, e := range []Entry{older, newer} {
		if err := j.Append(e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := j.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].To != "/newer" {
		t.Errorf("Recent should return newest first, got %q first (times: %v, %v)",
			got[0].To, got[0].Time, got[1].Time)
	}
	if !got[0].Time.Equal(newer.Time) {
		t.Errorf("sub-second time round-trip failed: %v", got[0].Time)
	}
}

func TestRecentLimit(t *testing.T) {
	j := openTestJournal(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		err := j.Append(Entry{
			ID:      uuid.NewString(),
			Time:    base.Add(time.Duration(i) * time.Second),
			To:      "/pages/home",
			Kind:    "open_new",
			Outcome: OutcomeOK,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := j.Recent(2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 entries, got %d", len(got))
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	j, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := j.Append(Entry{ID: uuid.NewString(), To: "/pages/home", Kind: "open_new", Outcome: OutcomeOK}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()

	got, err := j2.Recent(10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 entry after reopen, got %d", len(got))
	}
}
