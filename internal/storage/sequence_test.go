package storage

import (
	"testing"
	"time"
)

func TestSequenceNeverRepeatsWithinSameMillisecond(t *testing.T) {
	frozen := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seq := NewSequenceWithClock(func() time.Time { return frozen })

	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := seq.Next()
		if seen[id] {
			t.Fatalf("duplicate id %d after %d calls", id, i)
		}
		seen[id] = true
	}
}

func TestSequenceFollowsClock(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	seq := NewSequenceWithClock(func() time.Time { return now })

	first := seq.Next()
	if first != now.UnixMilli() {
		t.Errorf("first id: expected %d, got %d", now.UnixMilli(), first)
	}

	now = now.Add(time.Second)
	if got := seq.Next(); got != now.UnixMilli() {
		t.Errorf("after clock advance: expected %d, got %d", now.UnixMilli(), got)
	}
}

func TestSequenceObserve(t *testing.T) {
	seq := NewSequenceWithClock(func() time.Time { return time.UnixMilli(100) })
	seq.Observe(500)
	if got := seq.Next(); got != 501 {
		t.Errorf("expected 501 after observing 500, got %d", got)
	}
}
