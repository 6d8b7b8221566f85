package session

import "testing"

func TestTakeResetsToIdle(t *testing.T) {
	m := NewManager()
	m.Expect(1, AwaitingLocation)

	if got := m.Take(1); got != AwaitingLocation {
		t.Fatalf("first take: got %v", got)
	}
	if got := m.Take(1); got != Idle {
		t.Fatalf("second take: got %v, want Idle", got)
	}
}

func TestExpectReplacesPrevious(t *testing.T) {
	m := NewManager()
	m.Expect(1, AwaitingLocation)
	m.Expect(1, AwaitingTime)

	if got := m.Get(1); got != AwaitingTime {
		t.Fatalf("got %v, want AwaitingTime", got)
	}
}

func TestStatesAreIndependentPerUser(t *testing.T) {
	m := NewManager()
	m.Expect(1, AwaitingThresholds)

	if got := m.Get(2); got != Idle {
		t.Fatalf("user 2: got %v, want Idle", got)
	}
	if got := m.Take(1); got != AwaitingThresholds {
		t.Fatalf("user 1: got %v", got)
	}
}

func TestExpectIdleClears(t *testing.T) {
	m := NewManager()
	m.Expect(1, AwaitingTime)
	m.Expect(1, Idle)

	if got := m.Get(1); got != Idle {
		t.Fatalf("got %v, want Idle", got)
	}
}
