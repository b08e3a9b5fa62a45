package client

import (
	"testing"
	"time"

	"firewater/server"
)

func snap(tick int, status server.Status, fireX, waterX float64) server.StatePayload {
	st := server.StatePayload{Tick: tick, Status: status}
	st.Players.Fire = server.PlayerState{X: fireX, Y: 100, Alive: true}
	st.Players.Water = server.PlayerState{X: waterX, Y: 200, Alive: true}
	return st
}

func TestEmptyBufferHasNoState(t *testing.T) {
	b := NewSyncBuffer()
	if _, ok := b.StateAt(time.Now()); ok {
		t.Fatal("empty buffer reported a state")
	}
}

func TestSingleSnapshotReturnedVerbatim(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	b.Push(t0, snap(7, server.StatusPlaying, 40, 80))

	got, ok := b.StateAt(t0.Add(time.Second))
	if !ok {
		t.Fatal("expected a state")
	}
	if got.Tick != 7 || got.Players.Fire.X != 40 {
		t.Fatalf("got %+v, want the lone snapshot verbatim", got)
	}
}

func TestInterpolatesBetweenBracketingSnapshots(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	b.Push(t0, snap(1, server.StatusPlaying, 0, 100))
	b.Push(t0.Add(100*time.Millisecond), snap(2, server.StatusPlaying, 10, 120))

	// now-delay lands exactly halfway between the two snapshots.
	got, ok := b.StateAt(t0.Add(50*time.Millisecond + DefaultDelay))
	if !ok {
		t.Fatal("expected a state")
	}
	if got.Players.Fire.X != 5 {
		t.Fatalf("fire x = %v, want 5", got.Players.Fire.X)
	}
	if got.Players.Water.X != 110 {
		t.Fatalf("water x = %v, want 110", got.Players.Water.X)
	}
	// Discrete fields come from the newer snapshot, never blended.
	if got.Tick != 2 {
		t.Fatalf("tick = %d, want 2", got.Tick)
	}
}

func TestDiscreteFieldsComeFromNewerSnapshot(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	older := snap(1, server.StatusPlaying, 0, 0)
	newer := snap(2, server.StatusDeath, 10, 10)
	newer.Players.Fire.Alive = false
	b.Push(t0, older)
	b.Push(t0.Add(100*time.Millisecond), newer)

	got, _ := b.StateAt(t0.Add(50*time.Millisecond + DefaultDelay))
	if got.Status != server.StatusDeath {
		t.Fatalf("status = %q, want the newer snapshot's", got.Status)
	}
	if got.Players.Fire.Alive {
		t.Fatal("alive flag must not be interpolated")
	}
}

func TestNoExtrapolationPastNewest(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	b.Push(t0, snap(1, server.StatusPlaying, 0, 0))
	b.Push(t0.Add(100*time.Millisecond), snap(2, server.StatusPlaying, 10, 20))

	// Render time way past the newest snapshot: hold it, do not project.
	got, _ := b.StateAt(t0.Add(5 * time.Second))
	if got.Players.Fire.X != 10 || got.Players.Water.X != 20 {
		t.Fatalf("got fire=%v water=%v, want the newest positions held",
			got.Players.Fire.X, got.Players.Water.X)
	}
}

func TestRenderTimeBeforeOldestFallsBackToNewest(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	b.Push(t0, snap(1, server.StatusPlaying, 0, 0))
	b.Push(t0.Add(10*time.Millisecond), snap(2, server.StatusPlaying, 10, 20))

	// now-delay precedes every buffered snapshot.
	got, _ := b.StateAt(t0)
	if got.Tick != 2 {
		t.Fatalf("tick = %d, want newest fallback", got.Tick)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	for i := 0; i < DefaultCapacity+5; i++ {
		b.Push(t0.Add(time.Duration(i)*10*time.Millisecond), snap(i, server.StatusPlaying, float64(i), 0))
	}
	if b.Len() != DefaultCapacity {
		t.Fatalf("len = %d, want capacity %d", b.Len(), DefaultCapacity)
	}

	got, _ := b.StateAt(t0.Add(time.Hour))
	if got.Tick != DefaultCapacity+4 {
		t.Fatalf("newest tick = %d, want %d", got.Tick, DefaultCapacity+4)
	}
}

func TestZeroSpanPairDoesNotDivideByZero(t *testing.T) {
	b := NewSyncBuffer()
	t0 := time.Now()
	b.Push(t0, snap(1, server.StatusPlaying, 3, 0))
	b.Push(t0, snap(2, server.StatusPlaying, 9, 0))

	got, ok := b.StateAt(t0.Add(DefaultDelay))
	if !ok {
		t.Fatal("expected a state")
	}
	if got.Players.Fire.X != 3 {
		t.Fatalf("fire x = %v, want the earlier position at t=0", got.Players.Fire.X)
	}
	if got.Tick != 2 {
		t.Fatalf("tick = %d, discrete fields still come from the newer entry", got.Tick)
	}
}

func TestResetEmptiesBuffer(t *testing.T) {
	b := NewSyncBuffer()
	b.Push(time.Now(), snap(1, server.StatusPlaying, 0, 0))
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("len = %d after reset, want 0", b.Len())
	}
	if _, ok := b.StateAt(time.Now()); ok {
		t.Fatal("reset buffer reported a state")
	}
}
