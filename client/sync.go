// Package client holds the receiving side of the snapshot stream: a bounded
// buffer of timestamped snapshots and the temporal interpolation that turns
// them into a smooth render state a fixed delay behind the wire.
package client

import (
	"time"

	"firewater/server"
)

const (
	// DefaultDelay is the fixed rendering lag. It trades latency for almost
	// always having two real snapshots bracketing the render instant despite
	// network jitter.
	DefaultDelay = 50 * time.Millisecond

	// DefaultCapacity bounds the buffer; the oldest entry is evicted first.
	DefaultCapacity = 10
)

type buffered struct {
	at    time.Time
	state server.StatePayload
}

// SyncBuffer collects server snapshots and reconstructs the state to render.
// Push and StateAt run on the render loop's single context, so no locking.
type SyncBuffer struct {
	delay   time.Duration
	cap     int
	entries []buffered
}

func NewSyncBuffer() *SyncBuffer {
	return &SyncBuffer{delay: DefaultDelay, cap: DefaultCapacity}
}

// Push records a snapshot at its local receive time.
func (b *SyncBuffer) Push(at time.Time, st server.StatePayload) {
	b.entries = append(b.entries, buffered{at: at, state: st})
	if len(b.entries) > b.cap {
		b.entries = b.entries[1:]
	}
}

// Reset drops all buffered snapshots, for stream (re)starts.
func (b *SyncBuffer) Reset() {
	b.entries = b.entries[:0]
}

func (b *SyncBuffer) Len() int { return len(b.entries) }

// StateAt returns the state to draw at the given local time: the two
// snapshots bracketing now-delay blended linearly, or the newest snapshot
// verbatim when no bracketing pair exists. Falling back to the newest
// sacrifices smoothness at stream start and stalls rather than extrapolating
// past real data. The second return is false while the buffer is empty.
func (b *SyncBuffer) StateAt(now time.Time) (server.StatePayload, bool) {
	if len(b.entries) == 0 {
		return server.StatePayload{}, false
	}
	if len(b.entries) < 2 {
		return b.entries[len(b.entries)-1].state, true
	}

	renderTime := now.Add(-b.delay)
	for i := 0; i < len(b.entries)-1; i++ {
		prev, next := b.entries[i], b.entries[i+1]
		if prev.at.After(renderTime) || next.at.Before(renderTime) {
			continue
		}
		span := next.at.Sub(prev.at)
		t := 0.0
		if span > 0 {
			t = float64(renderTime.Sub(prev.at)) / float64(span)
		}
		return lerpState(prev.state, next.state, t), true
	}

	return b.entries[len(b.entries)-1].state, true
}

// lerpState blends avatar positions only; tick, status and every discrete
// avatar field come from next untouched.
func lerpState(prev, next server.StatePayload, t float64) server.StatePayload {
	out := next
	out.Players.Fire.X = lerp(prev.Players.Fire.X, next.Players.Fire.X, t)
	out.Players.Fire.Y = lerp(prev.Players.Fire.Y, next.Players.Fire.Y, t)
	out.Players.Water.X = lerp(prev.Players.Water.X, next.Players.Water.X, t)
	out.Players.Water.Y = lerp(prev.Players.Water.Y, next.Players.Water.Y, t)
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
