package server

import "sync/atomic"

// RoomMetrics tracks a room's runtime counters for the metrics endpoint.
type RoomMetrics struct {
	TickCount      int64 // simulated ticks
	TotalTickNs    int64 // cumulative tick duration (ns)
	InputsAccepted int64 // inputs staged while playing
	InputsIgnored  int64 // inputs dropped outside of play
	SnapshotsSent  int64 // game-state broadcasts
	Deaths         int64 // death transitions
	Wins           int64 // level completions
}

func (m *RoomMetrics) AddTick(ns int64) {
	atomic.AddInt64(&m.TickCount, 1)
	atomic.AddInt64(&m.TotalTickNs, ns)
}
func (m *RoomMetrics) IncInputsAccepted() { atomic.AddInt64(&m.InputsAccepted, 1) }
func (m *RoomMetrics) IncInputsIgnored()  { atomic.AddInt64(&m.InputsIgnored, 1) }
func (m *RoomMetrics) IncSnapshots()      { atomic.AddInt64(&m.SnapshotsSent, 1) }
func (m *RoomMetrics) IncDeaths()         { atomic.AddInt64(&m.Deaths, 1) }
func (m *RoomMetrics) IncWins()           { atomic.AddInt64(&m.Wins, 1) }

// Snapshot returns a read-only copy for HTTP output.
func (m *RoomMetrics) Snapshot() map[string]any {
	ticks := atomic.LoadInt64(&m.TickCount)
	total := atomic.LoadInt64(&m.TotalTickNs)
	var avgMs float64
	if ticks > 0 {
		avgMs = float64(total) / float64(ticks) / 1e6
	}
	return map[string]any{
		"tick_count":      ticks,
		"avg_tick_ms":     avgMs,
		"inputs_accepted": atomic.LoadInt64(&m.InputsAccepted),
		"inputs_ignored":  atomic.LoadInt64(&m.InputsIgnored),
		"snapshots_sent":  atomic.LoadInt64(&m.SnapshotsSent),
		"deaths":          atomic.LoadInt64(&m.Deaths),
		"wins":            atomic.LoadInt64(&m.Wins),
	}
}
