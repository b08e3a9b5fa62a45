package server

import (
	"encoding/json"
	"net/http"
)

// HandleRooms lists live rooms with their lifecycle state.
// GET /admin/rooms
func HandleRooms(mm *Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(mm.RoomList())
	}
}

// HandleRoomConfig reads or hot-updates a room's tunables.
// GET /admin/config?room=<id>  returns current values
// POST /admin/config?room=<id> updates fields from a partial JSON payload
func HandleRoomConfig(mm *Matchmaker) http.HandlerFunc {
	type cfg struct {
		RespawnDelay  *int `json:"respawnDelay,omitempty"`
		CountdownFrom *int `json:"countdownFrom,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		room := mm.Room(r.URL.Query().Get("room"))
		if room == nil {
			http.Error(w, "unknown room", http.StatusNotFound)
			return
		}
		switch r.Method {
		case http.MethodGet:
			delay, from := room.Tunables()
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(cfg{RespawnDelay: &delay, CountdownFrom: &from})
		case http.MethodPost:
			var body cfg
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			room.SetTunables(body.RespawnDelay, body.CountdownFrom)
			delay, from := room.Tunables()
			Log.Infof("config updated: room=%s respawnDelay=%d countdownFrom=%d", shortID(room.ID), delay, from)
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleMetrics reports a room's runtime counters.
// GET /metrics?room=<id>
func HandleMetrics(mm *Matchmaker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := mm.Room(r.URL.Query().Get("room"))
		if room == nil {
			http.Error(w, "unknown room", http.StatusNotFound)
			return
		}
		payload := map[string]any{
			"room":    room.ID,
			"status":  room.Status(),
			"tick":    room.Tick(),
			"metrics": room.Metrics().Snapshot(),
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(payload)
	}
}
