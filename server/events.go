package server

import "encoding/json"

// Event names sent by the client.
const (
	EvFindGame      = "find-game"
	EvPlayerInput   = "player-input"
	EvRequestReplay = "request-replay"
)

// Event names sent by the server.
const (
	EvWaiting             = "waiting"
	EvRoleAssigned        = "role-assigned"
	EvGameInit            = "game-init"
	EvCountdown           = "countdown"
	EvGameStart           = "game-start"
	EvGameState           = "game-state"
	EvPlayerDied          = "player-died"
	EvRespawn             = "respawn"
	EvLevelComplete       = "level-complete"
	EvPartnerDisconnected = "partner-disconnected"
	EvErrorMessage        = "error-message"
)

// Envelope frames every wire message: an event name plus a JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// EncodeEvent wraps a payload in an envelope. A nil payload produces an
// envelope with no data field.
func EncodeEvent(event string, payload any) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		env.Data = data
	}
	return json.Marshal(env)
}

// Input is the last-value-wins input for one role, read once per tick.
type Input struct {
	Left  bool `json:"left"`
	Right bool `json:"right"`
	Jump  bool `json:"jump"`
}

// parseInput coerces a player-input payload. Missing or non-boolean fields
// become false; a malformed payload is a neutral input, never an error.
func parseInput(data json.RawMessage) Input {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Input{}
	}
	truthy := func(key string) bool {
		b, _ := raw[key].(bool)
		return b
	}
	return Input{Left: truthy("left"), Right: truthy("right"), Jump: truthy("jump")}
}

// MessagePayload carries human-readable notices (waiting, errors, partner loss).
type MessagePayload struct {
	Message string `json:"message"`
}

type RoleAssignedPayload struct {
	Role    Role   `json:"role"`
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type GameInitPayload struct {
	Tiles     [][]int `json:"tiles"`
	LevelName string  `json:"levelName"`
}

type CountdownPayload struct {
	Count int `json:"count"`
}

// StatePayload is the per-tick snapshot broadcast to both players. It is a
// copy; the receiver never feeds it back as authoritative state.
type StatePayload struct {
	Tick    int             `json:"tick"`
	Status  Status          `json:"status"`
	Players PlayersSnapshot `json:"players"`
}

// PlayersSnapshot carries both avatars by value, sharing nothing with the
// live room state.
type PlayersSnapshot struct {
	Fire  PlayerState `json:"fire"`
	Water PlayerState `json:"water"`
}

type PlayerDiedPayload struct {
	Fire  bool `json:"fire"`
	Water bool `json:"water"`
}

type LevelCompletePayload struct {
	Ticks int `json:"ticks"`
}
