package server

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Conn is the transport-facing side of a player connection. The websocket
// wrapper implements it; room tests substitute fakes. Send must never block.
type Conn interface {
	ID() string
	Send(event string, payload any)
	Close()
}

// GameRoom drives one matched pair through the session lifecycle:
// waiting -> countdown -> playing <-> death -> won, or destroyed on a
// disconnect. Everything behind mu; the tick callback owns a whole tick under
// the lock, and the buffered inputs are the only state written from outside.
type GameRoom struct {
	ID string

	mu           sync.Mutex
	status       Status
	tick         int
	respawnTimer int
	conns        map[Role]Conn
	inputs       map[Role]Input
	state        *GameState
	physics      *Physics
	level        *Level

	countdown *periodicTask
	loop      *periodicTask

	// Hot-tunable through the admin endpoint.
	respawnDelay  int
	countdownFrom int

	metrics *RoomMetrics
}

// NewGameRoom seats the first connection as the fire player and waits.
func NewGameRoom(lvl *Level, first Conn) *GameRoom {
	r := &GameRoom{
		ID:            newRoomID(),
		status:        StatusWaiting,
		conns:         map[Role]Conn{RoleFire: first},
		inputs:        make(map[Role]Input),
		state:         NewGameState(lvl),
		physics:       NewPhysics(lvl),
		level:         lvl,
		respawnDelay:  RespawnDelay,
		countdownFrom: CountdownFrom,
		metrics:       &RoomMetrics{},
	}
	first.Send(EvRoleAssigned, RoleAssignedPayload{
		Role:    RoleFire,
		RoomID:  r.ID,
		Message: "You play fire. Waiting for a second player...",
	})
	Log.Infof("[room %s] created, fire player %s waiting", shortID(r.ID), first.ID())
	return r
}

func newRoomID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// AddSecondPlayer seats the water player and starts the countdown.
func (r *GameRoom) AddSecondPlayer(conn Conn) {
	r.mu.Lock()
	r.conns[RoleWater] = conn
	r.mu.Unlock()

	conn.Send(EvRoleAssigned, RoleAssignedPayload{
		Role:    RoleWater,
		RoomID:  r.ID,
		Message: "You play water. Game starting!",
	})
	Log.Infof("[room %s] water player %s joined", shortID(r.ID), conn.ID())
	r.startCountdown()
}

// startCountdown broadcasts the level once, then counts down to zero at
// one-second intervals before handing over to the tick loop.
func (r *GameRoom) startCountdown() {
	r.mu.Lock()
	if r.status == StatusDestroyed {
		r.mu.Unlock()
		return
	}
	r.status = StatusCountdown
	count := r.countdownFrom
	lvl := r.level
	r.mu.Unlock()

	r.broadcast(EvGameInit, GameInitPayload{Tiles: lvl.Tiles, LevelName: lvl.Name})

	task := startPeriodic(countdownInterval, func() bool {
		r.mu.Lock()
		if r.status != StatusCountdown {
			r.mu.Unlock()
			return false
		}
		c := count
		count--
		r.mu.Unlock()

		r.broadcast(EvCountdown, CountdownPayload{Count: c})
		if c == 0 {
			r.startGame()
			return false
		}
		return true
	})

	r.mu.Lock()
	r.countdown = task
	r.mu.Unlock()
}

// startGame resets the world and arms the fixed-rate simulation loop.
func (r *GameRoom) startGame() {
	r.mu.Lock()
	if r.status == StatusDestroyed {
		r.mu.Unlock()
		return
	}
	r.status = StatusPlaying
	r.tick = 0
	r.respawnTimer = 0
	r.resetLocked()
	r.mu.Unlock()

	r.broadcast(EvGameStart, nil)
	Log.Infof("[room %s] game started", shortID(r.ID))

	task := startPeriodic(tickInterval, r.update)
	r.mu.Lock()
	r.loop = task
	r.mu.Unlock()
}

// resetLocked rebuilds both avatars at spawn and clears staged input so
// nothing pressed outside of play leaks into the next tick.
func (r *GameRoom) resetLocked() {
	r.state.ResetPlayers()
	r.inputs[RoleFire] = Input{}
	r.inputs[RoleWater] = Input{}
}

// update is one tick. Death is checked before the win condition, so a tick
// that kills and completes at once resolves as a death. The snapshot goes out
// at the end of every tick no matter which branch ran.
func (r *GameRoom) update() bool {
	start := time.Now()
	r.mu.Lock()

	switch r.status {
	case StatusDeath:
		r.tick++
		r.respawnTimer--
		if r.respawnTimer <= 0 {
			r.resetLocked()
			r.status = StatusPlaying
			r.sendAllLocked(EvRespawn, nil)
		}
		r.broadcastStateLocked()
		r.mu.Unlock()
		r.metrics.AddTick(time.Since(start).Nanoseconds())
		return true
	case StatusPlaying:
	default:
		// Won, destroyed, or otherwise not simulating: the loop is done.
		r.mu.Unlock()
		return false
	}

	r.tick++
	fire := r.state.Player(RoleFire)
	water := r.state.Player(RoleWater)
	r.physics.Advance(fire, r.inputs[RoleFire], RoleFire)
	r.physics.Advance(water, r.inputs[RoleWater], RoleWater)

	if !fire.Alive || !water.Alive {
		r.status = StatusDeath
		r.respawnTimer = r.respawnDelay
		r.metrics.IncDeaths()
		r.sendAllLocked(EvPlayerDied, PlayerDiedPayload{Fire: !fire.Alive, Water: !water.Alive})
	} else if fire.ReachedDoor && water.ReachedDoor {
		r.status = StatusWon
		r.metrics.IncWins()
		r.sendAllLocked(EvLevelComplete, LevelCompletePayload{Ticks: r.tick})
		r.broadcastStateLocked()
		tick := r.tick
		r.mu.Unlock()
		r.metrics.AddTick(time.Since(start).Nanoseconds())
		Log.Infof("[room %s] level complete in %d ticks", shortID(r.ID), tick)
		return false // idle until a replay request
	}

	r.broadcastStateLocked()
	r.mu.Unlock()
	r.metrics.AddTick(time.Since(start).Nanoseconds())
	return true
}

// HandleInput stages the latest input for a role. Staged values are ignored
// unless the room is playing; the tick reads whatever arrived last.
func (r *GameRoom) HandleInput(role Role, in Input) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != StatusPlaying {
		r.metrics.IncInputsIgnored()
		return
	}
	r.inputs[role] = in
	r.metrics.IncInputsAccepted()
}

// HandleReplay restarts a finished room through the same countdown sequence a
// fresh pairing uses. Ignored unless the room has been won.
func (r *GameRoom) HandleReplay() {
	r.mu.Lock()
	if r.status != StatusWon {
		r.mu.Unlock()
		return
	}
	r.tick = 0
	r.respawnTimer = 0
	r.resetLocked()
	r.mu.Unlock()

	Log.Infof("[room %s] replay requested", shortID(r.ID))
	r.startCountdown()
}

// Destroy tears the room down after a connection loss: stop whichever task is
// running, tell the survivor, and leave the room unusable. Stopping waits for
// any in-flight tick, so nothing dangles.
func (r *GameRoom) Destroy(leavingConnID string) {
	r.mu.Lock()
	if r.status == StatusDestroyed {
		r.mu.Unlock()
		return
	}
	r.status = StatusDestroyed
	countdown, loop := r.countdown, r.loop
	r.countdown, r.loop = nil, nil
	var survivor Conn
	for role, c := range r.conns {
		if c != nil && c.ID() != leavingConnID {
			survivor = c
		}
		delete(r.conns, role)
	}
	r.mu.Unlock()

	if countdown != nil {
		countdown.Stop()
	}
	if loop != nil {
		loop.Stop()
	}
	if survivor != nil {
		survivor.Send(EvPartnerDisconnected, MessagePayload{Message: "Your partner left the game."})
	}
	Log.Infof("[room %s] destroyed (%s left)", shortID(r.ID), leavingConnID)
}

func (r *GameRoom) sendAllLocked(event string, payload any) {
	for _, c := range r.conns {
		c.Send(event, payload)
	}
}

func (r *GameRoom) broadcast(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sendAllLocked(event, payload)
}

func (r *GameRoom) broadcastStateLocked() {
	r.sendAllLocked(EvGameState, StatePayload{
		Tick:    r.tick,
		Status:  r.status,
		Players: r.state.Serialize(),
	})
	r.metrics.IncSnapshots()
}

// Status reports the current lifecycle state.
func (r *GameRoom) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Tick reports the current tick counter.
func (r *GameRoom) Tick() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tick
}

// PlayerCount reports how many connections are seated.
func (r *GameRoom) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns)
}

// Metrics exposes the room's runtime counters.
func (r *GameRoom) Metrics() *RoomMetrics { return r.metrics }

// Tunables returns the current respawn delay (ticks) and countdown start.
func (r *GameRoom) Tunables() (respawnDelay, countdownFrom int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.respawnDelay, r.countdownFrom
}

// SetTunables hot-updates the room's tunables; nil fields are left alone.
func (r *GameRoom) SetTunables(respawnDelay, countdownFrom *int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if respawnDelay != nil && *respawnDelay > 0 {
		r.respawnDelay = *respawnDelay
	}
	if countdownFrom != nil && *countdownFrom >= 0 {
		r.countdownFrom = *countdownFrom
	}
}
