package server

import "time"

// Tile type codes, shared with the client and with level files.
const (
	TileEmpty = iota
	TileSolid
	TileWaterPool
	TileFirePool
	TilePoisonPool
	TileFireDoor
	TileWaterDoor
	TileFireSpawn
	TileWaterSpawn
)

const (
	// TileSize is the edge length of one grid cell in world pixels.
	TileSize = 32
	MapCols  = 30
	MapRows  = 20

	Gravity      = 0.6
	MoveSpeed    = 4.0
	JumpVelocity = -11.0 // negative is up
	MaxFallSpeed = 12.0

	// The avatar box is narrower than a tile so it fits through one-tile gaps.
	PlayerWidth  = 24.0
	PlayerHeight = 30.0

	// hazardInset shrinks the box used for hazard/door checks so brushing a
	// tile edge does not count as standing in it.
	hazardInset = 2.0

	// TicksPerSecond is the simulation rate while a room is live.
	TicksPerSecond = 30

	// RespawnDelay is how many ticks a room sits in the death state
	// before both avatars respawn (~1.5s at 30 Hz).
	RespawnDelay = 45

	// CountdownFrom is the first number of the pre-game countdown.
	CountdownFrom = 3
)

var (
	tickInterval      = time.Duration(1000/TicksPerSecond) * time.Millisecond
	countdownInterval = time.Second
)

// Role identifies which avatar a connection drives. The role decides which
// pools kill and which door counts as the goal.
type Role string

const (
	RoleFire  Role = "fire"
	RoleWater Role = "water"
)

// Status is a room's lifecycle state, serialized onto the wire as-is.
type Status string

const (
	StatusWaiting   Status = "waiting"
	StatusCountdown Status = "countdown"
	StatusPlaying   Status = "playing"
	StatusDeath     Status = "death"
	StatusWon       Status = "won"
	StatusDestroyed Status = "destroyed"
)
