package server

// PlayerState is one avatar's simulated body. The room's tick owns all
// mutation; the wire only ever sees value copies.
type PlayerState struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	VX          float64 `json:"vx"`
	VY          float64 `json:"vy"`
	Alive       bool    `json:"alive"`
	Grounded    bool    `json:"grounded"`
	ReachedDoor bool    `json:"reachedDoor"`
}

type spawnPoint struct {
	x, y float64
}

// GameState owns the avatar pair for one room plus their spawn points.
type GameState struct {
	fire   PlayerState
	water  PlayerState
	spawns map[Role]spawnPoint
}

func NewGameState(lvl *Level) *GameState {
	gs := &GameState{spawns: findSpawnPoints(lvl.Tiles)}
	gs.ResetPlayers()
	return gs
}

// findSpawnPoints scans the grid once. The avatar is centered horizontally
// and bottom-aligned inside its spawn tile; a level without a spawn tile
// falls back to the world origin.
func findSpawnPoints(tiles [][]int) map[Role]spawnPoint {
	spawns := map[Role]spawnPoint{RoleFire: {}, RoleWater: {}}
	for row := range tiles {
		for col, tile := range tiles[row] {
			sp := spawnPoint{
				x: float64(col*TileSize) + (TileSize-PlayerWidth)/2,
				y: float64(row*TileSize) + (TileSize - PlayerHeight),
			}
			switch tile {
			case TileFireSpawn:
				spawns[RoleFire] = sp
			case TileWaterSpawn:
				spawns[RoleWater] = sp
			}
		}
	}
	return spawns
}

// ResetPlayers rebuilds both avatars fresh at their spawn points: zero
// velocity, alive, airborne, door not reached.
func (g *GameState) ResetPlayers() {
	g.fire = freshPlayer(g.spawns[RoleFire])
	g.water = freshPlayer(g.spawns[RoleWater])
}

func freshPlayer(sp spawnPoint) PlayerState {
	return PlayerState{X: sp.x, Y: sp.y, Alive: true}
}

// Player returns the live avatar for a role, for the tick to mutate.
func (g *GameState) Player(role Role) *PlayerState {
	if role == RoleWater {
		return &g.water
	}
	return &g.fire
}

// Serialize copies the avatar pair for broadcasting. Mutating the live state
// afterwards cannot touch a snapshot already produced.
func (g *GameState) Serialize() PlayersSnapshot {
	return PlayersSnapshot{Fire: g.fire, Water: g.water}
}
