package server

import (
	"encoding/json"
	"fmt"
	"os"
)

// Level is a parsed tile map: a rectangular grid of tile codes plus a name.
// It is immutable for the lifetime of every room that plays it.
type Level struct {
	Name  string  `json:"name" jsonschema:"title=Level name"`
	Tiles [][]int `json:"tiles" jsonschema:"title=Tile grid,description=Rectangular rows of tile type codes 0-8"`
}

// LoadLevel reads and validates a {"name":..., "tiles":[[...]]} level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("parse level %s: %w", path, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

// Validate checks the grid is non-empty and rectangular. Unknown tile codes
// are coerced to empty with a warning rather than rejected, and a missing
// spawn tile is allowed (avatars then spawn at the world origin).
func (l *Level) Validate() error {
	if len(l.Tiles) == 0 || len(l.Tiles[0]) == 0 {
		return fmt.Errorf("level %q has an empty grid", l.Name)
	}
	cols := len(l.Tiles[0])
	fireSpawns, waterSpawns := 0, 0
	for row := range l.Tiles {
		if len(l.Tiles[row]) != cols {
			return fmt.Errorf("level %q: row %d has %d columns, want %d", l.Name, row, len(l.Tiles[row]), cols)
		}
		for col, t := range l.Tiles[row] {
			switch {
			case t < TileEmpty || t > TileWaterSpawn:
				Log.Warnf("level %q: unknown tile code %d at (%d,%d), treating as empty", l.Name, t, col, row)
				l.Tiles[row][col] = TileEmpty
			case t == TileFireSpawn:
				fireSpawns++
			case t == TileWaterSpawn:
				waterSpawns++
			}
		}
	}
	if fireSpawns != 1 || waterSpawns != 1 {
		Log.Warnf("level %q: expected one spawn per role, got fire=%d water=%d", l.Name, fireSpawns, waterSpawns)
	}
	return nil
}

// DefaultLevel builds the bundled 30x20 level so the server runs without any
// level assets on disk.
func DefaultLevel() *Level {
	tiles := make([][]int, MapRows)
	for row := range tiles {
		tiles[row] = make([]int, MapCols)
	}
	for col := 0; col < MapCols; col++ {
		tiles[0][col] = TileSolid
		tiles[MapRows-1][col] = TileSolid
	}
	for row := 0; row < MapRows; row++ {
		tiles[row][0] = TileSolid
		tiles[row][MapCols-1] = TileSolid
	}

	// Pools sunk into the floor; crossing them means jumping.
	for col := 8; col <= 10; col++ {
		tiles[MapRows-1][col] = TileWaterPool
	}
	for col := 14; col <= 16; col++ {
		tiles[MapRows-1][col] = TileFirePool
	}
	for col := 20; col <= 22; col++ {
		tiles[MapRows-1][col] = TilePoisonPool
	}

	// Staircase of platforms, each a one-jump rise from the last.
	for col := 4; col <= 6; col++ {
		tiles[17][col] = TileSolid
	}
	for col := 9; col <= 12; col++ {
		tiles[15][col] = TileSolid
	}
	for col := 14; col <= 17; col++ {
		tiles[13][col] = TileSolid
	}
	for col := 19; col <= 22; col++ {
		tiles[11][col] = TileSolid
	}

	tiles[18][2] = TileFireSpawn
	tiles[18][27] = TileWaterSpawn
	tiles[10][21] = TileFireDoor
	tiles[12][15] = TileWaterDoor

	return &Level{Name: "molten hollow", Tiles: tiles}
}
