package server

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultLevelIsValid(t *testing.T) {
	lvl := DefaultLevel()
	if err := lvl.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(lvl.Tiles) != MapRows || len(lvl.Tiles[0]) != MapCols {
		t.Fatalf("grid is %dx%d, want %dx%d", len(lvl.Tiles[0]), len(lvl.Tiles), MapCols, MapRows)
	}

	counts := make(map[int]int)
	for _, row := range lvl.Tiles {
		for _, tile := range row {
			counts[tile]++
		}
	}
	for _, tile := range []int{TileFireSpawn, TileWaterSpawn, TileFireDoor, TileWaterDoor} {
		if counts[tile] != 1 {
			t.Fatalf("tile code %d appears %d times, want exactly 1", tile, counts[tile])
		}
	}
	for _, tile := range []int{TileWaterPool, TileFirePool, TilePoisonPool} {
		if counts[tile] == 0 {
			t.Fatalf("tile code %d missing from default level", tile)
		}
	}
}

func TestLoadLevelRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.json")
	raw := `{"name":"tiny","tiles":[[1,1,1],[1,0,1],[1,1,1]]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	lvl, err := LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if lvl.Name != "tiny" {
		t.Fatalf("name = %q, want tiny", lvl.Name)
	}
	if len(lvl.Tiles) != 3 || lvl.Tiles[1][1] != TileEmpty || lvl.Tiles[0][0] != TileSolid {
		t.Fatalf("tiles mismatch: %v", lvl.Tiles)
	}
}

func TestLoadLevelMissingFile(t *testing.T) {
	if _, err := LoadLevel(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidateRejectsRaggedGrid(t *testing.T) {
	lvl := &Level{Name: "ragged", Tiles: [][]int{{0, 0, 0}, {0, 0}}}
	err := lvl.Validate()
	if err == nil {
		t.Fatal("expected an error for ragged rows")
	}
	if !strings.Contains(err.Error(), "columns") {
		t.Fatalf("error = %q, want a column count complaint", err)
	}
}

func TestValidateRejectsEmptyGrid(t *testing.T) {
	for _, tiles := range [][][]int{nil, {}, {{}}} {
		lvl := &Level{Name: "void", Tiles: tiles}
		if err := lvl.Validate(); err == nil {
			t.Fatalf("expected an error for grid %v", tiles)
		}
	}
}

func TestValidateCoercesUnknownCodes(t *testing.T) {
	lvl := &Level{Name: "odd", Tiles: [][]int{{42, -3, TileSolid}}}
	if err := lvl.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if lvl.Tiles[0][0] != TileEmpty || lvl.Tiles[0][1] != TileEmpty {
		t.Fatalf("unknown codes not coerced: %v", lvl.Tiles[0])
	}
	if lvl.Tiles[0][2] != TileSolid {
		t.Fatalf("known code rewritten: %v", lvl.Tiles[0])
	}
}
