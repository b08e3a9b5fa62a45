package server

import "math"

// Physics advances avatars one tick at a time against an immutable tile grid.
// It mutates only the avatar it is handed, never the grid.
type Physics struct {
	tiles [][]int
	rows  int
	cols  int
}

func NewPhysics(lvl *Level) *Physics {
	return &Physics{tiles: lvl.Tiles, rows: len(lvl.Tiles), cols: len(lvl.Tiles[0])}
}

// TileAt returns the tile code at a cell. Anything outside the grid reads as
// solid, so the world is walled in on every side.
func (p *Physics) TileAt(col, row int) int {
	if row < 0 || row >= p.rows || col < 0 || col >= p.cols {
		return TileSolid
	}
	return p.tiles[row][col]
}

// overlappingCells visits every grid cell touched by the box at (x, y).
func (p *Physics) overlappingCells(x, y, w, h float64, visit func(col, row, tile int)) {
	left := int(math.Floor(x / TileSize))
	right := int(math.Floor((x + w - 1) / TileSize))
	top := int(math.Floor(y / TileSize))
	bottom := int(math.Floor((y + h - 1) / TileSize))
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			visit(col, row, p.TileAt(col, row))
		}
	}
}

// Advance runs one simulation tick for a single avatar. The order is fixed:
// input, jump, gravity, horizontal move+resolve, vertical move+resolve, then
// hazard/door classification. Dead avatars stay frozen where they died until
// the room resets them.
func (p *Physics) Advance(pl *PlayerState, in Input, role Role) {
	if !pl.Alive {
		return
	}

	// Horizontal velocity is instantaneous, no acceleration model.
	switch {
	case in.Left:
		pl.VX = -MoveSpeed
	case in.Right:
		pl.VX = MoveSpeed
	default:
		pl.VX = 0
	}

	if in.Jump && pl.Grounded {
		pl.VY = JumpVelocity
		pl.Grounded = false
	}

	pl.VY += Gravity
	if pl.VY > MaxFallSpeed {
		pl.VY = MaxFallSpeed
	}

	pl.X += pl.VX
	p.resolveX(pl)

	pl.Grounded = false
	pl.Y += pl.VY
	p.resolveY(pl)

	died, reachedDoor := p.classifyOverlap(pl, role)
	if died {
		pl.Alive = false
	}
	// Door contact is recomputed every tick: stepping off the door loses it.
	pl.ReachedDoor = reachedDoor
}

// resolveX pushes the avatar out of any solid cell it moved into horizontally.
func (p *Physics) resolveX(pl *PlayerState) {
	p.overlappingCells(pl.X, pl.Y, PlayerWidth, PlayerHeight, func(col, row, tile int) {
		if tile != TileSolid {
			return
		}
		tileLeft := float64(col * TileSize)
		if pl.VX > 0 {
			pl.X = tileLeft - PlayerWidth
		} else if pl.VX < 0 {
			pl.X = tileLeft + TileSize
		}
		pl.VX = 0
	})
}

// resolveY is the vertical counterpart; landing on a solid sets grounded.
func (p *Physics) resolveY(pl *PlayerState) {
	p.overlappingCells(pl.X, pl.Y, PlayerWidth, PlayerHeight, func(col, row, tile int) {
		if tile != TileSolid {
			return
		}
		tileTop := float64(row * TileSize)
		if pl.VY > 0 {
			pl.Y = tileTop - PlayerHeight
			pl.Grounded = true
		} else if pl.VY < 0 {
			pl.Y = tileTop + TileSize
		}
		pl.VY = 0
	})
}

// classifyOverlap inspects the tiles under a slightly inset box and reports
// whether this role dies or is standing on its goal door. Fire dies in water,
// water dies in fire, poison kills both.
func (p *Physics) classifyOverlap(pl *PlayerState, role Role) (died, reachedDoor bool) {
	p.overlappingCells(
		pl.X+hazardInset, pl.Y+hazardInset,
		PlayerWidth-2*hazardInset, PlayerHeight-2*hazardInset,
		func(col, row, tile int) {
			switch tile {
			case TileWaterPool:
				if role == RoleFire {
					died = true
				}
			case TileFirePool:
				if role == RoleWater {
					died = true
				}
			case TilePoisonPool:
				died = true
			case TileFireDoor:
				if role == RoleFire {
					reachedDoor = true
				}
			case TileWaterDoor:
				if role == RoleWater {
					reachedDoor = true
				}
			}
		})
	return died, reachedDoor
}
