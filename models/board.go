package models

import (
	"slices"
	"sort"
)

// ShipAt returns the ship occupying coord.
func (b Board) ShipAt(coord string) (Ship, bool) {
	for _, s := range b.Ships {
		if slices.Contains(s.Cells, coord) {
			return s, true
		}
	}
	return Ship{}, false
}

// ShotResult inspects a snapshot after coord has been fired at.
func (b Board) ShotResult(coord string) (hit, sunk bool) {
	s, ok := b.ShipAt(coord)
	if !ok {
		return false, false
	}
	return true, s.Sunk
}

func (b Board) Shot(coord string) bool {
	return slices.Contains(b.ShotsReceived, coord)
}

func (b Board) LastShot() (string, bool) {
	if len(b.ShotsReceived) == 0 {
		return "", false
	}
	return b.ShotsReceived[len(b.ShotsReceived)-1], true
}

// Fleet returns a copy of the ships ordered by size, largest first.
func (b Board) Fleet() []Ship {
	fleet := slices.Clone(b.Ships)
	sort.SliceStable(fleet, func(i, j int) bool {
		return fleet[i].Size > fleet[j].Size
	})
	return fleet
}

// Hits counts received shots that landed on a ship.
func (b Board) Hits() int {
	n := 0
	for _, c := range b.ShotsReceived {
		if _, ok := b.ShipAt(c); ok {
			n++
		}
	}
	return n
}
