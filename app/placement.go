package app

import (
	"slices"

	"github.com/wojtekolesinski/battleships-cpu/models"
	"github.com/wojtekolesinski/battleships-cpu/setup"
)

type placementEvent int

const (
	previewMoved placementEvent = iota
	previewRotated
	shipPlaced
	shipRejected
	fleetComplete
)

// placementCursor turns board clicks into placement actions. The first
// click on a cell anchors a preview, a click on the anchor drops the ship
// and a click on another cell of the preview rotates it.
type placementCursor struct {
	placer *setup.Placer
	anchor string
}

func newPlacementCursor(p *setup.Placer) *placementCursor {
	return &placementCursor{placer: p}
}

func (c *placementCursor) preview() (cells []string, valid bool) {
	if c.anchor == "" {
		return nil, false
	}
	return c.placer.Preview(c.anchor)
}

func (c *placementCursor) click(coord string) placementEvent {
	cells, _ := c.preview()

	switch {
	case c.anchor == "" || (coord != c.anchor && !slices.Contains(cells, coord)):
		c.anchor = coord
		return previewMoved
	case coord != c.anchor:
		c.placer.Rotate()
		return previewRotated
	}

	if _, err := c.placer.Place(c.anchor); err != nil {
		return shipRejected
	}
	c.anchor = ""
	if c.placer.Complete() {
		return fleetComplete
	}
	return shipPlaced
}

// placedCells lists every cell covered by a placed ship.
func placedCells(ships []models.Ship) []string {
	var cells []string
	for _, s := range ships {
		cells = append(cells, s.Cells...)
	}
	return cells
}
