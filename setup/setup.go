// Package setup holds the client-side geometry of the placement phase:
// turning a clicked cell into a run of cells and checking the run against
// ships already placed. The server validates the final fleet again.
package setup

import (
	"errors"
	"fmt"
	"slices"

	"github.com/wojtekolesinski/battleships-cpu/models"
)

var (
	ErrInactive         = errors.New("setup is not active")
	ErrInvalidPlacement = errors.New("invalid placement")
)

// Fleet is the order in which ships are placed.
var Fleet = []int{5, 4, 3, 3, 2}

// ShipCoordinates returns the cells of a ship of the given size anchored at
// start. Horizontal keeps the row letter and advances the column number,
// vertical advances the letter. Cells past the edge are dropped, so a run
// near the border comes back shorter than size.
func ShipCoordinates(start string, size int, horizontal bool) []string {
	row, col, err := models.ParseCoord(start)
	if err != nil {
		return nil
	}

	coords := make([]string, 0, size)
	for i := 0; i < size; i++ {
		r, c := row, col+i
		if !horizontal {
			r, c = row+i, col
		}
		if r >= models.BoardSize || c >= models.BoardSize {
			break
		}
		coords = append(coords, models.FormatCoord(r, c))
	}
	return coords
}

// Placer walks the captain through placing Fleet one ship at a time.
type Placer struct {
	active     bool
	horizontal bool
	index      int
	sizes      []int
	ships      []models.Ship
}

func NewPlacer() *Placer {
	p := &Placer{}
	p.Reset()
	return p
}

// Start clears any previous placement and accepts input.
func (p *Placer) Start() {
	p.Reset()
	p.active = true
}

func (p *Placer) Reset() {
	p.active = false
	p.horizontal = true
	p.index = 0
	p.sizes = slices.Clone(Fleet)
	p.ships = nil
}

func (p *Placer) Active() bool     { return p.active }
func (p *Placer) Horizontal() bool { return p.horizontal }

// Rotate flips the orientation and reports the new one.
func (p *Placer) Rotate() bool {
	if p.active {
		p.horizontal = !p.horizontal
	}
	return p.horizontal
}

// CurrentSize is the size of the ship being placed, 0 once the fleet is done.
func (p *Placer) CurrentSize() int {
	if p.Complete() {
		return 0
	}
	return p.sizes[p.index]
}

func (p *Placer) Complete() bool {
	return p.index >= len(p.sizes)
}

// Occupied reports whether a placed ship covers coord.
func (p *Placer) Occupied(coord string) bool {
	for _, s := range p.ships {
		if slices.Contains(s.Cells, coord) {
			return true
		}
	}
	return false
}

// Valid checks a run against the current ship size and the placed ships.
func (p *Placer) Valid(cells []string) bool {
	if len(cells) == 0 || len(cells) != p.CurrentSize() {
		return false
	}
	for _, c := range cells {
		if p.Occupied(c) {
			return false
		}
	}
	return true
}

// Preview returns the run the current ship would occupy at start.
func (p *Placer) Preview(start string) (cells []string, valid bool) {
	if !p.active {
		return nil, false
	}
	cells = ShipCoordinates(start, p.CurrentSize(), p.horizontal)
	return cells, p.Valid(cells)
}

// Place commits the current ship at start. Placing the last ship ends the
// phase.
func (p *Placer) Place(start string) (models.Ship, error) {
	if !p.active {
		return models.Ship{}, ErrInactive
	}

	size := p.CurrentSize()
	cells, valid := p.Preview(start)
	if !valid {
		return models.Ship{}, fmt.Errorf("%w: size %d at %s", ErrInvalidPlacement, size, start)
	}

	ship := models.Ship{
		Type:  fmt.Sprintf("Ship-%d", size),
		Size:  size,
		Cells: cells,
		Hits:  []string{},
		Sunk:  false,
	}
	p.ships = append(p.ships, ship)
	p.index++

	if p.Complete() {
		p.active = false
	}
	return ship, nil
}

// Ships returns the placed ships in placement order.
func (p *Placer) Ships() []models.Ship {
	return slices.Clone(p.ships)
}
