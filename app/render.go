package app

import (
	"fmt"
	"strings"

	"github.com/dariubs/percent"
	gui "github.com/grupawp/warships-gui/v2"
	"github.com/wojtekolesinski/battleships-cpu/models"
)

type Board [10][10]gui.State

func setState(b *Board, coord string, s gui.State) {
	row, col, err := models.ParseCoord(coord)
	if err != nil {
		return
	}
	b[row][col] = s
}

// boardStates renders a board snapshot. Enemy ships stay hidden until sunk.
func boardStates(data models.Board, enemy bool) Board {
	var b Board
	for i := range b {
		for j := range b[i] {
			b[i][j] = gui.Empty
		}
	}

	for _, ship := range data.Ships {
		if enemy && !ship.Sunk {
			continue
		}
		for _, c := range ship.Cells {
			setState(&b, c, gui.Ship)
		}
	}

	for _, c := range data.ShotsReceived {
		if _, ok := data.ShipAt(c); ok {
			setState(&b, c, gui.Hit)
		} else {
			setState(&b, c, gui.Miss)
		}
	}
	return b
}

// setupStates draws placed ships plus the preview under the cursor. The
// setup board paints Hit cells as a valid preview and Miss as a blocked one.
func setupStates(cursor *placementCursor) Board {
	var b Board
	for i := range b {
		for j := range b[i] {
			b[i][j] = gui.Empty
		}
	}
	for _, c := range placedCells(cursor.placer.Ships()) {
		setState(&b, c, gui.Ship)
	}

	cells, valid := cursor.preview()
	for _, c := range cells {
		if valid {
			setState(&b, c, gui.Hit)
		} else if !cursor.placer.Occupied(c) {
			setState(&b, c, gui.Miss)
		}
	}
	return b
}

// orientationLabel names the orientation as it looks on screen. The board
// draws letters as columns, so a run along the numbers goes down.
func orientationLabel(horizontal bool) string {
	if horizontal {
		return "Vertical ⬇"
	}
	return "Horizontal ➡"
}

type fleetRow struct {
	text string
	sunk bool
}

// fleetRows renders one row per ship, largest first.
func fleetRows(b models.Board) []fleetRow {
	fleet := b.Fleet()
	rows := make([]fleetRow, 0, len(fleet))
	for _, s := range fleet {
		rows = append(rows, fleetRow{
			text: strings.TrimSpace(strings.Repeat("■ ", s.Size)),
			sunk: s.Sunk,
		})
	}
	return rows
}

func accuracyLine(b models.Board) string {
	shots := len(b.ShotsReceived)
	hits := b.Hits()
	acc := 0.0
	if shots > 0 {
		acc = percent.PercentOf(hits, shots)
	}
	return fmt.Sprintf("Shots: %d  Hits: %d  Accuracy: %.2f%%", shots, hits, acc)
}

func rankingLines(ranking []models.PlayerScore) []string {
	if len(ranking) == 0 {
		return []string{"No victories yet. Be the first! ⚓"}
	}

	lines := make([]string, 0, len(ranking))
	for i, p := range ranking {
		var medal string
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		default:
			medal = fmt.Sprintf("#%d", i+1)
		}
		lines = append(lines, fmt.Sprintf("| %-4s | %-20s | %4d 🏆 |", medal, p.Username, p.Wins))
	}
	return lines
}

func alertLine(o shotOutcome) string {
	if o.Hit {
		return fmt.Sprintf("%s  💥 BOOM", o.Coord)
	}
	return fmt.Sprintf("%s  💧 SPLASH", o.Coord)
}
