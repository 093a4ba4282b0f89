package app

import (
	"fmt"
	"time"

	"github.com/wojtekolesinski/battleships-cpu/models"
)

const (
	cpuThinkDelay      = 1250 * time.Millisecond
	finishedRevealWait = 250 * time.Millisecond
	sunkRevealWait     = 1750 * time.Millisecond
	explosionDuration  = 500 * time.Millisecond
	shotMessageTime    = 2500 * time.Millisecond
	radarAlertTime     = 5000 * time.Millisecond
)

// shotOutcome describes what a single shot did, as read from the snapshot
// returned by the server.
type shotOutcome struct {
	Coord    string
	Hit      bool
	Sunk     bool
	Finished bool
}

func playerShotOutcome(game models.Game, coord string) shotOutcome {
	hit, sunk := game.CpuBoard.ShotResult(coord)
	return shotOutcome{Coord: coord, Hit: hit, Sunk: sunk, Finished: game.Finished()}
}

// cpuShotOutcome inspects the last shot the CPU put on the player's board.
func cpuShotOutcome(game models.Game) (shotOutcome, bool) {
	last, ok := game.PlayerBoard.LastShot()
	if !ok {
		return shotOutcome{}, false
	}
	hit, sunk := game.PlayerBoard.ShotResult(last)
	return shotOutcome{Coord: last, Hit: hit, Sunk: sunk, Finished: game.Finished()}, true
}

// announceSunk is true when the sinking deserves its own message. The last
// sinking is announced by the game-over screen instead.
func (o shotOutcome) announceSunk() bool {
	return o.Sunk && !o.Finished
}

func (o shotOutcome) sunkMessage(cpu bool) string {
	if cpu {
		return fmt.Sprintf("CPU: %s HIT AND SUNK!", o.Coord)
	}
	return fmt.Sprintf("%s HIT AND SUNK!", o.Coord)
}

// cpuRevealDelay is how long the CPU's shot stays on screen before the next
// status check.
func cpuRevealDelay(game models.Game, sunkThisTurn bool) time.Duration {
	switch {
	case game.Finished():
		return finishedRevealWait
	case sunkThisTurn:
		return sunkRevealWait
	}
	return 0
}

// turnStatus returns the headline and the turn indicator for a snapshot.
func turnStatus(game models.Game) (status, turn string) {
	switch {
	case game.Finished():
		return "GAME OVER", ""
	case game.Turn == models.TurnPlayer:
		return "WAITING FOR COORDINATES...", "PLAYER TURN..."
	}
	return "CALCULATING COORDINATES...", "CPU TURN..."
}

func resultHeadline(winner string) string {
	if winner == models.TurnPlayer {
		return "VICTORY! YOU WIN"
	}
	return "DEFEAT! YOU LOSE"
}
