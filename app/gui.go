package app

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	gui "github.com/grupawp/warships-gui/v2"
	"github.com/wojtekolesinski/battleships-cpu/models"
	"github.com/wojtekolesinski/battleships-cpu/setup"
)

const (
	playerX   = 2
	cpuX      = 60
	boardY    = 8
	panelY    = 31
	textWidth = 50

	messageRows = 2
	radarRows   = 2
)

var (
	aliveColor    = gui.NewColor(39, 174, 96)
	sunkColor     = gui.NewColor(139, 0, 0)
	confettiColor = []gui.Color{
		gui.NewColor(39, 174, 96),
		gui.NewColor(241, 196, 15),
		gui.NewColor(231, 76, 60),
	}
)

type ui struct {
	gui         *gui.GUI
	board1      *gui.Board
	board2      *gui.Board
	setupBoard  *gui.Board
	exitText    *gui.Text
	statusText  *gui.Text
	turnText    *gui.Text
	resultText  *gui.Text
	message     []*gui.Text
	radar       []*gui.Text
	explosion   *gui.Text
	alert1      *gui.Text
	alert2      *gui.Text
	accuracy1   *gui.Text
	accuracy2   *gui.Text
	fleet1      []*gui.Text
	fleet2      []*gui.Text

	mu       sync.Mutex
	shown    map[*gui.Text]string
	flashGen map[*gui.Text]int
	confetti context.CancelFunc
	sprinkle []*gui.Text
}

func newUi() *ui {
	g := gui.NewGUI(true)

	setupCfg := gui.NewBoardConfig()
	setupCfg.HitChar = '+'
	setupCfg.HitColor = aliveColor

	u := &ui{
		gui:         g,
		board1:      gui.NewBoard(playerX, boardY, nil),
		board2:      gui.NewBoard(cpuX, boardY, nil),
		setupBoard:  gui.NewBoard(playerX, boardY, setupCfg),
		exitText:    gui.NewText(playerX, 1, "Press Ctrl+C to exit", nil),
		statusText:  gui.NewText(playerX, 3, "", &gui.TextConfig{FgColor: gui.White, BgColor: gui.Black}),
		turnText:    gui.NewText(playerX, 4, "", nil),
		resultText:  gui.NewText(cpuX, 3, "", &gui.TextConfig{FgColor: gui.White, BgColor: gui.Black}),
		explosion:   gui.NewText(cpuX, 5, "", &gui.TextConfig{FgColor: gui.White, BgColor: gui.Red}),
		alert1:      gui.NewText(playerX, panelY, "", nil),
		alert2:      gui.NewText(cpuX, panelY, "", nil),
		accuracy1:   gui.NewText(playerX, panelY+8, "", nil),
		accuracy2:   gui.NewText(cpuX, panelY+8, "", nil),
		shown:       make(map[*gui.Text]string),
		flashGen:    make(map[*gui.Text]int),
	}

	// messages sit under the headline, radar alerts above the result line
	for i := 0; i < messageRows; i++ {
		u.message = append(u.message, gui.NewText(playerX, 5+i, "", nil))
	}
	for i := 0; i < radarRows; i++ {
		u.radar = append(u.radar, gui.NewText(cpuX, 1+i, "", &gui.TextConfig{FgColor: gui.Black, BgColor: aliveColor}))
	}

	for i := range setup.Fleet {
		u.fleet1 = append(u.fleet1, gui.NewText(playerX, panelY+2+i, "", nil))
		u.fleet2 = append(u.fleet2, gui.NewText(cpuX, panelY+2+i, "", nil))
	}

	g.Draw(u.exitText)
	g.Draw(u.statusText)
	g.Draw(u.turnText)
	g.Draw(u.resultText)
	g.Draw(u.explosion)
	for _, t := range u.message {
		g.Draw(t)
	}
	for _, t := range u.radar {
		g.Draw(t)
	}
	g.Draw(gui.NewText(playerX, boardY-1, "YOUR FLEET", nil))
	g.Draw(gui.NewText(cpuX, boardY-1, "ENEMY WATERS", nil))
	g.Draw(u.board2)
	g.Draw(u.alert1)
	g.Draw(u.alert2)
	g.Draw(u.accuracy1)
	g.Draw(u.accuracy2)
	for i := range u.fleet1 {
		g.Draw(u.fleet1[i])
		g.Draw(u.fleet2[i])
	}

	return u
}

// beginSetup draws the placement board where the player board will go.
func (u *ui) beginSetup() {
	u.gui.Draw(u.setupBoard)
	u.board2.SetStates(Board{})
	u.updateFleetStatusPanel(u.fleet1, models.Board{})
	u.updateFleetStatusPanel(u.fleet2, models.Board{})
	u.clearAlertPanels()
}

func (u *ui) endSetup() {
	u.gui.Remove(u.setupBoard)
	u.showBattleBoard()
}

func (u *ui) showBattleBoard() {
	u.gui.Draw(u.board1)
}

// setText updates a text and remembers what it shows.
func (u *ui) setText(t *gui.Text, text string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.setTextLocked(t, text)
}

func (u *ui) setTextLocked(t *gui.Text, text string) {
	u.shown[t] = text
	t.SetText(text)
}

func (u *ui) text(t *gui.Text) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.shown[t]
}

func (u *ui) updateStatusText(status, turn string) {
	u.setText(u.statusText, status)
	u.setText(u.turnText, turn)
}

func (u *ui) updateBoards(game models.Game) {
	u.board1.SetStates(boardStates(game.PlayerBoard, false))
	u.board2.SetStates(boardStates(game.CpuBoard, true))
	u.updateFleetStatusPanel(u.fleet1, game.PlayerBoard)
	u.updateFleetStatusPanel(u.fleet2, game.CpuBoard)
	u.setText(u.accuracy1, "You   "+accuracyLine(game.CpuBoard))
	u.setText(u.accuracy2, "CPU   "+accuracyLine(game.PlayerBoard))
}

func (u *ui) updateFleetStatusPanel(rows []*gui.Text, b models.Board) {
	fleet := fleetRows(b)
	for i, t := range rows {
		if i >= len(fleet) {
			u.setText(t, "")
			continue
		}
		u.setText(t, fleet[i].text)
		if fleet[i].sunk {
			t.SetFgColor(sunkColor)
		} else {
			t.SetFgColor(aliveColor)
		}
	}
}

// updateAlertPanel shows the last shot; alert1 sits under the player's
// board and reports the CPU's shots, alert2 reports the player's.
func (u *ui) updateAlertPanel(o shotOutcome, byCPU bool) {
	t := u.alert2
	if byCPU {
		t = u.alert1
	}
	u.setText(t, alertLine(o))
	switch {
	case o.Hit:
		t.SetFgColor(gui.Red)
	case byCPU:
		t.SetFgColor(gui.White)
	default:
		t.SetFgColor(gui.Blue)
	}
}

func (u *ui) clearAlertPanels() {
	u.setText(u.alert1, "")
	u.setText(u.alert2, "")
}

func (u *ui) showExplosion(coord string, byCPU bool) {
	msg := "💥 " + coord + " 💥"
	if byCPU {
		msg = "💥 " + coord + " (your fleet) 💥"
	}
	u.flash([]*gui.Text{u.explosion}, []string{msg}, explosionDuration)
}

func (u *ui) showShotMessage(text string, bg gui.Color) {
	for _, t := range u.message {
		t.SetBgColor(bg)
		t.SetFgColor(gui.White)
	}
	u.flash(u.message, fitLines(text, textWidth, len(u.message)), shotMessageTime)
}

func (u *ui) showRadarAlert(title, msg string, d time.Duration) {
	u.flash(u.radar, fitLines(title+" - "+msg, textWidth, len(u.radar)), d)
}

// flash shows lines on ts and clears them after d unless a newer flash on
// the same texts replaced them.
func (u *ui) flash(ts []*gui.Text, lines []string, d time.Duration) {
	u.mu.Lock()
	key := ts[0]
	u.flashGen[key]++
	gen := u.flashGen[key]
	for i, t := range ts {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		u.setTextLocked(t, line)
	}
	u.mu.Unlock()

	time.AfterFunc(d, func() {
		u.mu.Lock()
		defer u.mu.Unlock()
		if u.flashGen[key] != gen {
			return
		}
		for _, t := range ts {
			u.setTextLocked(t, "")
		}
	})
}

// showGameOverModal puts the result next to the GAME OVER status.
func (u *ui) showGameOverModal(winner string) {
	u.setText(u.resultText, resultHeadline(winner))
	u.resultText.SetFgColor(gui.White)
	if winner == models.TurnPlayer {
		u.resultText.SetBgColor(gui.Green)
		u.launchConfetti()
	} else {
		u.resultText.SetBgColor(gui.Red)
	}
	u.setText(u.exitText, "Press Ctrl+C to continue")
}

func (u *ui) launchConfetti() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.confetti != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	u.confetti = cancel
	go u.sprinkleConfetti(ctx)
}

func (u *ui) sprinkleConfetti(ctx context.Context) {
	const maxPieces = 60
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// two bursts, one from each side
		for _, x := range []int{rand.Intn(40), 80 + rand.Intn(40)} {
			c := confettiColor[rand.Intn(len(confettiColor))]
			piece := gui.NewText(x, rand.Intn(panelY+8), "*", &gui.TextConfig{FgColor: c, BgColor: gui.Black})

			u.mu.Lock()
			if ctx.Err() != nil {
				u.mu.Unlock()
				return
			}
			u.sprinkle = append(u.sprinkle, piece)
			u.gui.Draw(piece)
			if len(u.sprinkle) > maxPieces {
				u.gui.Remove(u.sprinkle[0])
				u.sprinkle = u.sprinkle[1:]
			}
			u.mu.Unlock()
		}
	}
}

func (u *ui) stopConfetti() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.confetti == nil {
		return
	}
	u.confetti()
	u.confetti = nil
	for _, p := range u.sprinkle {
		u.gui.Remove(p)
	}
	u.sprinkle = nil
	log.Debug("app [stopConfetti]")
}
