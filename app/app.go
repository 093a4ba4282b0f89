package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	gui "github.com/grupawp/warships-gui/v2"
	"github.com/wojtekolesinski/battleships-cpu/audio"
	"github.com/wojtekolesinski/battleships-cpu/client"
	"github.com/wojtekolesinski/battleships-cpu/models"
	"github.com/wojtekolesinski/battleships-cpu/session"
	"golang.org/x/sync/errgroup"
)

const connectionErrorText = "Connection error with Headquarters 📡"

type backend interface {
	SetToken(token string)
	CreateGame(ctx context.Context, username string) (models.GameStartResponse, error)
	StartBattle(ctx context.Context, gameID string, ships []models.Ship) (models.Game, error)
	Fire(ctx context.Context, gameID, coordinate string) (models.Game, error)
	CpuTurn(ctx context.Context, gameID string) (models.Game, error)
	Ranking(ctx context.Context) ([]models.PlayerScore, error)
	Login(ctx context.Context, username, password string) (models.AuthResponse, error)
	Register(ctx context.Context, username, password string) (models.AuthResponse, error)
}

type cuePlayer interface {
	Play(c audio.Cue) bool
	PlayIntro() bool
	StopIntro()
	PlayWin() bool
	PlayLose() bool
	StopAllMusic()
}

type radarAlert struct {
	title, msg string
}

type App struct {
	client backend
	audio  cuePlayer
	state  *session.State
	store  *session.Store
	p      *prompter
	out    io.Writer
	ui     *ui
	game   models.Game

	pendingAlert *radarAlert
}

func New(c backend, a cuePlayer, store *session.Store, in io.Reader, out io.Writer) *App {
	return &App{
		client: c,
		audio:  a,
		state:  session.New(store),
		store:  store,
		p:      newPrompter(in, out),
		out:    out,
	}
}

// Run shows the main menu until the player quits or input ends.
func (a *App) Run(ctx context.Context) error {
	a.audio.PlayIntro()

	for {
		choice, err := a.displayMenu()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("app.displayMenu: %w", err)
		}

		switch choice {
		case menuLogin, menuRegister:
			username, ok, err := a.authenticate(ctx, choice == menuRegister)
			if err != nil {
				return fmt.Errorf("app.authenticate: %w", err)
			}
			if ok {
				if err := a.play(ctx, username); err != nil {
					return err
				}
			}
		case menuResume:
			saved, ok, err := a.store.Load()
			if err != nil || !ok {
				fmt.Fprintln(a.out, "No saved session to resume")
				continue
			}
			a.state.Token = saved.Token
			if err := a.play(ctx, saved.Username); err != nil {
				return err
			}
		case menuRanking:
			a.showRanking(ctx)
		case menuLogout:
			if err := a.state.Logout(); err != nil {
				log.Error("app [Run]", "err", err)
			}
			fmt.Fprintln(a.out, "Saved session removed")
		case menuQuit:
			return nil
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// play runs games for username until the player goes back to the menu.
func (a *App) play(ctx context.Context, username string) error {
	for {
		finished, err := a.createGame(ctx, username)
		if err != nil || !finished {
			a.exitToMenu()
			return nil
		}

		again, err := a.p.promptPlayer("Play again?")
		if err != nil {
			return fmt.Errorf("app.promptPlayer: %w", err)
		}
		if !again {
			a.exitToMenu()
			return nil
		}
		a.restartGame()
		username = a.state.Username
	}
}

func (a *App) createGame(ctx context.Context, username string) (bool, error) {
	a.audio.StopAllMusic()
	a.audio.PlayIntro()

	if username == "" {
		username = a.state.Username
	}

	res, err := a.client.CreateGame(ctx, username)
	if err != nil {
		log.Error("app [createGame]", "err", err)
		fmt.Fprintln(a.out, connectionErrorText)
		return false, err
	}

	a.joinGame(res, username)
	return a.runBattle(ctx)
}

// joinGame adopts a freshly created game. The login token wins over the one
// issued with the game.
func (a *App) joinGame(res models.GameStartResponse, username string) {
	token := a.state.Token
	if token == "" {
		token = res.Token
	}
	a.client.SetToken(token)
	if err := a.state.SaveSession(token, res.Game.ID, username); err != nil {
		log.Error("app [joinGame]", "err", err)
	}
	a.game = *res.Game
	log.Info("app [joinGame]", "gameID", a.game.ID, "status", a.game.Status)
}

// runBattle owns the terminal until the player leaves the game screen.
func (a *App) runBattle(ctx context.Context) (bool, error) {
	a.ui = newUi()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.gameLoop(gctx)
	})

	a.ui.gui.Start(ctx, nil)
	cancel()

	err := g.Wait()
	a.ui.stopConfetti()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return a.state.IsFinished, err
}

func (a *App) gameLoop(ctx context.Context) error {
	if a.pendingAlert != nil {
		a.ui.showRadarAlert(a.pendingAlert.title, a.pendingAlert.msg, radarAlertTime)
		a.pendingAlert = nil
	}

	if a.game.Status == models.StatusSetup {
		ships, err := a.runSetup(ctx)
		if err != nil {
			return err
		}
		game, err := a.client.StartBattle(ctx, a.state.GameID, ships)
		if err != nil {
			a.surface(err)
			return nil
		}
		a.game = game
		a.ui.endSetup()
	} else {
		a.ui.showBattleBoard()
	}
	a.refreshGameScreen()

	for {
		if a.checkGameStatus() {
			return nil
		}

		if a.game.Turn == models.TurnPlayer {
			coord := a.ui.board2.Listen(ctx)
			if err := ctx.Err(); err != nil {
				return err
			}
			a.fire(ctx, coord)
			continue
		}

		if err := sleep(ctx, cpuThinkDelay); err != nil {
			return err
		}
		delay, err := a.playCpuTurn(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			a.surface(err)
			return nil
		}
		if err := sleep(ctx, delay); err != nil {
			return err
		}
	}
}

func (a *App) runSetup(ctx context.Context) ([]models.Ship, error) {
	placer := a.state.Setup
	placer.Start()
	cursor := newPlacementCursor(placer)

	a.ui.beginSetup()
	a.ui.setupBoard.SetStates(setupStates(cursor))
	a.setupStatus("Current Ship Size")

	for {
		coord := a.ui.setupBoard.Listen(ctx)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ev := cursor.click(coord)
		a.ui.setupBoard.SetStates(setupStates(cursor))

		switch ev {
		case previewMoved, previewRotated:
			a.setupStatus("Current Ship Size")
		case shipRejected:
			a.audio.Play(audio.Error)
		case shipPlaced:
			a.audio.Play(audio.Hammer)
			a.setupStatus("Next Ship Size")
		case fleetComplete:
			a.audio.Play(audio.Hammer)
			a.ui.updateStatusText("DEPLOYING FLEET...", "PLEASE WAIT")
			return placer.Ships(), nil
		}
	}
}

func (a *App) setupStatus(label string) {
	placer := a.state.Setup
	a.ui.updateStatusText(
		"PLACE YOUR SHIPS! (click twice to drop, click the ship to rotate)",
		fmt.Sprintf("%s: %d (%s)", label, placer.CurrentSize(), orientationLabel(placer.Horizontal())),
	)
}

func (a *App) fire(ctx context.Context, coord string) {
	if a.state.IsFinished || a.game.Turn != models.TurnPlayer {
		return
	}
	if a.game.CpuBoard.Shot(coord) {
		a.audio.Play(audio.Error)
		a.ui.showShotMessage(coord+" was already targeted", gui.Grey)
		return
	}

	a.audio.Play(audio.Shot)

	game, err := a.client.Fire(ctx, a.state.GameID, coord)
	if err != nil {
		a.surface(err)
		return
	}
	a.game = game
	a.refreshGameScreen()

	o := playerShotOutcome(game, coord)
	log.Info("app [fire]", "coord", coord, "hit", o.Hit, "sunk", o.Sunk)
	a.ui.updateAlertPanel(o, false)
	a.announce(o, false)
}

func (a *App) playCpuTurn(ctx context.Context) (time.Duration, error) {
	if a.state.IsFinished {
		return 0, nil
	}

	game, err := a.client.CpuTurn(ctx, a.state.GameID)
	if err != nil {
		return 0, err
	}
	a.game = game
	a.refreshGameScreen()

	o, ok := cpuShotOutcome(game)
	if !ok {
		return cpuRevealDelay(game, false), nil
	}
	log.Info("app [playCpuTurn]", "coord", o.Coord, "hit", o.Hit, "sunk", o.Sunk)
	a.ui.updateAlertPanel(o, true)
	a.announce(o, true)
	return cpuRevealDelay(game, o.Sunk), nil
}

func (a *App) announce(o shotOutcome, byCPU bool) {
	if !o.Hit {
		a.audio.Play(audio.Water)
		return
	}
	a.audio.Play(audio.Boom)
	a.ui.showExplosion(o.Coord, byCPU)
	if o.announceSunk() {
		a.audio.Play(audio.Mayday)
		a.ui.showShotMessage(o.sunkMessage(byCPU), sunkColor)
	}
}

func (a *App) refreshGameScreen() {
	a.ui.updateBoards(a.game)
}

// checkGameStatus updates the headline and reports whether the game is over.
func (a *App) checkGameStatus() bool {
	status, turn := turnStatus(a.game)
	a.ui.updateStatusText(status, turn)
	if !a.game.Finished() {
		return false
	}

	a.state.IsFinished = true
	a.audio.StopIntro()
	a.ui.showGameOverModal(a.game.Winner)
	if a.game.Winner == models.TurnPlayer {
		a.audio.PlayWin()
	} else {
		a.audio.PlayLose()
	}
	log.Info("app [checkGameStatus]", "winner", a.game.Winner)
	return true
}

// surface shows a failed request to the player. Nothing is retried. A
// rejected token is dropped from disk so the menu stops offering it.
func (a *App) surface(err error) {
	log.Error("app [surface]", "err", err)
	if errors.Is(err, client.ErrUnauthorized) {
		if err := a.store.Clear(); err != nil {
			log.Error("app [surface]", "err", err)
		}
	}
	a.ui.showShotMessage(userMessage(err), gui.Red)
}

func userMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, models.ErrInvalidCoord) {
		return "Invalid coordinate"
	}
	return connectionErrorText
}

func (a *App) restartGame() {
	a.state.Reset()
	a.audio.StopAllMusic()
}

func (a *App) exitToMenu() {
	a.state.FullReset()
	a.client.SetToken("")
	a.audio.StopAllMusic()
	a.audio.PlayIntro()
}
