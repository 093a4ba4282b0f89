package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/wojtekolesinski/battleships-cpu/audio"
	"github.com/wojtekolesinski/battleships-cpu/session"
)

type menuChoice int

const (
	menuLogin menuChoice = iota
	menuRegister
	menuResume
	menuRanking
	menuLogout
	menuQuit
)

type menuEntry struct {
	label  string
	choice menuChoice
}

func (a *App) menuEntries() []menuEntry {
	entries := []menuEntry{
		{"Log in", menuLogin},
		{"Register a new captain", menuRegister},
	}
	if saved, ok, err := a.store.Load(); err == nil && ok {
		entries = append(entries,
			menuEntry{fmt.Sprintf("Resume as %s", saved.Username), menuResume},
			menuEntry{"Forget saved session", menuLogout},
		)
	}
	return append(entries,
		menuEntry{"Hall of fame", menuRanking},
		menuEntry{"Quit", menuQuit},
	)
}

func (a *App) displayMenu() (menuChoice, error) {
	entries := a.menuEntries()

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "=== BATTLESHIP COMMAND CENTER ===")
	choice, err := promptList(a.p, entries, 1, func(e menuEntry) string { return e.label })
	if err != nil {
		return menuQuit, err
	}
	log.Debug("app [displayMenu]", "choice", choice)
	return entries[choice-1].choice, nil
}

// authenticate logs in or registers. ok is false when the attempt was
// rejected; the reason has already been shown.
func (a *App) authenticate(ctx context.Context, register bool) (username string, ok bool, err error) {
	username, err = a.p.promptLine("Nickname: ")
	if err != nil {
		return "", false, err
	}
	password, err := a.p.promptPassword("Password: ")
	if err != nil {
		return "", false, err
	}

	if username == "" || password == "" {
		a.showLoginError("Please enter your nickname and password")
		return "", false, nil
	}

	title, msg := "LOGIN SUCCESSFUL", "Welcome back, Captain! Accessing command center..."
	call := a.client.Login
	if register {
		title, msg = "NEW CAPTAIN REGISTERED", "Welcome aboard! Entering command center..."
		call = a.client.Register
	}

	res, err := call(ctx, username, password)
	if err != nil {
		log.Error("app [authenticate]", "err", err, "register", register)
		a.showLoginError(userMessage(err))
		return "", false, nil
	}

	a.state.Token = res.Token
	if err := a.store.Save(session.Saved{Username: username, Token: res.Token}); err != nil {
		log.Error("app [authenticate]", "err", err)
	}

	a.pendingAlert = &radarAlert{title: title, msg: msg}
	fmt.Fprintf(a.out, "%s: %s\n", title, msg)
	a.audio.Play(audio.Sonar)
	return username, true, nil
}

func (a *App) showLoginError(msg string) {
	fmt.Fprintf(a.out, "⚠️ %s ⚠️\n", msg)
}

func (a *App) showRanking(ctx context.Context) {
	fmt.Fprintln(a.out, "📡 Intercepting communications...")

	ranking, err := a.client.Ranking(ctx)
	if err != nil {
		log.Error("app [showRanking]", "err", err)
		fmt.Fprintln(a.out, "Error connecting to HQ ❌")
		return
	}

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "HALL OF FAME")
	for _, line := range rankingLines(ranking) {
		fmt.Fprintln(a.out, line)
	}
	fmt.Fprintln(a.out)
}
