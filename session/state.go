package session

import "github.com/wojtekolesinski/battleships-cpu/setup"

// State mirrors the current game as seen by the client. Nothing in it is
// authoritative; it only decides what the screen shows and which requests
// are allowed to leave.
type State struct {
	GameID     string
	IsFinished bool
	Username   string
	Token      string

	Setup *setup.Placer

	store *Store
}

func New(store *Store) *State {
	return &State{
		Setup: setup.NewPlacer(),
		store: store,
	}
}

// SaveSession records the active game and persists the token.
func (s *State) SaveSession(token, gameID, username string) error {
	s.Token = token
	s.GameID = gameID
	s.Username = username
	if s.store == nil {
		return nil
	}
	return s.store.Save(Saved{Username: username, Token: token})
}

// Reset prepares a rematch: the game is dropped but the captain stays
// logged in, so a new game can be created right away.
func (s *State) Reset() {
	s.GameID = ""
	s.IsFinished = false
	s.Setup.Reset()
}

// FullReset forgets the captain as well. The persisted token is kept so the
// next start-up can offer to resume it.
func (s *State) FullReset() {
	s.Reset()
	s.Username = ""
	s.Token = ""
}

// Logout is FullReset plus removal of the persisted token.
func (s *State) Logout() error {
	s.FullReset()
	if s.store == nil {
		return nil
	}
	return s.store.Clear()
}

func (s *State) InGame() bool {
	return s.GameID != "" && !s.IsFinished
}
