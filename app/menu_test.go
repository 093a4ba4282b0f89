package app

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wojtekolesinski/battleships-cpu/audio"
	"github.com/wojtekolesinski/battleships-cpu/client"
	"github.com/wojtekolesinski/battleships-cpu/models"
	"github.com/wojtekolesinski/battleships-cpu/session"
)

type fakeBackend struct {
	token    string
	tokens   []string
	fires    []string
	fireGame models.Game
	fireErr  error
	authErr  error
	rankErr  error
	ranking  []models.PlayerScore
	logins   []string
	register []string
}

func (f *fakeBackend) SetToken(token string) {
	f.token = token
	f.tokens = append(f.tokens, token)
}

func (f *fakeBackend) CreateGame(ctx context.Context, username string) (models.GameStartResponse, error) {
	return models.GameStartResponse{}, errors.New("not used")
}

func (f *fakeBackend) StartBattle(ctx context.Context, gameID string, ships []models.Ship) (models.Game, error) {
	return models.Game{}, errors.New("not used")
}

func (f *fakeBackend) Fire(ctx context.Context, gameID, coordinate string) (models.Game, error) {
	f.fires = append(f.fires, coordinate)
	return f.fireGame, f.fireErr
}

func (f *fakeBackend) CpuTurn(ctx context.Context, gameID string) (models.Game, error) {
	return models.Game{}, errors.New("not used")
}

func (f *fakeBackend) Ranking(ctx context.Context) ([]models.PlayerScore, error) {
	return f.ranking, f.rankErr
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (models.AuthResponse, error) {
	f.logins = append(f.logins, username)
	if f.authErr != nil {
		return models.AuthResponse{}, f.authErr
	}
	return models.AuthResponse{Token: "tok-" + username, Message: "ok"}, nil
}

func (f *fakeBackend) Register(ctx context.Context, username, password string) (models.AuthResponse, error) {
	f.register = append(f.register, username)
	if f.authErr != nil {
		return models.AuthResponse{}, f.authErr
	}
	return models.AuthResponse{Token: "new-" + username, Message: "ok"}, nil
}

type fakeAudio struct {
	played []audio.Cue
	intros int
	wins   int
	loses  int
}

func (f *fakeAudio) Play(c audio.Cue) bool {
	f.played = append(f.played, c)
	return true
}

func (f *fakeAudio) PlayIntro() bool {
	f.intros++
	return true
}

func (f *fakeAudio) PlayWin() bool {
	f.wins++
	return true
}

func (f *fakeAudio) PlayLose() bool {
	f.loses++
	return true
}

func (f *fakeAudio) StopIntro()    {}
func (f *fakeAudio) StopAllMusic() {}

func newTestApp(t *testing.T, input string) (*App, *fakeBackend, *fakeAudio, *bytes.Buffer) {
	t.Helper()
	be := &fakeBackend{}
	au := &fakeAudio{}
	out := &bytes.Buffer{}
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	return New(be, au, store, strings.NewReader(input), out), be, au, out
}

func TestAuthenticateRequiresBothFields(t *testing.T) {
	a, be, au, out := newTestApp(t, "drake\n\n")

	_, ok, err := a.authenticate(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "⚠️ Please enter your nickname and password ⚠️")
	assert.Empty(t, be.logins, "nothing is sent without credentials")
	assert.Empty(t, au.played)
}

func TestAuthenticateShowsServerMessage(t *testing.T) {
	a, be, _, out := newTestApp(t, "drake\nwrong\n")
	be.authErr = &client.APIError{Op: "login", StatusCode: 401, Message: "Invalid credentials"}

	_, ok, err := a.authenticate(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), "Invalid credentials")

	_, found, err := a.store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAuthenticateConnectionFailure(t *testing.T) {
	a, be, _, out := newTestApp(t, "drake\npw\n")
	be.authErr = errors.New("dial tcp: connection refused")

	_, ok, err := a.authenticate(context.Background(), true)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out.String(), connectionErrorText)
	assert.Equal(t, []string{"drake"}, be.register)
}

func TestAuthenticateLoginSavesSession(t *testing.T) {
	a, be, au, out := newTestApp(t, "drake\nsecret\n")

	username, ok, err := a.authenticate(context.Background(), false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "drake", username)
	assert.Equal(t, []string{"drake"}, be.logins)
	assert.Equal(t, "tok-drake", a.state.Token)
	assert.Equal(t, []audio.Cue{audio.Sonar}, au.played)
	assert.Contains(t, out.String(), "LOGIN SUCCESSFUL")
	require.NotNil(t, a.pendingAlert)

	saved, found, err := a.store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, session.Saved{Username: "drake", Token: "tok-drake"}, saved)
}

func TestAuthenticateRegister(t *testing.T) {
	a, be, _, out := newTestApp(t, "nelson\nsecret\n")

	_, ok, err := a.authenticate(context.Background(), true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"nelson"}, be.register)
	assert.Empty(t, be.logins)
	assert.Equal(t, "new-nelson", a.state.Token)
	assert.Contains(t, out.String(), "NEW CAPTAIN REGISTERED")
}

func TestAuthenticateEOF(t *testing.T) {
	a, _, _, _ := newTestApp(t, "")

	_, _, err := a.authenticate(context.Background(), false)
	assert.ErrorIs(t, err, io.EOF)
}

func TestShowRanking(t *testing.T) {
	a, be, _, out := newTestApp(t, "")
	be.ranking = []models.PlayerScore{{Username: "drake", Wins: 3}}

	a.showRanking(context.Background())
	assert.Contains(t, out.String(), "📡 Intercepting communications...")
	assert.Contains(t, out.String(), "HALL OF FAME")
	assert.Contains(t, out.String(), "drake")
}

func TestShowRankingEmpty(t *testing.T) {
	a, _, _, out := newTestApp(t, "")

	a.showRanking(context.Background())
	assert.Contains(t, out.String(), "No victories yet. Be the first! ⚓")
}

func TestShowRankingError(t *testing.T) {
	a, be, _, out := newTestApp(t, "")
	be.rankErr = errors.New("boom")

	a.showRanking(context.Background())
	assert.Contains(t, out.String(), "Error connecting to HQ ❌")
	assert.NotContains(t, out.String(), "HALL OF FAME")
}

func TestMenuEntriesOfferResume(t *testing.T) {
	a, _, _, _ := newTestApp(t, "")
	assert.Len(t, a.menuEntries(), 4)

	require.NoError(t, a.store.Save(session.Saved{Username: "drake", Token: "t"}))
	entries := a.menuEntries()
	require.Len(t, entries, 6)
	assert.Equal(t, "Resume as drake", entries[2].label)
	assert.Equal(t, menuResume, entries[2].choice)
}

func TestRunQuits(t *testing.T) {
	a, _, au, out := newTestApp(t, "7\nabc\n4\n")

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 1, au.intros)
	assert.Contains(t, out.String(), "=== BATTLESHIP COMMAND CENTER ===")
	assert.Contains(t, out.String(), "Try again: no such option")
	assert.Contains(t, out.String(), `Try again: "abc" is not a number`)
}

func TestRunShowsRankingThenEndsOnEOF(t *testing.T) {
	a, _, _, out := newTestApp(t, "3\n")

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "HALL OF FAME")
}

func TestRunForgetsSavedSession(t *testing.T) {
	a, _, _, out := newTestApp(t, "4\n3\n")
	require.NoError(t, a.store.Save(session.Saved{Username: "drake", Token: "t"}))

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), "Saved session removed")

	_, found, err := a.store.Load()
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserMessage(t *testing.T) {
	apiErr := &client.APIError{Op: "fire", StatusCode: 400, Message: "Cell already shot"}
	assert.Equal(t, "Cell already shot", userMessage(apiErr))
	assert.Equal(t, "Invalid coordinate", userMessage(models.ErrInvalidCoord))
	assert.Equal(t, connectionErrorText, userMessage(errors.New("eof")))
}
