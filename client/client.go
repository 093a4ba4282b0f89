package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wojtekolesinski/battleships-cpu/models"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Op, e.Message, e.StatusCode)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.StatusCode == http.StatusBadRequest
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

type Client struct {
	client  http.Client
	baseUrl string
	token   string
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	return &Client{
		baseUrl: baseUrl,
		client: http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

func (c *Client) CreateGame(ctx context.Context, username string) (res models.GameStartResponse, err error) {
	payload := models.GameStartRequest{Username: username}
	err = c.do(ctx, "CreateGame", http.MethodPost, "/game/new", false, payload, &res,
		"error creating the game on the server")
	if err != nil {
		return
	}
	if res.Game == nil {
		err = fmt.Errorf("CreateGame: response without game")
	}
	return
}

func (c *Client) StartBattle(ctx context.Context, gameID string, ships []models.Ship) (game models.Game, err error) {
	err = c.do(ctx, "StartBattle", http.MethodPost, "/game/"+url.PathEscape(gameID)+"/start-battle", true, ships, &game,
		"error starting the battle")
	return
}

func (c *Client) Fire(ctx context.Context, gameID, coordinate string) (game models.Game, err error) {
	if !models.ValidCoord(coordinate) {
		err = fmt.Errorf("Fire: %w: %q", models.ErrInvalidCoord, coordinate)
		return
	}
	payload := models.FireRequest{Coordinate: coordinate}
	err = c.do(ctx, "Fire", http.MethodPost, "/game/"+url.PathEscape(gameID)+"/fire", true, payload, &game,
		"error registering the shot")
	return
}

func (c *Client) CpuTurn(ctx context.Context, gameID string) (game models.Game, err error) {
	err = c.do(ctx, "CpuTurn", http.MethodPost, "/game/"+url.PathEscape(gameID)+"/cpu-turn", true, nil, &game,
		"error running the CPU turn")
	return
}

func (c *Client) Ranking(ctx context.Context) (ranking []models.PlayerScore, err error) {
	err = c.do(ctx, "Ranking", http.MethodGet, "/game/ranking", false, nil, &ranking,
		"error fetching the ranking")
	return
}

func (c *Client) Login(ctx context.Context, username, password string) (res models.AuthResponse, err error) {
	payload := models.AuthRequest{Username: username, Password: password}
	err = c.do(ctx, "Login", http.MethodPost, "/api/auth/login", false, payload, &res,
		"login failed")
	return
}

func (c *Client) Register(ctx context.Context, username, password string) (res models.AuthResponse, err error) {
	payload := models.AuthRequest{Username: username, Password: password}
	err = c.do(ctx, "Register", http.MethodPost, "/api/auth/register", false, payload, &res,
		"registration failed")
	return
}

func (c *Client) do(ctx context.Context, op, method, endpoint string, auth bool, payload, out any, failMsg string) error {
	path, err := url.JoinPath(c.baseUrl, endpoint)
	if err != nil {
		return fmt.Errorf("%s: url.JoinPath: %w", op, err)
	}

	var body io.Reader
	if payload != nil {
		payloadJson, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("%s: json.Marshal: %w", op, err)
		}
		body = bytes.NewReader(payloadJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: http.NewRequestWithContext: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	log.Debug("client ["+op+"]", "method", method, "path", path)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: client.Do: %w", op, err)
	}
	defer res.Body.Close()

	log.Info("client ["+op+"]", "statusCode", res.StatusCode)

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%s: io.ReadAll: %w", op, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := &APIError{Op: op, StatusCode: res.StatusCode, Message: failMsg}
		var errBody models.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		}
		log.Error("client ["+op+"]", "err", apiErr)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: json.Unmarshal: %w", op, err)
	}
	return nil
}
