package models

const (
	StatusSetup    = "SETUP"
	StatusPlaying  = "PLAYING"
	StatusFinished = "FINISHED"

	TurnPlayer = "PLAYER"
	TurnCPU    = "CPU"
)

type Ship struct {
	Type  string   `json:"type"`
	Size  int      `json:"size"`
	Cells []string `json:"cells"`
	Hits  []string `json:"hits"`
	Sunk  bool     `json:"sunk"`
}

type Board struct {
	Ships         []Ship   `json:"ships"`
	ShotsReceived []string `json:"shotsReceived"`
}

type Game struct {
	ID          string `json:"id"`
	PlayerID    int64  `json:"playerId,omitempty"`
	Status      string `json:"status"`
	Turn        string `json:"turn"`
	Winner      string `json:"winner,omitempty"`
	PlayerBoard Board  `json:"playerBoard"`
	CpuBoard    Board  `json:"cpuBoard"`
}

type GameStartRequest struct {
	Username string `json:"username"`
}

type GameStartResponse struct {
	Game  *Game  `json:"game"`
	Token string `json:"token"`
}

type FireRequest struct {
	Coordinate string `json:"coordinate"`
}

type PlayerScore struct {
	Username string `json:"username"`
	Wins     int64  `json:"wins"`
}

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// Finished reports whether the server has declared a winner.
func (g Game) Finished() bool {
	return g.Status == StatusFinished
}
