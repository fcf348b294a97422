package dto

type GameStatus string

const (
	GameStatusWaiting  GameStatus = "waiting"
	GameStatusPlaying  GameStatus = "playing"
	GameStatusFinished GameStatus = "finished"
)

type GameInfo struct {
	GameID      string     `json:"gameID"`
	Name        string     `json:"name"`
	Status      GameStatus `json:"status"`
	Phase       string     `json:"phase"`
	PlayerCount int        `json:"playerCount"`
	Players     []string   `json:"players"`
}

type CreateGameRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateGameResponse struct {
	GameID string `json:"gameID"`
}

type JoinGameRequest struct {
	PlayerName string `json:"playerName"`
	Kind       string `json:"kind"` // human / rule_based_ai
	PlayerID   string `json:"playerID"`
}

type JoinGameResponse struct {
	PlayerID string `json:"playerID"`
}

type GetGameList struct {
	Games []GameInfo `json:"games"`
}

type TokenRequest struct {
	UserID string `json:"userID" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
