package repository

import (
	"encoding/json"
	"time"

	"go-tycoon/entities"
)

type PlayerModel struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Name       string    `gorm:"size:255"`
	PlayerType string    `gorm:"size:32"`
	CreatedAt  time.Time
}

func (PlayerModel) TableName() string { return "players" }

type GameModel struct {
	ID                   string `gorm:"primaryKey;size:64"`
	Name                 string `gorm:"size:128"`
	Status               string `gorm:"size:32"` // setup / active / completed
	CurrentPhase         string `gorm:"size:32"`
	StockRoundNumber     int
	OperatingRoundNumber int
	CurrentPlayerIndex   int
	BankCash             int
	TrainPhase           int
	PlayerOrderJSON      string `gorm:"type:text"`
	PassedPlayersJSON    string `gorm:"type:text"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (GameModel) TableName() string { return "games" }

type GamePlayerModel struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	GameID       string `gorm:"size:64;index"`
	PlayerID     string `gorm:"size:64;index"`
	Cash         int
	PriorityDeal bool
	StocksJSON   string `gorm:"type:text"`
}

func (GamePlayerModel) TableName() string { return "game_players" }

type CompanyModel struct {
	ID                uint   `gorm:"primaryKey;autoIncrement"`
	GameID            string `gorm:"size:64;index"`
	CompanyID         string `gorm:"size:8"`
	Name              string `gorm:"size:255"`
	Color             string `gorm:"size:16"`
	Status            string `gorm:"size:32"`
	PresidentID       string `gorm:"size:64"`
	Treasury          int
	StockPriceIndex   int
	SharesInIPO       int
	SharesInMarket    int
	TokensRemaining   int
	OperatedThisRound bool
}

func (CompanyModel) TableName() string { return "companies" }

type TrainModel struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	GameID    string `gorm:"size:64;index"`
	TrainID   string `gorm:"size:64"`
	TrainType string `gorm:"size:8"`
	CompanyID string `gorm:"size:8"`
	Rusted    bool
}

func (TrainModel) TableName() string { return "trains" }

type GameLogModel struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	GameID         string `gorm:"size:64;uniqueIndex:idx_game_seq"`
	Seq            int    `gorm:"uniqueIndex:idx_game_seq"`
	EventType      string `gorm:"size:64"`
	EventDataJSON  string `gorm:"type:text"`
	StockRound     int
	OperatingRound int
	CreatedAt      time.Time
}

func (GameLogModel) TableName() string { return "game_log" }

type BoardStateModel struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	GameID     string `gorm:"size:64;index"`
	TileID     string `gorm:"size:8"`
	TileNumber string `gorm:"size:16"`
	Rotation   int
}

func (BoardStateModel) TableName() string { return "board_state" }

// AllModels 自动迁移用
func AllModels() []any {
	return []any{
		&PlayerModel{}, &GameModel{}, &GamePlayerModel{}, &CompanyModel{},
		&TrainModel{}, &GameLogModel{}, &BoardStateModel{},
	}
}

// gameRows 一局游戏展开成各表的行
type gameRows struct {
	players     []PlayerModel
	game        GameModel
	gamePlayers []GamePlayerModel
	companies   []CompanyModel
	trains      []TrainModel
	tiles       []BoardStateModel
}

func gameStatus(g *entities.GameState) string {
	switch g.Phase {
	case entities.PhaseSetup:
		return "setup"
	case entities.PhaseGameEnd:
		return "completed"
	}
	return "active"
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}

func toRows(g *entities.GameState) gameRows {
	passed := make([]string, 0, len(g.PassedPlayers))
	for _, id := range g.PlayerOrder {
		if g.PassedPlayers[id] {
			passed = append(passed, id)
		}
	}
	rows := gameRows{
		game: GameModel{
			ID:                   g.ID,
			Name:                 g.Name,
			Status:               gameStatus(g),
			CurrentPhase:         string(g.Phase),
			StockRoundNumber:     g.StockRoundNumber,
			OperatingRoundNumber: g.OperatingRoundNumber,
			CurrentPlayerIndex:   g.CurrentPlayerIndex,
			BankCash:             g.BankCash,
			TrainPhase:           g.CurrentPhaseNumber(),
			PlayerOrderJSON:      mustJSON(g.PlayerOrder),
			PassedPlayersJSON:    mustJSON(passed),
			CreatedAt:            g.CreatedAt,
			UpdatedAt:            g.UpdatedAt,
		},
	}
	for _, id := range g.PlayerOrder {
		p := g.Players[id]
		rows.players = append(rows.players, PlayerModel{ID: p.ID, Name: p.Name, PlayerType: string(p.Kind)})
		rows.gamePlayers = append(rows.gamePlayers, GamePlayerModel{
			GameID:       g.ID,
			PlayerID:     p.ID,
			Cash:         p.Cash,
			PriorityDeal: p.PriorityDeal,
			StocksJSON:   mustJSON(p.Stocks),
		})
	}
	for _, id := range g.CompanyOrder {
		c := g.Companies[id]
		row := CompanyModel{
			GameID:            g.ID,
			CompanyID:         c.ID,
			Name:              c.Name,
			Color:             c.Color,
			Status:            string(c.Status),
			PresidentID:       c.PresidentID,
			Treasury:          c.Treasury,
			StockPriceIndex:   c.PriceIndex,
			TokensRemaining:   c.TokensRemaining,
			OperatedThisRound: c.OperatedThisRound,
		}
		if g.StockMarket != nil {
			if s, err := g.StockMarket.Stock(id); err == nil {
				row.SharesInIPO = s.IPOShares
				row.SharesInMarket = s.MarketShares
			}
		}
		rows.companies = append(rows.companies, row)
	}
	if g.TrainDepot != nil {
		for _, t := range g.TrainDepot.Trains {
			rows.trains = append(rows.trains, TrainModel{
				GameID:    g.ID,
				TrainID:   t.ID,
				TrainType: string(t.Type),
				CompanyID: t.OwnerID,
				Rusted:    t.Rusted,
			})
		}
	}
	if g.Board != nil {
		for row := 0; row < entities.BoardRows; row++ {
			for col := 0; col < entities.BoardCols; col++ {
				t, ok := g.Board.Tiles[entities.TileID(row, col)]
				if !ok || !t.HasTrack() {
					continue
				}
				rows.tiles = append(rows.tiles, BoardStateModel{
					GameID:     g.ID,
					TileID:     t.ID,
					TileNumber: t.TileNumber,
					Rotation:   t.Rotation,
				})
			}
		}
	}
	return rows
}

func toLogRows(gameID string, entries []entities.LogEntry) []GameLogModel {
	out := make([]GameLogModel, 0, len(entries))
	for _, e := range entries {
		out = append(out, GameLogModel{
			GameID:         gameID,
			Seq:            e.Seq,
			EventType:      e.Type,
			EventDataJSON:  mustJSON(e.Data),
			StockRound:     e.StockRound,
			OperatingRound: e.OperatingRound,
			CreatedAt:      e.At,
		})
	}
	return out
}
