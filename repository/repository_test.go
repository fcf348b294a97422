package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-tycoon/config"
	"go-tycoon/entities"
)

func newGame(t *testing.T) *entities.GameState {
	t.Helper()
	g := entities.NewGameState("g1")
	require.NoError(t, g.AddPlayer(entities.NewPlayer("a", "Alice", entities.PlayerHuman)))
	require.NoError(t, g.AddPlayer(entities.NewPlayer("b", "Bot", entities.PlayerRuleBasedAI)))
	require.NoError(t, g.Initialize())
	return g
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := newGame(t)
	g.PassedPlayers["a"] = true
	require.NoError(t, s.Save(ctx, g))

	// 保存的是快照，之后的修改不影响
	g.BankCash = 0

	got, err := s.Load(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, entities.BankInitialCash-2*420, got.BankCash)
	assert.Equal(t, []string{"a", "b"}, got.PlayerOrder)
	assert.True(t, got.PassedPlayers["a"])
	assert.Equal(t, 420, got.Players["b"].Cash)
	assert.Len(t, got.TrainDepot.Trains, 30)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"g1"}, ids)

	require.NoError(t, s.Delete(ctx, "g1"))
	_, err = s.Load(ctx, "g1")
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestToRows(t *testing.T) {
	g := newGame(t)
	require.NoError(t, g.StockMarket.BuyFromIPO("AR", g.Players["a"], 2))
	g.TrainDepot.Trains[0].OwnerID = "AR"
	require.NoError(t, g.Board.LayTrack("B2", "7", 1))

	rows := toRows(g)
	assert.Equal(t, "active", rows.game.Status)
	assert.Equal(t, `["a","b"]`, rows.game.PlayerOrderJSON)
	assert.Equal(t, `[]`, rows.game.PassedPlayersJSON)
	require.Len(t, rows.gamePlayers, 2)
	assert.Equal(t, `{"AR":2}`, rows.gamePlayers[0].StocksJSON)
	assert.Len(t, rows.companies, len(entities.CompanyDefs))
	assert.Equal(t, 8, rows.companies[0].SharesInIPO)
	assert.Len(t, rows.trains, 30)
	assert.Equal(t, "AR", rows.trains[0].CompanyID)
	require.Len(t, rows.tiles, 1)
	assert.Equal(t, "B2", rows.tiles[0].TileID)

	logRows := toLogRows(g.ID, g.GameLog)
	require.Len(t, logRows, len(g.GameLog))
	assert.Equal(t, "game_start", logRows[0].EventType)
	assert.Equal(t, 1, logRows[0].Seq)
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.MySQLConfig{Host: "db", Port: 3306, User: "root", Password: "pw", DBName: "tycoon"})
	assert.Contains(t, dsn, "root:pw@tcp(db:3306)/tycoon?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "game:abc:state", stateKey("abc"))
	assert.Equal(t, "game:abc:log", logKey("abc"))
}
