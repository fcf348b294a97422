package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-tycoon/entities"
	"go-tycoon/logs"
)

// newArchive 用 sqlite 文件库代替 mysql，表结构和 upsert 语句一致
func newArchive(t *testing.T) (*MySQLArchive, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "archive.db")), &gorm.Config{
		Logger: logs.NewGormLogger(logger.Silent, time.Second),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(AllModels()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewMySQLArchive(db), db
}

func rowCount(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestMySQLArchive_局面整体替换(t *testing.T) {
	ctx := context.Background()
	a, db := newArchive(t)
	g := newGame(t)
	g.Name = "周末局"
	require.NoError(t, a.RecordGame(ctx, g))

	assert.EqualValues(t, 1, rowCount(t, db, &GameModel{}))
	assert.EqualValues(t, 2, rowCount(t, db, &PlayerModel{}))
	assert.EqualValues(t, 2, rowCount(t, db, &GamePlayerModel{}))
	assert.EqualValues(t, len(entities.CompanyDefs), rowCount(t, db, &CompanyModel{}))
	assert.EqualValues(t, 30, rowCount(t, db, &TrainModel{}))

	require.NoError(t, g.StockMarket.BuyFromIPO("AR", g.Players["a"], 2))
	g.Players["a"].Cash = 100
	g.Players["b"].Name = "改名"
	g.TrainDepot.Trains[0].OwnerID = "AR"
	require.NoError(t, g.Board.LayTrack("B2", "7", 1))
	require.NoError(t, a.RecordGame(ctx, g))

	assert.EqualValues(t, 1, rowCount(t, db, &GameModel{}))
	assert.EqualValues(t, 2, rowCount(t, db, &GamePlayerModel{}), "旧局面被替换而不是追加")
	assert.EqualValues(t, 30, rowCount(t, db, &TrainModel{}))
	assert.EqualValues(t, 1, rowCount(t, db, &BoardStateModel{}))

	var gp GamePlayerModel
	require.NoError(t, db.Where("game_id = ? AND player_id = ?", "g1", "a").First(&gp).Error)
	assert.Equal(t, 100, gp.Cash)
	assert.Equal(t, `{"AR":2}`, gp.StocksJSON)

	var p PlayerModel
	require.NoError(t, db.First(&p, "id = ?", "b").Error)
	assert.Equal(t, "改名", p.Name)

	var game GameModel
	require.NoError(t, db.First(&game, "id = ?", "g1").Error)
	assert.Equal(t, "周末局", game.Name)
	assert.Equal(t, "active", game.Status)

	var tr TrainModel
	require.NoError(t, db.Where("game_id = ? AND train_id = ?", "g1", g.TrainDepot.Trains[0].ID).First(&tr).Error)
	assert.Equal(t, "AR", tr.CompanyID)
}

func TestMySQLArchive_日志按序号去重追加(t *testing.T) {
	ctx := context.Background()
	a, db := newArchive(t)
	g := newGame(t)
	first := len(g.GameLog)
	require.Positive(t, first)

	require.NoError(t, a.AppendLog(ctx, g.ID, g.GameLog))
	require.NoError(t, a.AppendLog(ctx, g.ID, g.GameLog), "重复提交直接忽略")
	assert.EqualValues(t, first, rowCount(t, db, &GameLogModel{}))

	g.AddLog("pass", map[string]any{"player_id": "a"})
	require.NoError(t, a.AppendLog(ctx, g.ID, g.LogSince(first)))
	assert.EqualValues(t, first+1, rowCount(t, db, &GameLogModel{}))

	var last GameLogModel
	require.NoError(t, db.Where("game_id = ?", g.ID).Order("seq desc").First(&last).Error)
	assert.Equal(t, first+1, last.Seq)
	assert.Equal(t, "pass", last.EventType)
	assert.JSONEq(t, `{"player_id":"a"}`, last.EventDataJSON)

	require.NoError(t, a.AppendLog(ctx, g.ID, nil))
}
