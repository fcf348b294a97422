package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-tycoon/entities"
)

// MySQLArchive 对局归档：每次行动后覆盖当前局面表，日志只追加
type MySQLArchive struct {
	db *gorm.DB
}

func NewMySQLArchive(db *gorm.DB) *MySQLArchive {
	return &MySQLArchive{db: db}
}

func (a *MySQLArchive) RecordGame(ctx context.Context, g *entities.GameState) error {
	rows := toRows(g)
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(rows.players) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"name", "player_type"}),
			}).Create(&rows.players).Error; err != nil {
				return fmt.Errorf("保存玩家失败: %w", err)
			}
		}
		if err := tx.Save(&rows.game).Error; err != nil {
			return fmt.Errorf("保存游戏失败: %w", err)
		}
		// 局面表整体替换
		for _, m := range []any{&GamePlayerModel{}, &CompanyModel{}, &TrainModel{}, &BoardStateModel{}} {
			if err := tx.Where("game_id = ?", g.ID).Delete(m).Error; err != nil {
				return fmt.Errorf("清理旧局面失败: %w", err)
			}
		}
		if err := createIfAny(tx, rows.gamePlayers); err != nil {
			return err
		}
		if err := createIfAny(tx, rows.companies); err != nil {
			return err
		}
		if err := createIfAny(tx, rows.trains); err != nil {
			return err
		}
		return createIfAny(tx, rows.tiles)
	})
}

func createIfAny[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&rows, 100).Error; err != nil {
		return fmt.Errorf("写入失败: %w", err)
	}
	return nil
}

// AppendLog 按 (game_id, seq) 去重，重复提交的日志会被忽略
func (a *MySQLArchive) AppendLog(ctx context.Context, gameID string, entries []entities.LogEntry) error {
	rows := toLogRows(gameID, entries)
	if len(rows) == 0 {
		return nil
	}
	err := a.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, 100).Error
	if err != nil {
		return fmt.Errorf("写入游戏日志失败: %w", err)
	}
	return nil
}
