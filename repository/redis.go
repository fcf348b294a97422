package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"go-tycoon/config"
	"go-tycoon/entities"
	"go-tycoon/logs"
)

func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}
	logs.Info("✅ Redis 连接成功", zap.String("addr", cfg.Addr))
	return rdb, nil
}

func stateKey(gameID string) string { return fmt.Sprintf("game:%s:state", gameID) }
func logKey(gameID string) string   { return fmt.Sprintf("game:%s:log", gameID) }

const gamesKey = "games"

// RedisSnapshotStore 状态整体存一个 key，日志单独存 list 方便按段读取
type RedisSnapshotStore struct {
	rdb *redis.Client
}

func NewRedisSnapshotStore(rdb *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb}
}

func (s *RedisSnapshotStore) Save(ctx context.Context, g *entities.GameState) error {
	data, err := encodeState(g)
	if err != nil {
		return err
	}
	n, err := s.rdb.LLen(ctx, logKey(g.ID)).Result()
	if err != nil {
		return fmt.Errorf("读取日志长度失败: %w", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, stateKey(g.ID), data, 0)
	pipe.SAdd(ctx, gamesKey, g.ID)
	for _, e := range g.LogSince(int(n)) {
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("日志序列化失败: %w", err)
		}
		pipe.RPush(ctx, logKey(g.ID), line)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("保存游戏 %s 失败: %w", g.ID, err)
	}
	return nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, gameID string) (*entities.GameState, error) {
	data, err := s.rdb.Get(ctx, stateKey(gameID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("读取游戏 %s 失败: %w", gameID, err)
	}
	return decodeState(data)
}

func (s *RedisSnapshotStore) List(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, gamesKey).Result()
	if err != nil {
		return nil, fmt.Errorf("读取游戏列表失败: %w", err)
	}
	return ids, nil
}

func (s *RedisSnapshotStore) Delete(ctx context.Context, gameID string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, stateKey(gameID), logKey(gameID))
	pipe.SRem(ctx, gamesKey, gameID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("删除游戏 %s 失败: %w", gameID, err)
	}
	return nil
}

// LogRange 读取 [start, stop] 之间的日志，stop = -1 表示到末尾
func (s *RedisSnapshotStore) LogRange(ctx context.Context, gameID string, start, stop int64) ([]entities.LogEntry, error) {
	if start < 0 {
		start = 0
	}
	lines, err := s.rdb.LRange(ctx, logKey(gameID), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("读取日志失败: %w", err)
	}
	out := make([]entities.LogEntry, 0, len(lines))
	for _, line := range lines {
		var e entities.LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, fmt.Errorf("日志反序列化失败: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}
