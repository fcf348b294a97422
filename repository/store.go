package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go-tycoon/entities"
)

var ErrSnapshotNotFound = errors.New("游戏快照不存在")

// SnapshotStore 保存进行中游戏的完整状态，服务重启后从这里恢复
type SnapshotStore interface {
	Save(ctx context.Context, g *entities.GameState) error
	Load(ctx context.Context, gameID string) (*entities.GameState, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, gameID string) error
}

// LogReader 日志单独存放的快照存储，可以只读一段日志而不解码整个快照
type LogReader interface {
	LogRange(ctx context.Context, gameID string, start, stop int64) ([]entities.LogEntry, error)
}

// Archive 对局归档，只追加
type Archive interface {
	RecordGame(ctx context.Context, g *entities.GameState) error
	AppendLog(ctx context.Context, gameID string, entries []entities.LogEntry) error
}

var _ LogReader = (*RedisSnapshotStore)(nil)

// MemoryStore 未启用 redis 时的快照存储，也用于测试
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, g *entities.GameState) error {
	data, err := encodeState(g)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[g.ID] = data
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, gameID string) (*entities.GameState, error) {
	s.mu.RLock()
	data, ok := s.games[gameID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return decodeState(data)
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *MemoryStore) Delete(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, gameID)
	return nil
}

// NopArchive 未启用 mysql 时使用
type NopArchive struct{}

func (NopArchive) RecordGame(ctx context.Context, g *entities.GameState) error { return nil }
func (NopArchive) AppendLog(ctx context.Context, gameID string, entries []entities.LogEntry) error {
	return nil
}
