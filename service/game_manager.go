// Package service 持有所有进行中的游戏，按游戏串行化动作并负责持久化、推送和电脑玩家
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-tycoon/ai"
	"go-tycoon/config"
	"go-tycoon/dto"
	"go-tycoon/engine"
	"go-tycoon/entities"
	"go-tycoon/logs"
	"go-tycoon/repository"
)

var (
	ErrGameNotFound      = errors.New("游戏不存在")
	ErrGameStarted       = entities.ErrGameAlreadyStarted
	ErrInvalidPlayerKind = errors.New("未知的玩家类型")
	ErrInvalidAction     = errors.New("动作格式错误")
)

// Update 每次状态变化后推送给监听者的内容，State 是拷贝
type Update struct {
	GameID  string                 `json:"gameID"`
	State   *entities.GameState    `json:"state"`
	Actor   string                 `json:"currentPlayer"`
	Actions []dto.ActionDescriptor `json:"actions"`
	Result  *dto.ActionResult      `json:"result,omitempty"`
}

type Listener func(Update)

type BotFactory func(playerID string) ai.Player

type gameEntry struct {
	mu         sync.Mutex
	state      *entities.GameState
	lastAction time.Time
	archived   int // 已经写入归档的日志条数
	bots       map[string]ai.Player
	deleted    bool
}

type GameManager struct {
	store   repository.SnapshotStore
	archive repository.Archive
	cfg     config.GameConfig
	newBot  BotFactory
	now     func() time.Time

	mu      sync.Mutex
	games   map[string]*gameEntry
	removed map[string]struct{} // 已删除的游戏，防止并发恢复把它放回来

	listenerMu sync.RWMutex
	listeners  []Listener
}

type Option func(*GameManager)

func WithBotFactory(f BotFactory) Option {
	return func(m *GameManager) { m.newBot = f }
}

func WithClock(now func() time.Time) Option {
	return func(m *GameManager) { m.now = now }
}

func NewGameManager(store repository.SnapshotStore, archive repository.Archive, cfg config.GameConfig, opts ...Option) *GameManager {
	if archive == nil {
		archive = repository.NopArchive{}
	}
	m := &GameManager{
		store:   store,
		archive: archive,
		cfg:     cfg,
		newBot:  func(string) ai.Player { return ai.NewRuleBasedBot(0, 0.5) },
		now:     time.Now,
		games:   make(map[string]*gameEntry),
		removed: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *GameManager) Subscribe(l Listener) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()
	m.listeners = append(m.listeners, l)
}

// entry 先查内存，没有再从快照恢复。读快照时不持有全局锁，放回内存前再查一次
func (m *GameManager) entry(ctx context.Context, gameID string) (*gameEntry, error) {
	m.mu.Lock()
	e, ok := m.games[gameID]
	m.mu.Unlock()
	if ok {
		return e, nil
	}

	g, err := m.store.Load(ctx, gameID)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("恢复游戏 %s 失败: %w", gameID, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.games[gameID]; ok {
		return e, nil
	}
	if _, gone := m.removed[gameID]; gone {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	e = &gameEntry{state: g, lastAction: m.now(), archived: len(g.GameLog), bots: make(map[string]ai.Player)}
	m.games[gameID] = e
	logs.Info("从快照恢复游戏", zap.String("gameID", gameID), zap.String("phase", string(g.Phase)))
	return e, nil
}

// lock 返回已加锁的游戏，调用方负责解锁。已删除的游戏按不存在处理
func (m *GameManager) lock(ctx context.Context, gameID string) (*gameEntry, error) {
	e, err := m.entry(ctx, gameID)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	if e.deleted {
		e.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return e, nil
}

func (m *GameManager) CreateGame(ctx context.Context, name string) (string, error) {
	id := newGameID()
	g := entities.NewGameState(id)
	g.Name = name
	if err := m.store.Save(ctx, g); err != nil {
		return "", fmt.Errorf("保存新游戏失败: %w", err)
	}

	m.mu.Lock()
	m.games[id] = &gameEntry{state: g, lastAction: m.now(), bots: make(map[string]ai.Player)}
	m.mu.Unlock()

	logs.Info("创建游戏", zap.String("gameID", id), zap.String("name", name))
	return id, nil
}

// JoinGame 只能在开始前加入，playerID 为空时生成一个
func (m *GameManager) JoinGame(ctx context.Context, gameID string, req dto.JoinGameRequest) (string, error) {
	kind, err := parseKind(req.Kind)
	if err != nil {
		return "", err
	}
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return "", err
	}
	defer e.mu.Unlock()

	g := e.state
	if g.Phase != entities.PhaseSetup {
		return "", ErrGameStarted
	}
	playerID := req.PlayerID
	if playerID == "" {
		playerID = newPlayerID()
	}
	if err := g.AddPlayer(entities.NewPlayer(playerID, req.PlayerName, kind)); err != nil {
		return "", err
	}
	m.commit(ctx, e, nil)
	logs.Info("玩家加入", zap.String("gameID", gameID), zap.String("playerID", playerID), zap.String("kind", string(kind)))
	return playerID, nil
}

func (m *GameManager) StartGame(ctx context.Context, gameID string) error {
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return err
	}
	if e.state.Phase != entities.PhaseSetup {
		e.mu.Unlock()
		return ErrGameStarted
	}
	if err := engine.Start(e.state); err != nil {
		e.mu.Unlock()
		return err
	}
	m.commit(ctx, e, nil)
	e.mu.Unlock()

	m.runAI(ctx, e)
	return nil
}

// AvailableActions playerID 为空时返回当前行动方的动作
func (m *GameManager) AvailableActions(ctx context.Context, gameID, playerID string) (string, []dto.ActionDescriptor, error) {
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return "", nil, err
	}
	defer e.mu.Unlock()

	actor, actions := engine.AvailableActions(e.state)
	if playerID != "" && playerID != actor {
		return actor, []dto.ActionDescriptor{}, nil
	}
	if actions == nil {
		actions = []dto.ActionDescriptor{}
	}
	return actor, actions, nil
}

// ExecuteAction 规则拒绝放在结果里返回，只有格式错误和游戏不存在才返回 error
func (m *GameManager) ExecuteAction(ctx context.Context, gameID, playerID string, raw map[string]interface{}) (dto.ActionResult, error) {
	action, err := dto.DecodeAction(raw)
	if err != nil {
		return dto.ActionResult{}, fmt.Errorf("%w: %v", ErrInvalidAction, err)
	}
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return dto.ActionResult{}, err
	}

	res := engine.Execute(e.state, playerID, action)
	if !res.Success {
		e.mu.Unlock()
		logs.Debug("动作被拒绝", zap.String("gameID", gameID), zap.String("playerID", playerID),
			zap.String("type", string(action.Type())), zap.String("code", res.Code))
		return res, nil
	}
	e.lastAction = m.now()
	m.commit(ctx, e, &res)
	e.mu.Unlock()

	m.runAI(ctx, e)
	return res, nil
}

func (m *GameManager) GetState(ctx context.Context, gameID string) (*entities.GameState, error) {
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()
	return repository.Clone(e.state)
}

func (m *GameManager) ListGames(ctx context.Context) ([]dto.GameInfo, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取游戏列表失败: %w", err)
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	m.mu.Lock()
	for id := range m.games {
		set[id] = struct{}{}
	}
	m.mu.Unlock()
	ids = ids[:0]
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	games := make([]dto.GameInfo, 0, len(ids))
	for _, id := range ids {
		e, err := m.lock(ctx, id)
		if err != nil {
			logs.Warn("跳过无法恢复的游戏", zap.String("gameID", id), zap.Error(err))
			continue
		}
		games = append(games, gameInfo(e.state))
		e.mu.Unlock()
	}
	return games, nil
}

func gameInfo(g *entities.GameState) dto.GameInfo {
	status := dto.GameStatusPlaying
	switch g.Phase {
	case entities.PhaseSetup:
		status = dto.GameStatusWaiting
	case entities.PhaseGameEnd:
		status = dto.GameStatusFinished
	}
	players := make([]string, 0, len(g.PlayerOrder))
	for _, id := range g.PlayerOrder {
		players = append(players, g.Players[id].Name)
	}
	return dto.GameInfo{
		GameID:      g.ID,
		Name:        g.Name,
		Status:      status,
		Phase:       string(g.Phase),
		PlayerCount: len(g.PlayerOrder),
		Players:     players,
	}
}

// Log 返回 since 之后的日志。存储单独保存日志时从存储读，读失败再退回内存
func (m *GameManager) Log(ctx context.Context, gameID string, since int) ([]entities.LogEntry, error) {
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return nil, err
	}
	defer e.mu.Unlock()

	if reader, ok := m.store.(repository.LogReader); ok {
		entries, err := reader.LogRange(ctx, gameID, int64(since), -1)
		if err == nil {
			return entries, nil
		}
		logs.Warn("从存储读取日志失败，改用内存", zap.String("gameID", gameID), zap.Error(err))
	}
	entries := e.state.LogSince(since)
	if entries == nil {
		entries = []entities.LogEntry{}
	}
	return entries, nil
}

// Scores 结束前也能查，winner 只在 game_end 时给出
func (m *GameManager) Scores(ctx context.Context, gameID string) ([]entities.PlayerScore, string, error) {
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return nil, "", err
	}
	defer e.mu.Unlock()
	scores := e.state.Scores()
	winner := ""
	if e.state.Phase == entities.PhaseGameEnd && len(scores) > 0 {
		winner = scores[0].PlayerID
	}
	return scores, winner, nil
}

// DeleteGame 持有游戏锁删除，正在排队的动作拿到锁后会看到游戏已删除
func (m *GameManager) DeleteGame(ctx context.Context, gameID string) error {
	e, err := m.lock(ctx, gameID)
	if err != nil {
		return err
	}
	defer e.mu.Unlock()

	e.deleted = true
	m.mu.Lock()
	delete(m.games, gameID)
	m.removed[gameID] = struct{}{}
	m.mu.Unlock()
	if err := m.store.Delete(ctx, gameID); err != nil {
		return fmt.Errorf("删除游戏 %s 失败: %w", gameID, err)
	}
	logs.Info("删除游戏", zap.String("gameID", gameID))
	return nil
}

// commit 持久化并推送，调用方持有 e.mu。存储失败只记日志，内存状态照常推进。
func (m *GameManager) commit(ctx context.Context, e *gameEntry, res *dto.ActionResult) {
	g := e.state
	if err := m.store.Save(ctx, g); err != nil {
		logs.Error("保存快照失败", zap.String("gameID", g.ID), zap.Error(err))
	}
	if g.Phase != entities.PhaseSetup {
		if err := m.archive.RecordGame(ctx, g); err != nil {
			logs.Error("归档游戏失败", zap.String("gameID", g.ID), zap.Error(err))
		}
		if fresh := g.LogSince(e.archived); len(fresh) > 0 {
			if err := m.archive.AppendLog(ctx, g.ID, fresh); err != nil {
				logs.Error("归档日志失败", zap.String("gameID", g.ID), zap.Error(err))
			} else {
				e.archived = len(g.GameLog)
			}
		}
	}
	m.notify(g, res)
}

func (m *GameManager) notify(g *entities.GameState, res *dto.ActionResult) {
	m.listenerMu.RLock()
	listeners := append([]Listener(nil), m.listeners...)
	m.listenerMu.RUnlock()
	if len(listeners) == 0 {
		return
	}

	state, err := repository.Clone(g)
	if err != nil {
		logs.Error("拷贝游戏状态失败", zap.String("gameID", g.ID), zap.Error(err))
		return
	}
	actor, actions := engine.AvailableActions(g)
	u := Update{GameID: g.ID, State: state, Actor: actor, Actions: actions, Result: res}
	for _, l := range listeners {
		l(u)
	}
}

func (m *GameManager) bot(e *gameEntry, playerID string) ai.Player {
	b, ok := e.bots[playerID]
	if !ok {
		b = m.newBot(playerID)
		e.bots[playerID] = b
	}
	return b
}

// runAI 轮到电脑玩家时连续替它行动，直到轮到人类或者步数用完。
// 调用方不能持有 e.mu，思考延迟期间不占游戏锁
func (m *GameManager) runAI(ctx context.Context, e *gameEntry) {
	for step := 0; step < m.cfg.MaxAISteps; step++ {
		if m.cfg.AIThinkDelay > 0 {
			if !m.aiToMove(e) {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(m.cfg.AIThinkDelay):
			}
		}
		if ctx.Err() != nil || !m.aiStep(ctx, e) {
			return
		}
	}
	logs.Warn("电脑玩家步数用完", zap.String("gameID", e.state.ID), zap.Int("maxSteps", m.cfg.MaxAISteps))
}

// aiActor 调用方持有 e.mu
func aiActor(e *gameEntry) (string, []dto.ActionDescriptor, bool) {
	if e.deleted {
		return "", nil, false
	}
	actor, actions := engine.AvailableActions(e.state)
	if actor == "" {
		return "", nil, false
	}
	p, err := e.state.Player(actor)
	if err != nil || !p.IsAI() {
		return "", nil, false
	}
	return actor, actions, true
}

func (m *GameManager) aiToMove(e *gameEntry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, _, ok := aiActor(e)
	return ok
}

// aiStep 替电脑玩家走一步，返回 false 表示不该再继续
func (m *GameManager) aiStep(ctx context.Context, e *gameEntry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	actor, actions, ok := aiActor(e)
	if !ok {
		return false
	}
	g := e.state
	action, reason := m.bot(e, actor).Decide(g, actor, actions)
	res := engine.Execute(g, actor, action)
	if !res.Success {
		logs.Warn("电脑玩家动作被拒绝", zap.String("gameID", g.ID), zap.String("playerID", actor),
			zap.Any("action", dto.EncodeAction(action)), zap.String("error", res.Error))
		return false
	}
	logs.Debug("电脑玩家行动", zap.String("gameID", g.ID), zap.String("playerID", actor),
		zap.Any("action", dto.EncodeAction(action)), zap.String("reason", reason))
	e.lastAction = m.now()
	m.commit(ctx, e, &res)
	return true
}
