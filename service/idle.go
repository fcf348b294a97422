package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-tycoon/dto"
	"go-tycoon/engine"
	"go-tycoon/entities"
	"go-tycoon/logs"
)

// RunIdleSweeper 定期替超时未行动的玩家 pass 或结束运营，ctx 取消后退出
func (m *GameManager) RunIdleSweeper(ctx context.Context) {
	interval := m.cfg.SweepInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.SweepIdle(ctx); n > 0 {
				logs.Info("处理超时玩家", zap.Int("games", n))
			}
		}
	}
}

// SweepIdle 扫描一遍内存中的游戏，返回替玩家行动过的游戏数
func (m *GameManager) SweepIdle(ctx context.Context) int {
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}
	m.mu.Lock()
	entries := make([]*gameEntry, 0, len(m.games))
	for _, e := range m.games {
		entries = append(entries, e)
	}
	m.mu.Unlock()

	swept := 0
	for _, e := range entries {
		if m.sweepOne(ctx, e) {
			swept++
		}
	}
	return swept
}

func (m *GameManager) sweepOne(ctx context.Context, e *gameEntry) bool {
	if !m.idleStep(ctx, e) {
		return false
	}
	m.runAI(ctx, e)
	return true
}

// idleStep 持锁替超时的行动方走一步
func (m *GameManager) idleStep(ctx context.Context, e *gameEntry) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.state
	if e.deleted || m.now().Sub(e.lastAction) < m.cfg.IdleTimeout {
		return false
	}
	actor, actions := engine.AvailableActions(g)
	if actor == "" {
		return false
	}

	res, ok := idleAction(g, actor, actions)
	if !ok {
		logs.Warn("超时玩家没有可用的默认动作", zap.String("gameID", g.ID), zap.String("playerID", actor))
		return false
	}
	logs.Info("超时自动行动", zap.String("gameID", g.ID), zap.String("playerID", actor), zap.String("phase", string(g.Phase)))
	e.lastAction = m.now()
	m.commit(ctx, e, &res)
	return true
}

// idleAction 股票轮 pass，运营轮 done，done 被拒绝时先买最便宜的火车
func idleAction(g *entities.GameState, actor string, actions []dto.ActionDescriptor) (dto.ActionResult, bool) {
	if g.Phase == entities.PhaseStockRound {
		res := engine.Execute(g, actor, dto.Pass{})
		return res, res.Success
	}

	if g.Phase == entities.PhaseOperatingRound {
		if res := engine.Execute(g, actor, dto.Done{}); res.Success {
			return res, true
		}
	}

	cheapest, ok := cheapestTrain(actions)
	if !ok {
		return dto.ActionResult{}, false
	}
	companyID := g.Turn.CompanyID
	res := engine.Execute(g, actor, dto.BuyTrain{TrainType: cheapest.TrainType})
	if !res.Success {
		return res, false
	}
	if g.Phase == entities.PhaseOperatingRound && g.Turn.CompanyID == companyID {
		if done := engine.Execute(g, actor, dto.Done{}); done.Success {
			return done, true
		}
	}
	return res, true
}

func cheapestTrain(actions []dto.ActionDescriptor) (dto.ActionDescriptor, bool) {
	var (
		best  dto.ActionDescriptor
		found bool
	)
	for _, a := range actions {
		if a.Type != dto.ActionBuyTrain {
			continue
		}
		if !found || a.Cost < best.Cost {
			best, found = a, true
		}
	}
	return best, found
}
