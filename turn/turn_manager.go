// Package turn 负责轮次顺序和动作合法性，全部是对 GameState 的只读或顺序性操作
package turn

import (
	"sort"

	"go-tycoon/entities"
)

// CurrentActor 当前有权行动的玩家：股票轮是座位上的玩家，运营轮是运营公司的总裁
func CurrentActor(g *entities.GameState) (string, bool) {
	switch g.Phase {
	case entities.PhaseStockRound:
		id := g.CurrentPlayerID()
		return id, id != ""
	case entities.PhaseOperatingRound, entities.PhaseEmergencyTrainBuy:
		c, ok := OperatingCompany(g)
		if !ok || c.PresidentID == "" {
			return "", false
		}
		return c.PresidentID, true
	}
	return "", false
}

// AdvanceStockTurn 顺时针找下一个没有 pass 的玩家，返回 false 表示所有人都 pass 了
func AdvanceStockTurn(g *entities.GameState) bool {
	n := len(g.PlayerOrder)
	for i := 1; i <= n; i++ {
		idx := (g.CurrentPlayerIndex + i) % n
		if !g.PassedPlayers[g.PlayerOrder[idx]] {
			g.CurrentPlayerIndex = idx
			return true
		}
	}
	return false
}

func AllPassed(g *entities.GameState) bool {
	for _, id := range g.PlayerOrder {
		if !g.PassedPlayers[id] {
			return false
		}
	}
	return len(g.PlayerOrder) > 0
}

// ComputeOperatingOrder 活跃公司按股价从高到低，同价按开公司先后
func ComputeOperatingOrder(g *entities.GameState) []string {
	active := g.ActiveCompanies()
	sort.SliceStable(active, func(i, j int) bool {
		pi, pj := active[i].StockPrice(), active[j].StockPrice()
		if pi != pj {
			return pi > pj
		}
		return active[i].FoundedSeq < active[j].FoundedSeq
	})
	order := make([]string, 0, len(active))
	for _, c := range active {
		order = append(order, c.ID)
	}
	return order
}

// OperatingCompany 运营顺序里第一个还没运营的活跃公司
func OperatingCompany(g *entities.GameState) (*entities.Company, bool) {
	for _, id := range g.OperatingOrder {
		c, ok := g.Companies[id]
		if ok && c.IsActive() && !c.OperatedThisRound {
			return c, true
		}
	}
	return nil, false
}

// OperatingRoundOver 没有待运营的公司
func OperatingRoundOver(g *entities.GameState) bool {
	_, ok := OperatingCompany(g)
	return !ok
}

// AssignPriorityDeal 优先权交给最后一个非 pass 玩家的下家，本轮没人行动则保持不变
func AssignPriorityDeal(g *entities.GameState) {
	if g.LastActorID == "" || len(g.PlayerOrder) == 0 {
		return
	}
	idx := indexOf(g.PlayerOrder, g.LastActorID)
	if idx < 0 {
		return
	}
	next := g.PlayerOrder[(idx+1)%len(g.PlayerOrder)]
	for id, p := range g.Players {
		p.PriorityDeal = id == next
	}
}

// ApplyPriorityOrder 新股票轮开始：持有优先权的玩家排到第一位
func ApplyPriorityOrder(g *entities.GameState) {
	g.CurrentPlayerIndex = 0
	idx := -1
	for i, id := range g.PlayerOrder {
		if g.Players[id].PriorityDeal {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return
	}
	order := make([]string, 0, len(g.PlayerOrder))
	order = append(order, g.PlayerOrder[idx:]...)
	order = append(order, g.PlayerOrder[:idx]...)
	g.PlayerOrder = order
}

func indexOf(list []string, target string) int {
	for i, v := range list {
		if v == target {
			return i
		}
	}
	return -1
}
