// Package ai 规则型电脑玩家，只从引擎给出的合法动作里挑选
package ai

import (
	"fmt"
	"sort"
	"time"

	"golang.org/x/exp/rand"

	"go-tycoon/dto"
	"go-tycoon/entities"
)

// Player 电脑玩家。返回的动作来自 actions，第二个返回值是决策理由。
type Player interface {
	Decide(g *entities.GameState, playerID string, actions []dto.ActionDescriptor) (dto.Action, string)
}

type RuleBasedBot struct {
	rng            *rand.Rand
	aggressiveness float64
}

func NewRuleBasedBot(seed uint64, aggressiveness float64) *RuleBasedBot {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &RuleBasedBot{
		rng:            rand.New(rand.NewSource(seed)),
		aggressiveness: min(1, max(0, aggressiveness)),
	}
}

func (b *RuleBasedBot) Decide(g *entities.GameState, playerID string, actions []dto.ActionDescriptor) (dto.Action, string) {
	if len(actions) == 0 {
		return dto.Pass{}, "没有可选动作"
	}
	var (
		desc   dto.ActionDescriptor
		reason string
	)
	switch g.Phase {
	case entities.PhaseStockRound:
		desc, reason = b.stockAction(g, playerID, actions)
	default:
		desc, reason = b.operatingAction(g, actions)
	}
	action, err := desc.Action()
	if err != nil {
		return dto.Pass{}, err.Error()
	}
	return action, reason
}

func byType(actions []dto.ActionDescriptor, t dto.ActionType) []dto.ActionDescriptor {
	var out []dto.ActionDescriptor
	for _, a := range actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}

func (b *RuleBasedBot) stockAction(g *entities.GameState, playerID string, actions []dto.ActionDescriptor) (dto.ActionDescriptor, string) {
	p, err := g.Player(playerID)
	if err != nil {
		return passOf(actions), "找不到玩家，pass"
	}

	presidencies := 0
	for _, c := range g.Companies {
		if c.PresidentID == playerID {
			presidencies++
		}
	}
	if starts := byType(actions, dto.ActionStartCompany); len(starts) > 0 && presidencies < 2 {
		if best, ok := b.bestStart(starts, p.Cash); ok {
			return best, fmt.Sprintf("开设公司争取总裁位，现金 ¥%d", p.Cash)
		}
	}

	buys := append(byType(actions, dto.ActionBuyIPO), byType(actions, dto.ActionBuyMarket)...)
	if best, ok := b.bestBuy(g, playerID, buys, p.Cash); ok {
		return best, fmt.Sprintf("买入 %s，买后现金 ¥%d", best.CompanyID, p.Cash-best.Price)
	}

	if sells := byType(actions, dto.ActionSell); len(sells) > 0 && p.Cash < 100 {
		return bestSell(g, playerID, sells), fmt.Sprintf("现金只剩 ¥%d，卖股补充流动性", p.Cash)
	}
	return passOf(actions), "没有合适的动作，pass"
}

func passOf(actions []dto.ActionDescriptor) dto.ActionDescriptor {
	if passes := byType(actions, dto.ActionPass); len(passes) > 0 {
		return passes[0]
	}
	return dto.ActionDescriptor{Type: dto.ActionPass}
}

// bestStart 优先 75-85 的面值，花费不超过现金的 70%
func (b *RuleBasedBot) bestStart(starts []dto.ActionDescriptor, cash int) (dto.ActionDescriptor, bool) {
	affordable := filter(starts, func(a dto.ActionDescriptor) bool { return float64(a.Cost) <= float64(cash)*0.7 })
	if len(affordable) == 0 {
		affordable = filter(starts, func(a dto.ActionDescriptor) bool { return a.Cost <= cash })
	}
	if len(affordable) == 0 {
		return dto.ActionDescriptor{}, false
	}
	best, bestScore := affordable[0], -1.0
	for _, a := range affordable {
		if s := b.parScore(a.ParValue); s > bestScore {
			best, bestScore = a, s
		}
	}
	return best, true
}

func (b *RuleBasedBot) parScore(par int) float64 {
	switch {
	case par >= 75 && par <= 85:
		return 10
	case par >= 70 && par <= 90:
		return 8
	}
	return 5 + b.aggressiveness*float64(par)/100
}

type scored struct {
	action dto.ActionDescriptor
	score  float64
}

// bestBuy 给每个可买的股票打分，70% 选最高分，其余在前三名里随机
func (b *RuleBasedBot) bestBuy(g *entities.GameState, playerID string, buys []dto.ActionDescriptor, cash int) (dto.ActionDescriptor, bool) {
	var candidates []scored
	for _, a := range buys {
		c, err := g.Company(a.CompanyID)
		if err != nil || a.Price > cash {
			continue
		}
		score := scoreCompany(g, c, playerID, a.Type == dto.ActionBuyIPO)
		switch {
		case float64(a.Price) > float64(cash)*0.8:
			score *= 0.7
		case float64(a.Price) > float64(cash)*0.5:
			score *= 0.9
		}
		candidates = append(candidates, scored{action: a, score: score})
	}
	if len(candidates) == 0 {
		return dto.ActionDescriptor{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })
	top := candidates[:min(3, len(candidates))]
	if b.rng.Float64() < 0.7 {
		return top[0].action, true
	}
	return top[b.rng.Intn(len(top))].action, true
}

func scoreCompany(g *entities.GameState, c *entities.Company, playerID string, fromIPO bool) float64 {
	score := 50.0
	if c.Treasury > 200 {
		score += 10
	}
	if c.Treasury > 400 {
		score += 10
	}
	if len(c.Trains) > 0 {
		score += 15
	} else {
		score -= 10
	}
	if price := c.StockPrice(); price > 150 {
		score += 15
	} else if price > 100 {
		score += 5
	}
	if s, err := g.StockMarket.Stock(c.ID); err == nil && s.SharesOf(playerID) > 0 {
		score += 5
	}
	if fromIPO {
		score += 5
	}
	return score
}

// bestSell 先卖自己不控制的公司，每次一股
func bestSell(g *entities.GameState, playerID string, sells []dto.ActionDescriptor) dto.ActionDescriptor {
	for _, a := range sells {
		if c, err := g.Company(a.CompanyID); err == nil && c.PresidentID != playerID && a.Count == 1 {
			return a
		}
	}
	return sells[0]
}

func (b *RuleBasedBot) operatingAction(g *entities.GameState, actions []dto.ActionDescriptor) (dto.ActionDescriptor, string) {
	c, err := g.Company(g.Turn.CompanyID)
	if err != nil {
		return actions[0], "找不到运营公司"
	}
	trains := byType(actions, dto.ActionBuyTrain)

	if g.Phase == entities.PhaseEmergencyTrainBuy && len(trains) > 0 {
		return trains[0], fmt.Sprintf("%s 没有火车，总裁出资紧急购车", c.Name)
	}
	if len(c.Trains) == 0 && len(trains) > 0 {
		best := trains[0]
		for _, t := range trains[1:] {
			if cities(t) > cities(best) {
				best = t
			}
		}
		return best, fmt.Sprintf("%s 没有火车，必须先买", c.Name)
	}

	if runs := byType(actions, dto.ActionRunTrains); len(runs) > 0 {
		policy, why := chooseDividend(g, c)
		for _, r := range runs {
			if r.Dividend == policy {
				return r, fmt.Sprintf("%s 运行火车，%s", c.Name, why)
			}
		}
		return runs[0], fmt.Sprintf("%s 运行火车", c.Name)
	}

	if upgrade, ok := maybeUpgrade(g, c, trains); ok {
		return upgrade, fmt.Sprintf("%s 升级火车", c.Name)
	}

	if tokens := byType(actions, dto.ActionPlaceToken); len(tokens) > 0 {
		best := tokens[0]
		bestRevenue := -1
		for _, t := range tokens {
			if city, err := g.Board.City(t.City); err == nil && city.RevenueAt(g.CurrentPhaseNumber()) > bestRevenue {
				best, bestRevenue = t, city.RevenueAt(g.CurrentPhaseNumber())
			}
		}
		return best, fmt.Sprintf("在 %s 放置车站", best.City)
	}

	if done := byType(actions, dto.ActionDone); len(done) > 0 {
		return done[0], fmt.Sprintf("%s 结束运营", c.Name)
	}
	return actions[0], "只剩一个选择"
}

func cities(a dto.ActionDescriptor) int {
	t, err := entities.ParseTrainType(a.TrainType)
	if err != nil {
		return 0
	}
	def, _ := entities.TrainDefOf(t)
	return def.Cities
}

// maybeUpgrade 有更长的火车且资金是车价的 1.5 倍以上才买
func maybeUpgrade(g *entities.GameState, c *entities.Company, trains []dto.ActionDescriptor) (dto.ActionDescriptor, bool) {
	current := 0
	for _, t := range g.TrainDepot.OwnedBy(c.ID) {
		current = max(current, t.Cities)
	}
	for _, t := range trains {
		if cities(t) > current && float64(c.Treasury) >= float64(t.Cost)*1.5 {
			return t, true
		}
	}
	return dto.ActionDescriptor{}, false
}

func chooseDividend(g *entities.GameState, c *entities.Company) (dto.DividendPolicy, string) {
	if c.Treasury < 150 {
		return dto.DividendWithhold, "资金不足留存收益"
	}
	if next, ok := g.TrainDepot.CheapestAvailable(); ok && c.Treasury < next.Cost && len(c.Trains) < entities.TrainLimit(g.CurrentPhaseNumber()) {
		return dto.DividendWithhold, "为下一辆火车留存收益"
	}
	return dto.DividendFull, "全额分红"
}

func filter(in []dto.ActionDescriptor, keep func(dto.ActionDescriptor) bool) []dto.ActionDescriptor {
	var out []dto.ActionDescriptor
	for _, a := range in {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
