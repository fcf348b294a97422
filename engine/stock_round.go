package engine

import (
	"fmt"

	"go-tycoon/dto"
	"go-tycoon/entities"
	"go-tycoon/turn"
)

func stockActions(g *entities.GameState, playerID string) []dto.ActionDescriptor {
	p, err := g.Player(playerID)
	if err != nil {
		return nil
	}
	var cands []candidate
	for _, id := range g.CompanyOrder {
		c := g.Companies[id]
		switch {
		case c.Status == entities.CompanyUnstarted:
			for _, par := range entities.ParValues {
				cands = append(cands, candidate{
					action: dto.StartCompany{CompanyID: id, ParValue: par},
					desc: dto.ActionDescriptor{
						Type:        dto.ActionStartCompany,
						CompanyID:   id,
						ParValue:    par,
						Cost:        par * entities.PresidentShares,
						Description: fmt.Sprintf("以 ¥%d 面值开设 %s", par, c.Name),
					},
				})
			}
		case c.IsTradable():
			price := c.StockPrice()
			cands = append(cands,
				candidate{
					action: dto.BuyIPO{CompanyID: id},
					desc: dto.ActionDescriptor{
						Type:        dto.ActionBuyIPO,
						CompanyID:   id,
						Price:       price,
						Description: fmt.Sprintf("从 IPO 以 ¥%d 买入 1 股 %s", price, id),
					},
				},
				candidate{
					action: dto.BuyMarket{CompanyID: id},
					desc: dto.ActionDescriptor{
						Type:        dto.ActionBuyMarket,
						CompanyID:   id,
						Price:       price,
						Description: fmt.Sprintf("从市场以 ¥%d 买入 1 股 %s", price, id),
					},
				},
			)
			for n := 1; n <= p.Shares(id); n++ {
				cands = append(cands, candidate{
					action: dto.Sell{CompanyID: id, Count: n},
					desc: dto.ActionDescriptor{
						Type:        dto.ActionSell,
						CompanyID:   id,
						Count:       n,
						Price:       price,
						Description: fmt.Sprintf("卖出 %d 股 %s, 得 ¥%d", n, id, price*n),
					},
				})
			}
		}
	}
	cands = append(cands, candidate{
		action: dto.Pass{},
		desc:   dto.ActionDescriptor{Type: dto.ActionPass, Description: "本轮 pass"},
	})
	return keep(g, playerID, cands)
}

func executeStock(g *entities.GameState, playerID string, action dto.Action) (dto.ActionResult, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return dto.ActionResult{}, err
	}
	switch a := action.(type) {
	case dto.StartCompany:
		return startCompany(g, p, a)
	case dto.BuyIPO:
		return buyShare(g, p, a.CompanyID, true)
	case dto.BuyMarket:
		return buyShare(g, p, a.CompanyID, false)
	case dto.Sell:
		return sellShares(g, p, a)
	case dto.Pass:
		return pass(g, p), nil
	}
	return dto.ActionResult{}, entities.Reject(entities.CodeWrongPhase, "股票轮不能执行 %s", action.Type())
}

func startCompany(g *entities.GameState, p *entities.Player, a dto.StartCompany) (dto.ActionResult, error) {
	c, err := g.Company(a.CompanyID)
	if err != nil {
		return dto.ActionResult{}, err
	}
	if err := g.StockMarket.BuyFromIPO(c.ID, p, entities.PresidentShares); err != nil {
		return dto.ActionResult{}, err
	}
	cost := a.ParValue * entities.PresidentShares
	// 总裁证书的钱进公司，其余 8 股的启动资金由银行垫付，公司资金 = 10 × 面值
	g.PlayerPaysCompany(p, c, cost)
	g.BankPaysCompany(c, a.ParValue*(entities.TotalShares-entities.PresidentShares))

	c.Status = entities.CompanyActive
	c.PresidentID = p.ID
	c.ParValue = a.ParValue
	c.PriceIndex = entities.PriceIndexOf(a.ParValue)
	g.FoundedCount++
	c.FoundedSeq = g.FoundedCount

	g.AddLog("start_company", map[string]any{
		"player_id":  p.ID,
		"company_id": c.ID,
		"par_value":  a.ParValue,
		"cost":       cost,
		"treasury":   c.Treasury,
	})
	afterStockAction(g, p.ID)
	return dto.Succeed(fmt.Sprintf("%s 以 ¥%d 开设了 %s", p.Name, a.ParValue, c.Name), map[string]interface{}{
		"company_id": c.ID,
		"treasury":   c.Treasury,
		"cost":       cost,
	}), nil
}

func buyShare(g *entities.GameState, p *entities.Player, companyID string, fromIPO bool) (dto.ActionResult, error) {
	c, err := g.Company(companyID)
	if err != nil {
		return dto.ActionResult{}, err
	}
	price := c.StockPrice()
	source := "market"
	if fromIPO {
		source = "ipo"
		if err := g.StockMarket.BuyFromIPO(c.ID, p, 1); err != nil {
			return dto.ActionResult{}, err
		}
		g.PlayerPaysCompany(p, c, price)
	} else {
		if err := g.StockMarket.BuyFromMarket(c.ID, p, 1); err != nil {
			return dto.ActionResult{}, err
		}
		g.PlayerPaysBank(p, price)
	}
	eventType := "buy_" + source
	g.AddLog(eventType, map[string]any{
		"player_id":  p.ID,
		"company_id": c.ID,
		"price":      price,
	})
	g.UpdatePresident(c.ID)
	if c.Status == entities.CompanyReceivership && c.PresidentID != "" {
		c.Status = entities.CompanyActive
		g.AddLog("company_restored", map[string]any{"company_id": c.ID, "president_id": c.PresidentID})
	}
	afterStockAction(g, p.ID)
	return dto.Succeed(fmt.Sprintf("%s 以 ¥%d 买入 1 股 %s", p.Name, price, c.ID), map[string]interface{}{
		"company_id": c.ID,
		"price":      price,
		"source":     source,
	}), nil
}

func sellShares(g *entities.GameState, p *entities.Player, a dto.Sell) (dto.ActionResult, error) {
	c, err := g.Company(a.CompanyID)
	if err != nil {
		return dto.ActionResult{}, err
	}
	price := c.StockPrice()
	total := price * a.Count
	if err := g.StockMarket.SellToMarket(c.ID, p, a.Count); err != nil {
		return dto.ActionResult{}, err
	}
	g.BankPaysPlayer(p, total)
	for i := 0; i < a.Count; i++ {
		c.MovePriceDown()
	}
	g.AddLog("sell", map[string]any{
		"player_id":  p.ID,
		"company_id": c.ID,
		"count":      a.Count,
		"price":      price,
		"total":      total,
		"new_price":  c.StockPrice(),
	})
	g.UpdatePresident(c.ID)
	if c.PriceIndex == 0 {
		closeCompany(g, c)
	}
	afterStockAction(g, p.ID)
	return dto.Succeed(fmt.Sprintf("%s 卖出 %d 股 %s, 得 ¥%d", p.Name, a.Count, c.ID, total), map[string]interface{}{
		"company_id": c.ID,
		"total":      total,
		"new_price":  c.StockPrice(),
	}), nil
}

func pass(g *entities.GameState, p *entities.Player) dto.ActionResult {
	g.PassedPlayers[p.ID] = true
	g.AddLog("pass", map[string]any{"player_id": p.ID})
	if turn.AllPassed(g) {
		endStockRound(g)
		return dto.Succeed(fmt.Sprintf("%s pass, 股票轮结束", p.Name), map[string]interface{}{"round_ended": true})
	}
	turn.AdvanceStockTurn(g)
	return dto.Succeed(fmt.Sprintf("%s pass", p.Name), nil)
}

// afterStockAction 非 pass 动作：清空 pass 记录，轮到下家
func afterStockAction(g *entities.GameState, playerID string) {
	g.PassedPlayers = make(map[string]bool)
	g.LastActorID = playerID
	turn.AdvanceStockTurn(g)
}
