package engine

import (
	"go-tycoon/entities"
	"go-tycoon/turn"
)

// 轮次切换：股票轮 -> 若干运营轮 -> 股票轮

func endStockRound(g *entities.GameState) {
	g.AddLog("stock_round_end", map[string]any{"round_number": g.StockRoundNumber})
	turn.AssignPriorityDeal(g)

	if len(g.ActiveCompanies()) == 0 {
		// 没有可运营的公司，直接进入下一个股票轮
		startStockRound(g)
		return
	}
	g.OperatingRoundsRemaining = entities.OperatingRoundsFor(g.TrainDepot.CurrentPhase)
	g.OperatingRoundNumber = 0
	startOperatingRound(g)
}

func startStockRound(g *entities.GameState) {
	g.Phase = entities.PhaseStockRound
	g.StockRoundNumber++
	g.OperatingRoundNumber = 0
	g.OperatingRoundsRemaining = entities.OperatingRoundsFor(g.TrainDepot.CurrentPhase)
	g.PassedPlayers = make(map[string]bool)
	g.LastActorID = ""
	g.OperatingOrder = nil
	g.Turn = entities.OperatingTurn{}
	turn.ApplyPriorityOrder(g)
	g.AddLog("stock_round_start", map[string]any{
		"round_number": g.StockRoundNumber,
		"player_order": append([]string(nil), g.PlayerOrder...),
	})
}

func startOperatingRound(g *entities.GameState) {
	g.Phase = entities.PhaseOperatingRound
	g.OperatingRoundNumber++
	g.OperatingRoundsRemaining--
	for _, c := range g.Companies {
		c.OperatedThisRound = false
	}
	g.OperatingOrder = turn.ComputeOperatingOrder(g)
	g.AddLog("operating_round_start", map[string]any{
		"round_number": g.OperatingRoundNumber,
		"order":        append([]string(nil), g.OperatingOrder...),
	})
	beginCompanyTurn(g)
}

func beginCompanyTurn(g *entities.GameState) {
	if turn.OperatingRoundOver(g) {
		endOperatingRound(g)
		return
	}
	c, _ := turn.OperatingCompany(g)
	g.Turn = entities.OperatingTurn{CompanyID: c.ID}
}

func finishCompanyTurn(g *entities.GameState, c *entities.Company) {
	c.OperatedThisRound = true
	g.Phase = entities.PhaseOperatingRound
	beginCompanyTurn(g)
}

func endOperatingRound(g *entities.GameState) {
	g.AddLog("operating_round_end", map[string]any{"round_number": g.OperatingRoundNumber})
	g.Turn = entities.OperatingTurn{}
	if g.OperatingRoundsRemaining > 0 {
		startOperatingRound(g)
		return
	}
	startStockRound(g)
}

// closeCompany 股价跌到 0 的公司关闭，不再运营也不能交易，火车退回银行
func closeCompany(g *entities.GameState, c *entities.Company) {
	c.Status = entities.CompanyClosed
	former := c.PresidentID
	c.PresidentID = ""

	returned := make([]string, 0, len(c.Trains))
	for _, tr := range g.TrainDepot.Trains {
		if c.HasTrain(tr.ID) && !tr.Rusted {
			tr.OwnerID = ""
			returned = append(returned, tr.ID)
		}
	}
	c.Trains = nil
	g.AddLog("company_closed", map[string]any{
		"company_id":       c.ID,
		"former_president": former,
		"trains_returned":  returned,
	})
}
