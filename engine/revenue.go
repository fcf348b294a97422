package engine

import (
	"go-tycoon/dto"
	"go-tycoon/entities"
)

const revenuePerCity = 20

// TrainRevenue 简化的载客模型：城市数（不超过地图城市总数）× 20 × 当前阶段
func TrainRevenue(t *entities.Train, phase, boardCities int) int {
	if t.Rusted {
		return 0
	}
	return min(t.Cities, boardCities) * revenuePerCity * phase
}

// CompanyRevenue 公司所有未生锈火车的收益之和
func CompanyRevenue(g *entities.GameState, c *entities.Company) int {
	phase := g.TrainDepot.CurrentPhase
	cities := len(g.Board.Cities)
	total := 0
	for _, t := range g.TrainDepot.OwnedBy(c.ID) {
		total += TrainRevenue(t, phase, cities)
	}
	return total
}

// DividendOptions 三种分红方式的预估结果
func DividendOptions(revenue int) []dto.DividendOption {
	half := revenue / 2
	return []dto.DividendOption{
		{Policy: dto.DividendFull, PerShare: revenue / entities.TotalShares, StockEffect: "up"},
		{Policy: dto.DividendHalf, PerShare: half / entities.TotalShares, ToTreasury: revenue - half, StockEffect: "none"},
		{Policy: dto.DividendWithhold, ToTreasury: revenue, StockEffect: "down"},
	}
}

// payDividend 银行按每股分红付给持股玩家，IPO 和市场池里的股份不分红
func payDividend(g *entities.GameState, c *entities.Company, policy dto.DividendPolicy, revenue int) (perShare, toTreasury, paid int) {
	s, err := g.StockMarket.Stock(c.ID)
	if err != nil {
		return 0, 0, 0
	}
	payPlayers := func(amount int) int {
		perShare = amount / entities.TotalShares
		total := 0
		for _, pid := range g.PlayerOrder {
			if n := s.SharesOf(pid); n > 0 && perShare > 0 {
				g.BankPaysPlayer(g.Players[pid], perShare*n)
				total += perShare * n
			}
		}
		return total
	}

	switch policy.Normalize() {
	case dto.DividendFull:
		paid = payPlayers(revenue)
		c.MovePriceUp()
	case dto.DividendHalf:
		half := revenue / 2
		paid = payPlayers(half)
		toTreasury = revenue - half
		g.BankPaysCompany(c, toTreasury)
	case dto.DividendWithhold:
		toTreasury = revenue
		g.BankPaysCompany(c, toTreasury)
		c.MovePriceDown()
	}
	return perShare, toTreasury, paid
}
