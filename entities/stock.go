package entities

import "fmt"

// Stock 单个公司的股份账本：IPO 池 + 市场池 + 玩家持股
type Stock struct {
	CompanyID    string         `json:"companyId"`
	IPOShares    int            `json:"ipoShares"`
	MarketShares int            `json:"marketShares"`
	PlayerShares map[string]int `json:"playerShares"`
}

func (s *Stock) PlayerTotal() int {
	total := 0
	for _, n := range s.PlayerShares {
		total += n
	}
	return total
}

// Total 永远等于 TotalShares
func (s *Stock) Total() int {
	return s.IPOShares + s.MarketShares + s.PlayerTotal()
}

func (s *Stock) SharesOf(playerID string) int {
	return s.PlayerShares[playerID]
}

type StockMarket struct {
	Stocks map[string]*Stock `json:"stocks"`
}

func NewStockMarket(companyIDs []string) *StockMarket {
	m := &StockMarket{Stocks: make(map[string]*Stock, len(companyIDs))}
	for _, id := range companyIDs {
		m.Stocks[id] = &Stock{
			CompanyID:    id,
			IPOShares:    TotalShares,
			PlayerShares: make(map[string]int),
		}
	}
	return m
}

func (m *StockMarket) Stock(companyID string) (*Stock, error) {
	s, ok := m.Stocks[companyID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStockNotFound, companyID)
	}
	return s, nil
}

// BuyFromIPO 从 IPO 池转 n 股给玩家，同时更新玩家持股
func (m *StockMarket) BuyFromIPO(companyID string, p *Player, n int) error {
	s, err := m.Stock(companyID)
	if err != nil {
		return err
	}
	if n <= 0 || s.IPOShares < n {
		return fmt.Errorf("IPO 股份不足: %s 剩余 %d, 需要 %d", companyID, s.IPOShares, n)
	}
	s.IPOShares -= n
	s.PlayerShares[p.ID] += n
	p.addShares(companyID, n)
	return nil
}

func (m *StockMarket) BuyFromMarket(companyID string, p *Player, n int) error {
	s, err := m.Stock(companyID)
	if err != nil {
		return err
	}
	if n <= 0 || s.MarketShares < n {
		return fmt.Errorf("市场股份不足: %s 剩余 %d, 需要 %d", companyID, s.MarketShares, n)
	}
	s.MarketShares -= n
	s.PlayerShares[p.ID] += n
	p.addShares(companyID, n)
	return nil
}

// SellToMarket 玩家卖出的股份进入市场池
func (m *StockMarket) SellToMarket(companyID string, p *Player, n int) error {
	s, err := m.Stock(companyID)
	if err != nil {
		return err
	}
	if n <= 0 || s.PlayerShares[p.ID] < n {
		return fmt.Errorf("玩家 %s 持有 %s 不足 %d 股", p.ID, companyID, n)
	}
	s.PlayerShares[p.ID] -= n
	if s.PlayerShares[p.ID] == 0 {
		delete(s.PlayerShares, p.ID)
	}
	s.MarketShares += n
	p.removeShares(companyID, n)
	return nil
}
