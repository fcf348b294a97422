package entities

type CompanyStatus string

const (
	CompanyUnstarted    CompanyStatus = "unstarted"
	CompanyActive       CompanyStatus = "active"
	CompanyReceivership CompanyStatus = "receivership"
	CompanyClosed       CompanyStatus = "closed"
)

type Company struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Color             string        `json:"color"`
	Status            CompanyStatus `json:"status"`
	PresidentID       string        `json:"presidentId"`
	Treasury          int           `json:"treasury"`
	ParValue          int           `json:"parValue"`
	PriceIndex        int           `json:"stockPriceIndex"`
	Trains            []string      `json:"trains"`
	TokensRemaining   int           `json:"tokensRemaining"`
	OperatedThisRound bool          `json:"operatedThisRound"`
	FoundedSeq        int           `json:"foundedSeq"` // 开公司的先后顺序，0 表示未开
}

func NewCompany(def CompanyDef) *Company {
	return &Company{
		ID:              def.ID,
		Name:            def.Name,
		Color:           def.Color,
		Status:          CompanyUnstarted,
		TokensRemaining: TokensPerCompany,
		Trains:          []string{},
	}
}

func (c *Company) StockPrice() int {
	if c.PriceIndex < 0 || c.PriceIndex >= len(StockPrices) {
		return 0
	}
	return StockPrices[c.PriceIndex]
}

func (c *Company) IsActive() bool {
	return c.Status == CompanyActive
}

// IsTradable 市场上还能交易（已开且未关闭）
func (c *Company) IsTradable() bool {
	return c.Status == CompanyActive || c.Status == CompanyReceivership
}

func (c *Company) MovePriceUp() {
	if c.PriceIndex < len(StockPrices)-1 {
		c.PriceIndex++
	}
}

// MovePriceDown 返回 false 表示已经跌到 0
func (c *Company) MovePriceDown() bool {
	if c.PriceIndex > 0 {
		c.PriceIndex--
	}
	return c.PriceIndex > 0
}

// NextTokenCost 第一个车站免费，之后每个 40
func (c *Company) NextTokenCost() int {
	if c.TokensRemaining == TokensPerCompany {
		return 0
	}
	return TokenCost
}

func (c *Company) HasTrain(trainID string) bool {
	for _, id := range c.Trains {
		if id == trainID {
			return true
		}
	}
	return false
}

func (c *Company) RemoveTrain(trainID string) {
	kept := c.Trains[:0]
	for _, id := range c.Trains {
		if id != trainID {
			kept = append(kept, id)
		}
	}
	c.Trains = kept
}
