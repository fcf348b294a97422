package entities

type PlayerKind string

const (
	PlayerHuman       PlayerKind = "human"
	PlayerRuleBasedAI PlayerKind = "rule_based_ai"
	PlayerRemoteAI    PlayerKind = "remote_ai"
)

type Player struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Kind         PlayerKind     `json:"kind"`
	Cash         int            `json:"cash"`
	Stocks       map[string]int `json:"stocks"`
	PriorityDeal bool           `json:"priorityDeal"`
}

func NewPlayer(id, name string, kind PlayerKind) *Player {
	if kind == "" {
		kind = PlayerHuman
	}
	if name == "" {
		name = id
	}
	return &Player{
		ID:     id,
		Name:   name,
		Kind:   kind,
		Stocks: make(map[string]int),
	}
}

func (p *Player) Shares(companyID string) int {
	return p.Stocks[companyID]
}

func (p *Player) IsAI() bool {
	return p.Kind == PlayerRuleBasedAI
}

func (p *Player) CanAfford(amount int) bool {
	return p.Cash >= amount
}

// NetWorth 现金 + 持股市值
func (p *Player) NetWorth(prices map[string]int) int {
	total := p.Cash
	for companyID, n := range p.Stocks {
		total += n * prices[companyID]
	}
	return total
}

func (p *Player) addShares(companyID string, n int) {
	if p.Stocks == nil {
		p.Stocks = make(map[string]int)
	}
	p.Stocks[companyID] += n
}

func (p *Player) removeShares(companyID string, n int) {
	p.Stocks[companyID] -= n
	if p.Stocks[companyID] <= 0 {
		delete(p.Stocks, companyID)
	}
}
