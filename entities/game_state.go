package entities

import (
	"fmt"
	"sort"
	"time"
)

type GamePhase string

const (
	PhaseSetup             GamePhase = "setup"
	PhaseStockRound        GamePhase = "stock_round"
	PhaseOperatingRound    GamePhase = "operating_round"
	PhaseEmergencyTrainBuy GamePhase = "emergency_train_buy"
	PhaseGameEnd           GamePhase = "game_end"
)

// OperatingTurn 当前运营公司本回合已经做过的事情
type OperatingTurn struct {
	CompanyID   string `json:"companyId"`
	TilesLaid   int    `json:"tilesLaid"`
	TokenPlaced bool   `json:"tokenPlaced"`
	TrainsRun   bool   `json:"trainsRun"`
}

type GameState struct {
	ID                       string              `json:"id"`
	Name                     string              `json:"name"`
	Phase                    GamePhase           `json:"phase"`
	StockRoundNumber         int                 `json:"stockRoundNumber"`
	OperatingRoundNumber     int                 `json:"operatingRoundNumber"`
	OperatingRoundsRemaining int                 `json:"operatingRoundsRemaining"`
	Players                  map[string]*Player  `json:"players"`
	PlayerOrder              []string            `json:"playerOrder"`
	CurrentPlayerIndex       int                 `json:"currentPlayerIndex"`
	PassedPlayers            map[string]bool     `json:"passedPlayers"`
	LastActorID              string              `json:"lastActorId"` // 本股票轮最后一个非 pass 的玩家
	Companies                map[string]*Company `json:"companies"`
	CompanyOrder             []string            `json:"companyOrder"`
	StockMarket              *StockMarket        `json:"stockMarket"`
	TrainDepot               *TrainDepot         `json:"trainDepot"`
	Board                    *Board              `json:"board"`
	BankCash                 int                 `json:"bankCash"`
	OperatingOrder           []string            `json:"operatingOrder"`
	Turn                     OperatingTurn       `json:"turn"`
	FoundedCount             int                 `json:"foundedCount"`
	GameLog                  []LogEntry          `json:"gameLog"`
	CreatedAt                time.Time           `json:"createdAt"`
	UpdatedAt                time.Time           `json:"updatedAt"`
}

func NewGameState(id string) *GameState {
	now := time.Now()
	return &GameState{
		ID:            id,
		Phase:         PhaseSetup,
		Players:       make(map[string]*Player),
		PassedPlayers: make(map[string]bool),
		Companies:     make(map[string]*Company),
		BankCash:      BankInitialCash,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (g *GameState) AddPlayer(p *Player) error {
	if g.Phase != PhaseSetup {
		return ErrGameAlreadyStarted
	}
	if _, ok := g.Players[p.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, p.ID)
	}
	if len(g.Players) >= MaxPlayers {
		return fmt.Errorf("%w: 已有 %d 人", ErrInvalidPlayerCount, len(g.Players))
	}
	if p.Stocks == nil {
		p.Stocks = make(map[string]int)
	}
	g.Players[p.ID] = p
	g.PlayerOrder = append(g.PlayerOrder, p.ID)
	return nil
}

// Initialize 发钱、建公司、建市场，进入第一个股票轮
func (g *GameState) Initialize() error {
	if g.Phase != PhaseSetup {
		return ErrGameAlreadyStarted
	}
	n := len(g.Players)
	if n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerCount, n)
	}

	g.CompanyOrder = g.CompanyOrder[:0]
	for _, def := range CompanyDefs {
		g.Companies[def.ID] = NewCompany(def)
		g.CompanyOrder = append(g.CompanyOrder, def.ID)
	}
	g.StockMarket = NewStockMarket(g.CompanyOrder)
	g.TrainDepot = NewTrainDepot()
	g.Board = NewBoard()

	cash := StartingCash(n)
	for _, id := range g.PlayerOrder {
		g.BankPaysPlayer(g.Players[id], cash)
	}
	g.Players[g.PlayerOrder[0]].PriorityDeal = true

	g.Phase = PhaseStockRound
	g.StockRoundNumber = 1
	g.OperatingRoundNumber = 0
	g.OperatingRoundsRemaining = OperatingRoundsFor(g.TrainDepot.CurrentPhase)
	g.CurrentPlayerIndex = 0
	g.PassedPlayers = make(map[string]bool)
	g.AddLog("game_start", map[string]any{"player_count": n, "starting_cash": cash})
	g.AddLog("stock_round_start", map[string]any{"round_number": g.StockRoundNumber})
	return nil
}

func (g *GameState) Player(id string) (*Player, error) {
	p, ok := g.Players[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPlayerNotFound, id)
	}
	return p, nil
}

func (g *GameState) Company(id string) (*Company, error) {
	c, ok := g.Companies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, id)
	}
	return c, nil
}

// CurrentPlayerID 股票轮当前玩家
func (g *GameState) CurrentPlayerID() string {
	if len(g.PlayerOrder) == 0 {
		return ""
	}
	return g.PlayerOrder[g.CurrentPlayerIndex%len(g.PlayerOrder)]
}

func (g *GameState) CurrentPhaseNumber() int {
	if g.TrainDepot == nil {
		return 2
	}
	return g.TrainDepot.CurrentPhase
}

// CompaniesByStatus 按定义顺序返回
func (g *GameState) CompaniesByStatus(status CompanyStatus) []*Company {
	var out []*Company
	for _, id := range g.CompanyOrder {
		if c := g.Companies[id]; c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

func (g *GameState) ActiveCompanies() []*Company {
	return g.CompaniesByStatus(CompanyActive)
}

// 资金流转：每一笔都是一方扣款一方入账

func (g *GameState) BankPaysPlayer(p *Player, amount int) {
	g.BankCash -= amount
	p.Cash += amount
}

func (g *GameState) PlayerPaysBank(p *Player, amount int) {
	p.Cash -= amount
	g.BankCash += amount
}

func (g *GameState) PlayerPaysCompany(p *Player, c *Company, amount int) {
	p.Cash -= amount
	c.Treasury += amount
}

func (g *GameState) BankPaysCompany(c *Company, amount int) {
	g.BankCash -= amount
	c.Treasury += amount
}

func (g *GameState) CompanyPaysBank(c *Company, amount int) {
	c.Treasury -= amount
	g.BankCash += amount
}

// TotalCash 银行 + 玩家 + 公司，整局游戏恒等于 BankInitialCash
func (g *GameState) TotalCash() int {
	total := g.BankCash
	for _, p := range g.Players {
		total += p.Cash
	}
	for _, c := range g.Companies {
		total += c.Treasury
	}
	return total
}

func (g *GameState) CertLimit() int {
	return CertLimits[len(g.Players)]
}

// CertificateCount 总裁证书（2 股）算 1 张，多出的每股 1 张；其他玩家每股 1 张
func (g *GameState) CertificateCount(playerID string) int {
	p, ok := g.Players[playerID]
	if !ok {
		return 0
	}
	count := 0
	for companyID, n := range p.Stocks {
		if n <= 0 {
			continue
		}
		if c, ok := g.Companies[companyID]; ok && c.PresidentID == playerID {
			count += 1 + max(0, n-PresidentShares)
		} else {
			count += n
		}
	}
	return count
}

// UpdatePresident 持股严格多于现任总裁且至少 2 股的玩家接任，平手按座位顺序
func (g *GameState) UpdatePresident(companyID string) (string, bool) {
	c, ok := g.Companies[companyID]
	if !ok {
		return "", false
	}
	s, err := g.StockMarket.Stock(companyID)
	if err != nil {
		return "", false
	}
	current := s.SharesOf(c.PresidentID)
	best, bestShares := c.PresidentID, current
	for _, pid := range g.PlayerOrder {
		n := s.SharesOf(pid)
		if n >= PresidentShares && n > bestShares {
			best, bestShares = pid, n
		}
	}
	if best == c.PresidentID {
		return "", false
	}
	old := c.PresidentID
	c.PresidentID = best
	g.AddLog("president_change", map[string]any{
		"company_id": companyID,
		"from":       old,
		"to":         best,
	})
	return best, true
}

func (g *GameState) StockPrices() map[string]int {
	prices := make(map[string]int, len(g.Companies))
	for id, c := range g.Companies {
		prices[id] = c.StockPrice()
	}
	return prices
}

type PlayerScore struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Cash     int    `json:"cash"`
	NetWorth int    `json:"netWorth"`
	Rank     int    `json:"rank"`
}

// Scores 按净资产排名，平手按座位顺序
func (g *GameState) Scores() []PlayerScore {
	prices := g.StockPrices()
	scores := make([]PlayerScore, 0, len(g.PlayerOrder))
	for _, id := range g.PlayerOrder {
		p := g.Players[id]
		scores = append(scores, PlayerScore{
			PlayerID: id,
			Name:     p.Name,
			Cash:     p.Cash,
			NetWorth: p.NetWorth(prices),
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].NetWorth > scores[j].NetWorth
	})
	for i := range scores {
		scores[i].Rank = i + 1
		if i > 0 && scores[i].NetWorth == scores[i-1].NetWorth {
			scores[i].Rank = scores[i-1].Rank
		}
	}
	return scores
}

// CheckBankBroken 银行破产则进入 game_end
func (g *GameState) CheckBankBroken() bool {
	if g.Phase == PhaseGameEnd {
		return true
	}
	if g.BankCash > 0 {
		return false
	}
	g.Phase = PhaseGameEnd
	scores := g.Scores()
	data := map[string]any{"bank_cash": g.BankCash}
	if len(scores) > 0 {
		data["winner"] = scores[0].PlayerID
	}
	g.AddLog("game_end", data)
	return true
}
