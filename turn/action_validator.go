package turn

import (
	"go-tycoon/dto"
	"go-tycoon/entities"
)

// Validate 动作合法性检查，只读。回合引擎在修改状态前调用同一个函数。
func Validate(g *entities.GameState, playerID string, action dto.Action) error {
	if action == nil {
		return entities.Reject(entities.CodeInvalidAction, "动作为空")
	}
	switch g.Phase {
	case entities.PhaseSetup, entities.PhaseGameEnd:
		return entities.Reject(entities.CodeWrongPhase, "当前阶段 %s 不能行动", g.Phase)
	}
	if g.Phase == entities.PhaseStockRound && g.PassedPlayers[playerID] {
		return entities.Reject(entities.CodeAlreadyPassed, "玩家 %s 本轮已经 pass", playerID)
	}
	actor, ok := CurrentActor(g)
	if !ok || actor != playerID {
		return entities.Reject(entities.CodeNotYourTurn, "现在轮到 %s 行动", actor)
	}

	switch g.Phase {
	case entities.PhaseStockRound:
		return validateStockAction(g, playerID, action)
	case entities.PhaseOperatingRound:
		company, _ := OperatingCompany(g)
		return validateOperatingAction(g, company, action)
	case entities.PhaseEmergencyTrainBuy:
		company, _ := OperatingCompany(g)
		a, ok := action.(dto.BuyTrain)
		if !ok {
			return entities.Reject(entities.CodeWrongPhase, "紧急购车阶段只能购买火车")
		}
		return ValidateEmergencyBuy(g, company, a)
	}
	return entities.Reject(entities.CodeWrongPhase, "未知阶段 %s", g.Phase)
}

func validateStockAction(g *entities.GameState, playerID string, action dto.Action) error {
	switch a := action.(type) {
	case dto.StartCompany:
		return ValidateStartCompany(g, playerID, a)
	case dto.BuyIPO:
		return ValidateBuyIPO(g, playerID, a)
	case dto.BuyMarket:
		return ValidateBuyMarket(g, playerID, a)
	case dto.Sell:
		return ValidateSell(g, playerID, a)
	case dto.Pass:
		return nil
	}
	return entities.Reject(entities.CodeWrongPhase, "股票轮不能执行 %s", action.Type())
}

func validateOperatingAction(g *entities.GameState, c *entities.Company, action dto.Action) error {
	switch a := action.(type) {
	case dto.LayTrack:
		return ValidateLayTrack(g, c, a)
	case dto.PlaceToken:
		return ValidatePlaceToken(g, c, a)
	case dto.RunTrains:
		return ValidateRunTrains(g, c, a)
	case dto.BuyTrain:
		return ValidateBuyTrain(g, c, a)
	case dto.Done:
		return ValidateDone(g, c)
	}
	return entities.Reject(entities.CodeWrongPhase, "运营轮不能执行 %s", action.Type())
}

func lookup(g *entities.GameState, playerID, companyID string) (*entities.Player, *entities.Company, error) {
	p, err := g.Player(playerID)
	if err != nil {
		return nil, nil, entities.Reject(entities.CodeNotFound, "%v", err)
	}
	c, err := g.Company(companyID)
	if err != nil {
		return nil, nil, entities.Reject(entities.CodeNotFound, "%v", err)
	}
	return p, c, nil
}

func checkCertHeadroom(g *entities.GameState, playerID string) error {
	if limit := g.CertLimit(); g.CertificateCount(playerID)+1 > limit {
		return entities.Reject(entities.CodeCertLimit, "证书数量已达上限 %d", limit)
	}
	return nil
}

func ValidateStartCompany(g *entities.GameState, playerID string, a dto.StartCompany) error {
	p, c, err := lookup(g, playerID, a.CompanyID)
	if err != nil {
		return err
	}
	if c.Status != entities.CompanyUnstarted {
		return entities.Reject(entities.CodeCompanyState, "公司 %s 已经开业", c.ID)
	}
	if !entities.IsParValue(a.ParValue) {
		return entities.Reject(entities.CodeInvalidPar, "面值 %d 不在面值表中", a.ParValue)
	}
	cost := a.ParValue * entities.PresidentShares
	if !p.CanAfford(cost) {
		return entities.Reject(entities.CodeInsufficientFunds, "资金不足: 需要 ¥%d, 现有 ¥%d", cost, p.Cash)
	}
	return checkCertHeadroom(g, playerID)
}

func ValidateBuyIPO(g *entities.GameState, playerID string, a dto.BuyIPO) error {
	p, c, err := lookup(g, playerID, a.CompanyID)
	if err != nil {
		return err
	}
	if !c.IsActive() {
		return entities.Reject(entities.CodeCompanyState, "公司 %s 当前状态 %s, 不能从 IPO 购买", c.ID, c.Status)
	}
	s, err := g.StockMarket.Stock(c.ID)
	if err != nil {
		return entities.Reject(entities.CodeNotFound, "%v", err)
	}
	if s.IPOShares < 1 {
		return entities.Reject(entities.CodeNoSharesAvailable, "公司 %s 的 IPO 已售空", c.ID)
	}
	if price := c.StockPrice(); !p.CanAfford(price) {
		return entities.Reject(entities.CodeInsufficientFunds, "资金不足: 需要 ¥%d, 现有 ¥%d", price, p.Cash)
	}
	return checkCertHeadroom(g, playerID)
}

func ValidateBuyMarket(g *entities.GameState, playerID string, a dto.BuyMarket) error {
	p, c, err := lookup(g, playerID, a.CompanyID)
	if err != nil {
		return err
	}
	if !c.IsTradable() {
		return entities.Reject(entities.CodeCompanyState, "公司 %s 当前状态 %s, 不能交易", c.ID, c.Status)
	}
	s, err := g.StockMarket.Stock(c.ID)
	if err != nil {
		return entities.Reject(entities.CodeNotFound, "%v", err)
	}
	if s.MarketShares < 1 {
		return entities.Reject(entities.CodeNoSharesAvailable, "市场上没有 %s 的股份", c.ID)
	}
	if price := c.StockPrice(); !p.CanAfford(price) {
		return entities.Reject(entities.CodeInsufficientFunds, "资金不足: 需要 ¥%d, 现有 ¥%d", price, p.Cash)
	}
	return checkCertHeadroom(g, playerID)
}

func ValidateSell(g *entities.GameState, playerID string, a dto.Sell) error {
	if g.StockRoundNumber <= 1 {
		return entities.Reject(entities.CodeSellForbidden, "第一个股票轮不能卖股")
	}
	p, c, err := lookup(g, playerID, a.CompanyID)
	if err != nil {
		return err
	}
	if !c.IsTradable() {
		return entities.Reject(entities.CodeCompanyState, "公司 %s 当前状态 %s, 不能交易", c.ID, c.Status)
	}
	if a.Count < 1 {
		return entities.Reject(entities.CodeInvalidAction, "卖出数量必须大于 0")
	}
	held := p.Shares(c.ID)
	if held < a.Count {
		return entities.Reject(entities.CodeInvalidAction, "持有 %s 只有 %d 股", c.ID, held)
	}
	if c.PresidentID == playerID && held-a.Count < entities.PresidentShares && !hasSuccessor(g, c, playerID) {
		return entities.Reject(entities.CodePresidentDump, "卖出后总裁持股低于 2 股且没有可接任的玩家")
	}
	return nil
}

// hasSuccessor 是否有其他玩家持有至少 2 股
func hasSuccessor(g *entities.GameState, c *entities.Company, presidentID string) bool {
	s, err := g.StockMarket.Stock(c.ID)
	if err != nil {
		return false
	}
	for pid, n := range s.PlayerShares {
		if pid != presidentID && n >= entities.PresidentShares {
			return true
		}
	}
	return false
}

func ValidateLayTrack(g *entities.GameState, c *entities.Company, a dto.LayTrack) error {
	if len(a.Tiles) == 0 {
		return entities.Reject(entities.CodeInvalidAction, "没有指定要铺的地块")
	}
	if g.Turn.TilesLaid+len(a.Tiles) > entities.MaxTilesPerTurn {
		return entities.Reject(entities.CodeTrackLimit, "每回合最多铺 %d 块, 已铺 %d 块", entities.MaxTilesPerTurn, g.Turn.TilesLaid)
	}
	seen := make(map[string]bool, len(a.Tiles))
	cost := 0
	for _, lay := range a.Tiles {
		if seen[lay.TileID] {
			return entities.Reject(entities.CodeInvalidAction, "地块 %s 重复", lay.TileID)
		}
		seen[lay.TileID] = true
		tile, err := g.Board.Tile(lay.TileID)
		if err != nil {
			return entities.Reject(entities.CodeNotFound, "%v", err)
		}
		if !tile.Buildable() {
			return entities.Reject(entities.CodeInvalidAction, "地块 %s 不能铺轨", tile.ID)
		}
		if lay.Rotation < 0 || lay.Rotation > 5 {
			return entities.Reject(entities.CodeInvalidAction, "旋转角度 %d 不合法", lay.Rotation)
		}
		cost += tile.TerrainCost
	}
	if cost > c.Treasury {
		return entities.Reject(entities.CodeInsufficientFunds, "地形费用 ¥%d 超过公司资金 ¥%d", cost, c.Treasury)
	}
	return nil
}

func ValidatePlaceToken(g *entities.GameState, c *entities.Company, a dto.PlaceToken) error {
	if g.Turn.TokenPlaced {
		return entities.Reject(entities.CodeTokenUnavailable, "本回合已经放置过车站")
	}
	if c.TokensRemaining <= 0 {
		return entities.Reject(entities.CodeTokenUnavailable, "公司 %s 没有剩余车站", c.ID)
	}
	city, err := g.Board.City(a.City)
	if err != nil {
		return entities.Reject(entities.CodeNotFound, "%v", err)
	}
	if city.HasToken(c.ID) {
		return entities.Reject(entities.CodeTokenUnavailable, "公司 %s 已在 %s 有车站", c.ID, city.Name)
	}
	if !city.HasFreeSlot() {
		return entities.Reject(entities.CodeTokenUnavailable, "城市 %s 没有空位", city.Name)
	}
	if cost := c.NextTokenCost(); cost > c.Treasury {
		return entities.Reject(entities.CodeInsufficientFunds, "车站费用 ¥%d 超过公司资金 ¥%d", cost, c.Treasury)
	}
	return nil
}

func ValidateRunTrains(g *entities.GameState, c *entities.Company, a dto.RunTrains) error {
	if g.Turn.TrainsRun {
		return entities.Reject(entities.CodeTrainsAlreadyRun, "公司 %s 本回合已经运行过火车", c.ID)
	}
	if len(g.TrainDepot.OwnedBy(c.ID)) == 0 {
		return entities.Reject(entities.CodeInvalidAction, "公司 %s 没有可运行的火车", c.ID)
	}
	if !a.Dividend.Valid() {
		return entities.Reject(entities.CodeInvalidAction, "分红方式 %q 不合法", a.Dividend)
	}
	return nil
}

func parseAvailableTrain(g *entities.GameState, raw string) (entities.TrainDef, error) {
	t, err := entities.ParseTrainType(raw)
	if err != nil {
		return entities.TrainDef{}, entities.Reject(entities.CodeInvalidAction, "%v", err)
	}
	def, _ := entities.TrainDefOf(t)
	if !g.TrainDepot.IsAvailable(t) {
		return def, entities.Reject(entities.CodeTrainUnavailable, "火车 %s 当前不可购买", t)
	}
	return def, nil
}

func ValidateBuyTrain(g *entities.GameState, c *entities.Company, a dto.BuyTrain) error {
	def, err := parseAvailableTrain(g, a.TrainType)
	if err != nil {
		return err
	}
	if limit := entities.TrainLimit(g.TrainDepot.CurrentPhase); len(c.Trains) >= limit {
		return entities.Reject(entities.CodeTrainLimit, "阶段 %d 火车上限为 %d", g.TrainDepot.CurrentPhase, limit)
	}
	if def.Cost > c.Treasury {
		return entities.Reject(entities.CodeInsufficientFunds, "火车 ¥%d 超过公司资金 ¥%d", def.Cost, c.Treasury)
	}
	return nil
}

// ValidateEmergencyBuy 紧急购车只能买最便宜的火车，总裁补足差额
func ValidateEmergencyBuy(g *entities.GameState, c *entities.Company, a dto.BuyTrain) error {
	def, err := parseAvailableTrain(g, a.TrainType)
	if err != nil {
		return err
	}
	cheapest, ok := g.TrainDepot.CheapestAvailable()
	if !ok || def.Cost != cheapest.Cost {
		return entities.Reject(entities.CodeTrainUnavailable, "紧急购车只能购买最便宜的火车")
	}
	president, err := g.Player(c.PresidentID)
	if err != nil {
		return entities.Reject(entities.CodeNotFound, "%v", err)
	}
	if c.Treasury+president.Cash < def.Cost {
		return entities.Reject(entities.CodeInsufficientFunds, "公司和总裁的资金合计不足 ¥%d", def.Cost)
	}
	return nil
}

// ForcedBuy 公司没有火车时结束回合的处理方式
type ForcedBuy int

const (
	ForcedNone            ForcedBuy = iota // 有火车，或银行已无火车
	ForcedMustBuy                          // 公司自己买得起，必须先买
	ForcedPresidentAssist                  // 需要总裁补钱
	ForcedBankrupt                         // 公司加总裁都买不起
)

func ForcedBuyStatus(g *entities.GameState, c *entities.Company) ForcedBuy {
	if len(c.Trains) > 0 {
		return ForcedNone
	}
	cheapest, ok := g.TrainDepot.CheapestAvailable()
	if !ok {
		return ForcedNone
	}
	if c.Treasury >= cheapest.Cost {
		return ForcedMustBuy
	}
	president, err := g.Player(c.PresidentID)
	if err == nil && c.Treasury+president.Cash >= cheapest.Cost {
		return ForcedPresidentAssist
	}
	return ForcedBankrupt
}

func ValidateDone(g *entities.GameState, c *entities.Company) error {
	if ForcedBuyStatus(g, c) == ForcedMustBuy {
		cheapest, _ := g.TrainDepot.CheapestAvailable()
		return entities.Reject(entities.CodeMustBuyTrain, "公司 %s 没有火车, 必须先购买 %s (¥%d)", c.ID, cheapest.Name, cheapest.Cost)
	}
	return nil
}
