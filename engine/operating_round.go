package engine

import (
	"fmt"

	"go-tycoon/dto"
	"go-tycoon/entities"
	"go-tycoon/turn"
)

func operatingActions(g *entities.GameState, playerID string, c *entities.Company) []dto.ActionDescriptor {
	if c == nil {
		return nil
	}
	var cands []candidate

	// 铺轨只需要判断还能不能铺，具体地块由调用方给出
	if left := entities.MaxTilesPerTurn - g.Turn.TilesLaid; left > 0 {
		if probe, ok := firstBuildableTile(g); ok {
			cands = append(cands, candidate{
				action: dto.LayTrack{Tiles: []dto.TileLay{{TileID: probe}}},
				desc: dto.ActionDescriptor{
					Type:        dto.ActionLayTrack,
					CompanyID:   c.ID,
					MaxTiles:    left,
					Description: fmt.Sprintf("%s 铺轨（最多 %d 块）", c.ID, left),
				},
			})
		}
	}

	cost := c.NextTokenCost()
	for _, city := range g.Board.TokenableCities(c.ID) {
		cands = append(cands, candidate{
			action: dto.PlaceToken{City: city},
			desc: dto.ActionDescriptor{
				Type:        dto.ActionPlaceToken,
				CompanyID:   c.ID,
				City:        city,
				Cost:        cost,
				Description: fmt.Sprintf("在 %s 放置车站（¥%d，剩余 %d 个）", city, cost, c.TokensRemaining),
			},
		})
	}

	revenue := CompanyRevenue(g, c)
	for _, opt := range DividendOptions(revenue) {
		opt := opt
		cands = append(cands, candidate{
			action: dto.RunTrains{Dividend: opt.Policy},
			desc: dto.ActionDescriptor{
				Type:        dto.ActionRunTrains,
				CompanyID:   c.ID,
				Dividend:    opt.Policy,
				Revenue:     revenue,
				Option:      &opt,
				Description: fmt.Sprintf("运行火车, 收益 ¥%d, 分红方式 %s", revenue, opt.Policy),
			},
		})
	}

	for _, def := range g.TrainDepot.AvailableTypes() {
		cands = append(cands, trainCandidate(c, def))
	}

	cands = append(cands, candidate{
		action: dto.Done{},
		desc:   dto.ActionDescriptor{Type: dto.ActionDone, CompanyID: c.ID, Description: fmt.Sprintf("%s 结束运营", c.ID)},
	})
	return keep(g, playerID, cands)
}

func emergencyActions(g *entities.GameState, playerID string, c *entities.Company) []dto.ActionDescriptor {
	if c == nil {
		return nil
	}
	var cands []candidate
	for _, def := range g.TrainDepot.AvailableTypes() {
		cands = append(cands, trainCandidate(c, def))
	}
	return keep(g, playerID, cands)
}

func trainCandidate(c *entities.Company, def entities.TrainDef) candidate {
	return candidate{
		action: dto.BuyTrain{TrainType: string(def.Type)},
		desc: dto.ActionDescriptor{
			Type:        dto.ActionBuyTrain,
			CompanyID:   c.ID,
			TrainType:   string(def.Type),
			Cost:        def.Cost,
			Description: fmt.Sprintf("以 ¥%d 购买 %s", def.Cost, def.Name),
		},
	}
}

func firstBuildableTile(g *entities.GameState) (string, bool) {
	for row := 0; row < entities.BoardRows; row++ {
		for col := 0; col < entities.BoardCols; col++ {
			if t, ok := g.Board.Tiles[entities.TileID(row, col)]; ok && t.Buildable() {
				return t.ID, true
			}
		}
	}
	return "", false
}

func executeOperating(g *entities.GameState, c *entities.Company, action dto.Action) (dto.ActionResult, error) {
	switch a := action.(type) {
	case dto.LayTrack:
		return layTrack(g, c, a)
	case dto.PlaceToken:
		return placeToken(g, c, a)
	case dto.RunTrains:
		return runTrains(g, c, a), nil
	case dto.BuyTrain:
		return buyTrainAction(g, c, a)
	case dto.Done:
		return done(g, c), nil
	}
	return dto.ActionResult{}, entities.Reject(entities.CodeWrongPhase, "运营轮不能执行 %s", action.Type())
}

func layTrack(g *entities.GameState, c *entities.Company, a dto.LayTrack) (dto.ActionResult, error) {
	laid := make([]string, 0, len(a.Tiles))
	spent := 0
	for _, lay := range a.Tiles {
		tile, err := g.Board.Tile(lay.TileID)
		if err != nil {
			return dto.ActionResult{}, err
		}
		if err := g.Board.LayTrack(lay.TileID, lay.TileNumber, lay.Rotation); err != nil {
			return dto.ActionResult{}, err
		}
		if tile.TerrainCost > 0 {
			g.CompanyPaysBank(c, tile.TerrainCost)
			spent += tile.TerrainCost
		}
		laid = append(laid, lay.TileID)
	}
	g.Turn.TilesLaid += len(laid)
	g.AddLog("lay_track", map[string]any{
		"company_id": c.ID,
		"tiles":      laid,
		"cost":       spent,
	})
	return dto.Succeed(fmt.Sprintf("%s 铺设了 %d 块轨道", c.Name, len(laid)), map[string]interface{}{
		"tiles_laid": laid,
		"cost":       spent,
	}), nil
}

func placeToken(g *entities.GameState, c *entities.Company, a dto.PlaceToken) (dto.ActionResult, error) {
	cost := c.NextTokenCost()
	if err := g.Board.PlaceToken(a.City, c.ID); err != nil {
		return dto.ActionResult{}, err
	}
	if cost > 0 {
		g.CompanyPaysBank(c, cost)
	}
	c.TokensRemaining--
	g.Turn.TokenPlaced = true
	g.AddLog("place_token", map[string]any{
		"company_id": c.ID,
		"city":       a.City,
		"cost":       cost,
	})
	return dto.Succeed(fmt.Sprintf("%s 在 %s 放置了车站", c.Name, a.City), map[string]interface{}{
		"city": a.City,
		"cost": cost,
	}), nil
}

func runTrains(g *entities.GameState, c *entities.Company, a dto.RunTrains) dto.ActionResult {
	revenue := CompanyRevenue(g, c)
	policy := a.Dividend.Normalize()
	perShare, toTreasury, paid := payDividend(g, c, policy, revenue)
	g.Turn.TrainsRun = true
	g.AddLog("run_trains", map[string]any{
		"company_id":  c.ID,
		"revenue":     revenue,
		"dividend":    string(policy),
		"per_share":   perShare,
		"to_treasury": toTreasury,
		"paid":        paid,
		"new_price":   c.StockPrice(),
	})
	if c.PriceIndex == 0 {
		closeCompany(g, c)
		beginCompanyTurn(g)
	}
	return dto.Succeed(fmt.Sprintf("%s 收益 ¥%d", c.Name, revenue), map[string]interface{}{
		"revenue":   revenue,
		"dividend":  string(policy),
		"per_share": perShare,
	})
}

func buyTrainAction(g *entities.GameState, c *entities.Company, a dto.BuyTrain) (dto.ActionResult, error) {
	t, err := entities.ParseTrainType(a.TrainType)
	if err != nil {
		return dto.ActionResult{}, err
	}
	def, _ := entities.TrainDefOf(t)
	purchase, err := buyTrain(g, c, def)
	if err != nil {
		return dto.ActionResult{}, err
	}
	return purchaseResult(c, def, purchase, 0), nil
}

func purchaseResult(c *entities.Company, def entities.TrainDef, p trainPurchase, assist int) dto.ActionResult {
	extra := map[string]interface{}{
		"train_id": p.train.ID,
		"cost":     def.Cost,
		"rusted":   len(p.rusted),
		"phase":    p.toPhase,
	}
	if assist > 0 {
		extra["president_contribution"] = assist
	}
	msg := fmt.Sprintf("%s 以 ¥%d 购买了 %s", c.Name, def.Cost, def.Name)
	if p.advanced {
		msg += fmt.Sprintf("，进入阶段 %d", p.toPhase)
	}
	if len(p.rusted) > 0 {
		msg += fmt.Sprintf("，%d 辆火车生锈", len(p.rusted))
	}
	return dto.Succeed(msg, extra)
}

// done 结束运营。没有火车时走强制购车：公司买得起在校验阶段就被拒绝，
// 需要总裁补钱则进入紧急购车阶段，补了也买不起则公司破产进入托管。
func done(g *entities.GameState, c *entities.Company) dto.ActionResult {
	switch turn.ForcedBuyStatus(g, c) {
	case turn.ForcedPresidentAssist:
		g.Phase = entities.PhaseEmergencyTrainBuy
		g.AddLog("emergency_train_buy", map[string]any{
			"company_id":   c.ID,
			"president_id": c.PresidentID,
			"treasury":     c.Treasury,
			"train_cost":   cheapestTrainCost(g),
		})
		return dto.Succeed(fmt.Sprintf("%s 没有火车，总裁必须出资购买", c.Name), map[string]interface{}{
			"emergency": true,
		})
	case turn.ForcedBankrupt:
		former := c.PresidentID
		c.Status = entities.CompanyReceivership
		c.PresidentID = ""
		g.AddLog("bankruptcy", map[string]any{
			"company_id":       c.ID,
			"former_president": former,
			"treasury":         c.Treasury,
		})
		finishCompanyTurn(g, c)
		return dto.Succeed(fmt.Sprintf("%s 无力购买火车，进入托管", c.Name), map[string]interface{}{
			"bankrupt": true,
		})
	}
	g.AddLog("done", map[string]any{"company_id": c.ID})
	finishCompanyTurn(g, c)
	return dto.Succeed(fmt.Sprintf("%s 结束运营", c.Name), nil)
}

// executeEmergencyBuy 总裁补足差额买最便宜的火车，随后自动结束该公司的回合
func executeEmergencyBuy(g *entities.GameState, c *entities.Company, a dto.BuyTrain) (dto.ActionResult, error) {
	t, err := entities.ParseTrainType(a.TrainType)
	if err != nil {
		return dto.ActionResult{}, err
	}
	def, _ := entities.TrainDefOf(t)
	president, err := g.Player(c.PresidentID)
	if err != nil {
		return dto.ActionResult{}, err
	}
	assist := max(0, def.Cost-c.Treasury)
	if assist > 0 {
		g.PlayerPaysCompany(president, c, assist)
	}
	purchase, err := buyTrain(g, c, def)
	if err != nil {
		return dto.ActionResult{}, err
	}
	g.AddLog("president_assist", map[string]any{
		"company_id":   c.ID,
		"president_id": president.ID,
		"amount":       assist,
	})
	finishCompanyTurn(g, c)
	return purchaseResult(c, def, purchase, assist), nil
}
