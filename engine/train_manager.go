package engine

import (
	"go-tycoon/entities"
)

type trainPurchase struct {
	train     *entities.Train
	fromPhase int
	toPhase   int
	rusted    []entities.RustedTrain
	advanced  bool
}

// buyTrain 从银行买车：公司付款，必要时推进阶段，随后所有 rusts_on 为该型号的火车生锈
func buyTrain(g *entities.GameState, c *entities.Company, def entities.TrainDef) (trainPurchase, error) {
	from := g.TrainDepot.CurrentPhase
	t, advanced, err := g.TrainDepot.Buy(def.Type, c.ID)
	if err != nil {
		return trainPurchase{}, err
	}
	g.CompanyPaysBank(c, def.Cost)
	c.Trains = append(c.Trains, t.ID)

	g.AddLog("buy_train", map[string]any{
		"company_id": c.ID,
		"train_id":   t.ID,
		"train_type": string(t.Type),
		"cost":       def.Cost,
	})
	if advanced {
		g.AddLog("phase_change", map[string]any{"from": from, "to": g.TrainDepot.CurrentPhase})
	}

	rusted := g.TrainDepot.Rust(def.Type)
	if len(rusted) > 0 {
		ids := make([]string, 0, len(rusted))
		for _, r := range rusted {
			ids = append(ids, r.ID)
			if owner, ok := g.Companies[r.FormerOwner]; ok {
				owner.RemoveTrain(r.ID)
			}
		}
		g.AddLog("trains_rusted", map[string]any{
			"trigger":   string(def.Type),
			"train_ids": ids,
		})
	}
	return trainPurchase{
		train:     t,
		fromPhase: from,
		toPhase:   g.TrainDepot.CurrentPhase,
		rusted:    rusted,
		advanced:  advanced,
	}, nil
}

// cheapestTrainCost 银行里最便宜的火车，没有返回 0
func cheapestTrainCost(g *entities.GameState) int {
	def, ok := g.TrainDepot.CheapestAvailable()
	if !ok {
		return 0
	}
	return def.Cost
}
