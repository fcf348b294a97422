// Package engine 是规则引擎的入口：查询可用动作、校验并执行动作。
// 引擎本身不保存状态，每次调用都把 GameState 传进来，调用方负责按游戏串行化。
package engine

import (
	"errors"

	"go-tycoon/dto"
	"go-tycoon/entities"
	"go-tycoon/turn"
)

// NewGame 建局并加入玩家，随后调用 Start 开始第一个股票轮
func NewGame(id string, players ...*entities.Player) (*entities.GameState, error) {
	g := entities.NewGameState(id)
	for _, p := range players {
		if err := g.AddPlayer(p); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func Start(g *entities.GameState) error {
	return g.Initialize()
}

// AvailableActions 返回当前行动方以及他的合法动作，setup 和 game_end 阶段为空
func AvailableActions(g *entities.GameState) (string, []dto.ActionDescriptor) {
	actor, ok := turn.CurrentActor(g)
	if !ok {
		return "", nil
	}
	return actor, ActionsFor(g, actor)
}

// ActionsFor 指定玩家的合法动作，不是他的回合时为空
func ActionsFor(g *entities.GameState, playerID string) []dto.ActionDescriptor {
	actor, ok := turn.CurrentActor(g)
	if !ok || actor != playerID {
		return nil
	}
	switch g.Phase {
	case entities.PhaseStockRound:
		return stockActions(g, playerID)
	case entities.PhaseOperatingRound:
		c, _ := turn.OperatingCompany(g)
		return operatingActions(g, playerID, c)
	case entities.PhaseEmergencyTrainBuy:
		c, _ := turn.OperatingCompany(g)
		return emergencyActions(g, playerID, c)
	}
	return nil
}

// Execute 校验后执行，任何规则拒绝都以失败结果返回且不改变状态
func Execute(g *entities.GameState, playerID string, action dto.Action) dto.ActionResult {
	if err := turn.Validate(g, playerID, action); err != nil {
		return failure(err)
	}

	var (
		res dto.ActionResult
		err error
	)
	switch g.Phase {
	case entities.PhaseStockRound:
		res, err = executeStock(g, playerID, action)
	case entities.PhaseOperatingRound:
		c, _ := turn.OperatingCompany(g)
		res, err = executeOperating(g, c, action)
	case entities.PhaseEmergencyTrainBuy:
		c, _ := turn.OperatingCompany(g)
		res, err = executeEmergencyBuy(g, c, action.(dto.BuyTrain))
	}
	if err != nil {
		return failure(err)
	}
	if g.CheckBankBroken() {
		if res.Extra == nil {
			res.Extra = map[string]interface{}{}
		}
		res.Extra["game_over"] = true
	}
	return res
}

func failure(err error) dto.ActionResult {
	res := dto.ActionResult{Success: false, Error: err.Error()}
	var re *entities.RuleError
	if errors.As(err, &re) {
		res.Code = string(re.Code)
	}
	return res
}

// keep 只保留能通过校验的候选动作，保证可用动作和执行校验一致
func keep(g *entities.GameState, playerID string, candidates []candidate) []dto.ActionDescriptor {
	out := make([]dto.ActionDescriptor, 0, len(candidates))
	for _, c := range candidates {
		if turn.Validate(g, playerID, c.action) == nil {
			out = append(out, c.desc)
		}
	}
	return out
}

type candidate struct {
	action dto.Action
	desc   dto.ActionDescriptor
}
