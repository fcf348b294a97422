package dto

// ActionType 对外的动作类型
type ActionType string

const (
	ActionStartCompany ActionType = "start_company"
	ActionBuyIPO       ActionType = "buy_ipo"
	ActionBuyMarket    ActionType = "buy_market"
	ActionSell         ActionType = "sell"
	ActionPass         ActionType = "pass"
	ActionLayTrack     ActionType = "lay_track"
	ActionPlaceToken   ActionType = "place_token"
	ActionRunTrains    ActionType = "run_trains"
	ActionBuyTrain     ActionType = "buy_train"
	ActionDone         ActionType = "done"
)

// Action 封闭的动作联合类型，只有本包里的结构体能实现
type Action interface {
	Type() ActionType
	isAction()
}

type StartCompany struct {
	CompanyID string `json:"company_id"`
	ParValue  int    `json:"par_value"`
}

type BuyIPO struct {
	CompanyID string `json:"company_id"`
}

type BuyMarket struct {
	CompanyID string `json:"company_id"`
}

type Sell struct {
	CompanyID string `json:"company_id"`
	Count     int    `json:"count"`
}

type Pass struct{}

type TileLay struct {
	TileID     string `json:"tile_id"`
	TileNumber string `json:"tile_number"`
	Rotation   int    `json:"rotation"`
}

type LayTrack struct {
	Tiles []TileLay `json:"tiles"`
}

type PlaceToken struct {
	City string `json:"city"`
}

type DividendPolicy string

const (
	DividendFull     DividendPolicy = "full"
	DividendHalf     DividendPolicy = "half"
	DividendWithhold DividendPolicy = "withhold"
)

// Normalize 未指定时按全额分红处理
func (d DividendPolicy) Normalize() DividendPolicy {
	if d == "" {
		return DividendFull
	}
	return d
}

func (d DividendPolicy) Valid() bool {
	switch d.Normalize() {
	case DividendFull, DividendHalf, DividendWithhold:
		return true
	}
	return false
}

type RunTrains struct {
	Dividend DividendPolicy `json:"dividend"`
}

type BuyTrain struct {
	TrainType string `json:"train_type"`
}

type Done struct{}

func (StartCompany) Type() ActionType { return ActionStartCompany }
func (BuyIPO) Type() ActionType       { return ActionBuyIPO }
func (BuyMarket) Type() ActionType    { return ActionBuyMarket }
func (Sell) Type() ActionType         { return ActionSell }
func (Pass) Type() ActionType         { return ActionPass }
func (LayTrack) Type() ActionType     { return ActionLayTrack }
func (PlaceToken) Type() ActionType   { return ActionPlaceToken }
func (RunTrains) Type() ActionType    { return ActionRunTrains }
func (BuyTrain) Type() ActionType     { return ActionBuyTrain }
func (Done) Type() ActionType         { return ActionDone }

func (StartCompany) isAction() {}
func (BuyIPO) isAction()       {}
func (BuyMarket) isAction()    {}
func (Sell) isAction()         {}
func (Pass) isAction()         {}
func (LayTrack) isAction()     {}
func (PlaceToken) isAction()   {}
func (RunTrains) isAction()    {}
func (BuyTrain) isAction()     {}
func (Done) isAction()         {}
