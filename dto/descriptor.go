package dto

// DividendOption run_trains 的一种分红选择
type DividendOption struct {
	Policy      DividendPolicy `json:"policy"`
	PerShare    int            `json:"per_share"`
	ToTreasury  int            `json:"to_treasury"`
	StockEffect string         `json:"stock_effect"` // up / none / down
}

// ActionDescriptor 可执行动作的描述，AI 原样挑一个交回来即可执行
type ActionDescriptor struct {
	Type        ActionType      `json:"type"`
	CompanyID   string          `json:"company_id,omitempty"`
	ParValue    int             `json:"par_value,omitempty"`
	Count       int             `json:"count,omitempty"`
	Price       int             `json:"price,omitempty"`
	Cost        int             `json:"cost,omitempty"`
	TrainType   string          `json:"train_type,omitempty"`
	City        string          `json:"city,omitempty"`
	MaxTiles    int             `json:"max_tiles,omitempty"`
	Dividend    DividendPolicy  `json:"dividend,omitempty"`
	Revenue     int             `json:"revenue,omitempty"`
	Option      *DividendOption `json:"option,omitempty"`
	Description string          `json:"description"`
}

// Action 描述转成动作。lay_track 需要调用方补上 tiles。
func (d ActionDescriptor) Action() (Action, error) {
	switch d.Type {
	case ActionStartCompany:
		return StartCompany{CompanyID: d.CompanyID, ParValue: d.ParValue}, nil
	case ActionBuyIPO:
		return BuyIPO{CompanyID: d.CompanyID}, nil
	case ActionBuyMarket:
		return BuyMarket{CompanyID: d.CompanyID}, nil
	case ActionSell:
		return Sell{CompanyID: d.CompanyID, Count: d.Count}, nil
	case ActionPass:
		return Pass{}, nil
	case ActionLayTrack:
		return LayTrack{}, nil
	case ActionPlaceToken:
		return PlaceToken{City: d.City}, nil
	case ActionRunTrains:
		return RunTrains{Dividend: d.Dividend}, nil
	case ActionBuyTrain:
		return BuyTrain{TrainType: d.TrainType}, nil
	case ActionDone:
		return Done{}, nil
	}
	return nil, ErrUnknownActionType
}

// ActionResult 执行结果，规则拒绝不会以 error 形式抛出
type ActionResult struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Error   string                 `json:"error,omitempty"`
	Code    string                 `json:"code,omitempty"`
	Extra   map[string]interface{} `json:"extra,omitempty"`
}

func Succeed(msg string, extra map[string]interface{}) ActionResult {
	return ActionResult{Success: true, Message: msg, Extra: extra}
}
