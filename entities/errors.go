package entities

import (
	"errors"
	"fmt"
)

// 查找类错误
var (
	ErrPlayerNotFound   = errors.New("玩家不存在")
	ErrCompanyNotFound  = errors.New("公司不存在")
	ErrStockNotFound    = errors.New("股票账本不存在")
	ErrTrainNotFound    = errors.New("火车不存在")
	ErrTrainTypeUnknown = errors.New("未知的火车类型")
	ErrCityNotFound     = errors.New("城市不存在")
	ErrTileNotFound     = errors.New("地块不存在")
)

// 初始化阶段的调用方错误
var (
	ErrInvalidPlayerCount = errors.New("玩家人数必须在 2 到 6 之间")
	ErrDuplicatePlayer    = errors.New("玩家已加入")
	ErrGameAlreadyStarted = errors.New("游戏已经开始")
)

// RuleCode 规则拒绝码（对外稳定）
type RuleCode string

const (
	CodeWrongPhase        RuleCode = "WRONG_PHASE"
	CodeNotYourTurn       RuleCode = "NOT_YOUR_TURN"
	CodeAlreadyPassed     RuleCode = "ALREADY_PASSED"
	CodeNotFound          RuleCode = "NOT_FOUND"
	CodeInvalidAction     RuleCode = "INVALID_ACTION"
	CodeInsufficientFunds RuleCode = "INSUFFICIENT_FUNDS"
	CodeNoSharesAvailable RuleCode = "NO_SHARES_AVAILABLE"
	CodeCertLimit         RuleCode = "CERT_LIMIT"
	CodePresidentDump     RuleCode = "PRESIDENT_DUMP"
	CodeSellForbidden     RuleCode = "SELL_FORBIDDEN"
	CodeInvalidPar        RuleCode = "INVALID_PAR"
	CodeCompanyState      RuleCode = "COMPANY_STATE"
	CodeTrackLimit        RuleCode = "TRACK_LIMIT"
	CodeTokenUnavailable  RuleCode = "TOKEN_UNAVAILABLE"
	CodeTrainsAlreadyRun  RuleCode = "TRAINS_ALREADY_RUN"
	CodeTrainUnavailable  RuleCode = "TRAIN_UNAVAILABLE"
	CodeTrainLimit        RuleCode = "TRAIN_LIMIT"
	CodeMustBuyTrain      RuleCode = "MUST_BUY_TRAIN"
)

// RuleError 非法操作被拒绝，状态不会改变
type RuleError struct {
	Code RuleCode
	Msg  string
}

func (e *RuleError) Error() string {
	return e.Msg
}

// Is 按错误码比较，方便 errors.Is(err, ErrNotYourTurn)
func (e *RuleError) Is(target error) bool {
	var t *RuleError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

func Reject(code RuleCode, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// 每个错误码一个哨兵，用于 errors.Is
var (
	ErrWrongPhase        = &RuleError{Code: CodeWrongPhase, Msg: "当前阶段不允许该操作"}
	ErrNotYourTurn       = &RuleError{Code: CodeNotYourTurn, Msg: "还没轮到你"}
	ErrAlreadyPassed     = &RuleError{Code: CodeAlreadyPassed, Msg: "本轮已经 pass"}
	ErrNotFound          = &RuleError{Code: CodeNotFound, Msg: "目标不存在"}
	ErrInvalidAction     = &RuleError{Code: CodeInvalidAction, Msg: "非法操作"}
	ErrInsufficientFunds = &RuleError{Code: CodeInsufficientFunds, Msg: "资金不足"}
	ErrNoSharesAvailable = &RuleError{Code: CodeNoSharesAvailable, Msg: "没有可购买的股份"}
	ErrCertLimit         = &RuleError{Code: CodeCertLimit, Msg: "超过证书上限"}
	ErrPresidentDump     = &RuleError{Code: CodePresidentDump, Msg: "总裁不能抛售控制权"}
	ErrSellForbidden     = &RuleError{Code: CodeSellForbidden, Msg: "当前不允许卖出"}
	ErrInvalidPar        = &RuleError{Code: CodeInvalidPar, Msg: "面值不合法"}
	ErrCompanyState      = &RuleError{Code: CodeCompanyState, Msg: "公司状态不允许该操作"}
	ErrTrackLimit        = &RuleError{Code: CodeTrackLimit, Msg: "铺轨数量超限"}
	ErrTokenUnavailable  = &RuleError{Code: CodeTokenUnavailable, Msg: "无法放置车站"}
	ErrTrainsAlreadyRun  = &RuleError{Code: CodeTrainsAlreadyRun, Msg: "本回合已经运行过火车"}
	ErrTrainUnavailable  = &RuleError{Code: CodeTrainUnavailable, Msg: "该火车不可购买"}
	ErrTrainLimit        = &RuleError{Code: CodeTrainLimit, Msg: "火车数量已达上限"}
	ErrMustBuyTrain      = &RuleError{Code: CodeMustBuyTrain, Msg: "公司没有火车，必须先买火车"}
)
