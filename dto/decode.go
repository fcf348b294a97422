package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

var (
	ErrMissingActionType = errors.New("缺少动作类型")
	ErrUnknownActionType = errors.New("未知的动作类型")
)

// 自定义 HookFunc，把字符串转换成 int（前端经常把数字当字符串传）
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			s := data.(string)
			if s == "" {
				return 0, nil
			}
			return strconv.Atoi(s)
		}
		return data, nil
	}
}

func decodeInto(raw map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     out,
		TagName:    "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(raw)
}

// DecodeAction 把 {type, ...fields} 解码成具体的动作结构体
func DecodeAction(raw map[string]interface{}) (Action, error) {
	t, _ := raw["type"].(string)
	if t == "" {
		return nil, ErrMissingActionType
	}

	var action Action
	var err error
	switch ActionType(t) {
	case ActionStartCompany:
		var a StartCompany
		err = decodeInto(raw, &a)
		action = a
	case ActionBuyIPO:
		var a BuyIPO
		err = decodeInto(raw, &a)
		action = a
	case ActionBuyMarket:
		var a BuyMarket
		err = decodeInto(raw, &a)
		action = a
	case ActionSell:
		var a Sell
		err = decodeInto(raw, &a)
		action = a
	case ActionPass:
		action = Pass{}
	case ActionLayTrack:
		var a LayTrack
		err = decodeInto(raw, &a)
		action = a
	case ActionPlaceToken:
		var a PlaceToken
		err = decodeInto(raw, &a)
		action = a
	case ActionRunTrains:
		var a RunTrains
		err = decodeInto(raw, &a)
		action = a
	case ActionBuyTrain:
		var a BuyTrain
		err = decodeInto(raw, &a)
		action = a
	case ActionDone:
		action = Done{}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownActionType, t)
	}
	if err != nil {
		return nil, fmt.Errorf("动作 %s 解析失败: %w", t, err)
	}
	return action, nil
}

// EncodeAction 转回请求格式，电脑玩家的动作按这个格式记日志
func EncodeAction(a Action) map[string]interface{} {
	out := map[string]interface{}{"type": string(a.Type())}
	switch v := a.(type) {
	case StartCompany:
		out["company_id"] = v.CompanyID
		out["par_value"] = v.ParValue
	case BuyIPO:
		out["company_id"] = v.CompanyID
	case BuyMarket:
		out["company_id"] = v.CompanyID
	case Sell:
		out["company_id"] = v.CompanyID
		out["count"] = v.Count
	case LayTrack:
		tiles := make([]map[string]interface{}, 0, len(v.Tiles))
		for _, t := range v.Tiles {
			tiles = append(tiles, map[string]interface{}{
				"tile_id":     t.TileID,
				"tile_number": t.TileNumber,
				"rotation":    t.Rotation,
			})
		}
		out["tiles"] = tiles
	case PlaceToken:
		out["city"] = v.City
	case RunTrains:
		out["dividend"] = string(v.Dividend.Normalize())
	case BuyTrain:
		out["train_type"] = v.TrainType
	}
	return out
}
