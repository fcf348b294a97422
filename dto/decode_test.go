package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAction(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]interface{}
		want Action
	}{
		{"开公司", map[string]interface{}{"type": "start_company", "company_id": "AR", "par_value": 65.0}, StartCompany{CompanyID: "AR", ParValue: 65}},
		{"字符串数字", map[string]interface{}{"type": "sell", "company_id": "IR", "count": "2"}, Sell{CompanyID: "IR", Count: 2}},
		{"pass", map[string]interface{}{"type": "pass"}, Pass{}},
		{"done", map[string]interface{}{"type": "done", "extra": 1}, Done{}},
		{"分红", map[string]interface{}{"type": "run_trains", "dividend": "half"}, RunTrains{Dividend: DividendHalf}},
		{"买车", map[string]interface{}{"type": "buy_train", "train_type": "D"}, BuyTrain{TrainType: "D"}},
		{"铺轨", map[string]interface{}{
			"type": "lay_track",
			"tiles": []interface{}{
				map[string]interface{}{"tile_id": "B2", "tile_number": "7", "rotation": 2.0},
			},
		}, LayTrack{Tiles: []TileLay{{TileID: "B2", TileNumber: "7", Rotation: 2}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeAction(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeAction_错误(t *testing.T) {
	_, err := DecodeAction(map[string]interface{}{})
	assert.ErrorIs(t, err, ErrMissingActionType)

	_, err = DecodeAction(map[string]interface{}{"type": "teleport"})
	assert.ErrorIs(t, err, ErrUnknownActionType)

	_, err = DecodeAction(map[string]interface{}{"type": "sell", "count": "abc"})
	assert.Error(t, err)
}

func TestEncodeAction_可以再解码(t *testing.T) {
	actions := []Action{
		StartCompany{CompanyID: "AR", ParValue: 80},
		BuyIPO{CompanyID: "AR"},
		PlaceToken{City: "Kochi"},
		LayTrack{Tiles: []TileLay{{TileID: "C3", Rotation: 1}}},
	}
	for _, a := range actions {
		got, err := DecodeAction(EncodeAction(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
}

func TestDividendPolicy(t *testing.T) {
	assert.Equal(t, DividendFull, DividendPolicy("").Normalize())
	assert.True(t, DividendWithhold.Valid())
	assert.False(t, DividendPolicy("double").Valid())
}

func TestActionDescriptor_Action(t *testing.T) {
	a, err := ActionDescriptor{Type: ActionBuyTrain, TrainType: "3"}.Action()
	require.NoError(t, err)
	assert.Equal(t, BuyTrain{TrainType: "3"}, a)

	_, err = ActionDescriptor{Type: "unknown"}.Action()
	assert.ErrorIs(t, err, ErrUnknownActionType)
}
