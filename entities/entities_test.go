package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, ids ...string) *GameState {
	t.Helper()
	g := NewGameState("g1")
	for _, id := range ids {
		require.NoError(t, g.AddPlayer(NewPlayer(id, "", "")))
	}
	require.NoError(t, g.Initialize())
	return g
}

func TestTables(t *testing.T) {
	assert.Equal(t, 28, CertLimits[2])
	assert.Equal(t, 11, CertLimits[6])
	assert.True(t, IsParValue(65))
	assert.False(t, IsParValue(60))
	assert.Equal(t, 13, PriceIndexOf(65))
	assert.Equal(t, -1, PriceIndexOf(105))
	assert.Equal(t, 400, StockPrices[len(StockPrices)-1])

	for phase, want := range map[int]int{2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 3} {
		assert.Equal(t, want, OperatingRoundsFor(phase), "phase %d", phase)
	}
	assert.Equal(t, 4, TrainLimit(3))
	assert.Equal(t, 3, TrainLimit(5))
	assert.Equal(t, 2, TrainLimit(7))
}

func TestInitialize(t *testing.T) {
	g := newGame(t, "a", "b", "c", "d")
	assert.Equal(t, PhaseStockRound, g.Phase)
	assert.Len(t, g.Companies, len(CompanyDefs))
	assert.Len(t, g.TrainDepot.Trains, 30)
	assert.Equal(t, "train_1", g.TrainDepot.Trains[0].ID)
	assert.True(t, g.Players["a"].PriorityDeal)
	assert.Equal(t, BankInitialCash, g.TotalCash())
	assert.Equal(t, "game_start", g.GameLog[0].Type)

	assert.ErrorIs(t, g.Initialize(), ErrGameAlreadyStarted)
	assert.ErrorIs(t, g.AddPlayer(NewPlayer("e", "", "")), ErrGameAlreadyStarted)
}

func TestAddPlayer_人数上限(t *testing.T) {
	g := NewGameState("g1")
	for _, id := range []string{"1", "2", "3", "4", "5", "6"} {
		require.NoError(t, g.AddPlayer(NewPlayer(id, "", "")))
	}
	assert.ErrorIs(t, g.AddPlayer(NewPlayer("7", "", "")), ErrInvalidPlayerCount)
}

func TestLookup(t *testing.T) {
	g := newGame(t, "a", "b")
	_, err := g.Player("zz")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
	_, err = g.Company("zz")
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	_, err = g.StockMarket.Stock("zz")
	assert.ErrorIs(t, err, ErrStockNotFound)
	_, err = g.TrainDepot.Train("train_999")
	assert.ErrorIs(t, err, ErrTrainNotFound)
	_, err = ParseTrainType("8")
	assert.ErrorIs(t, err, ErrTrainTypeUnknown)
	_, err = g.Board.City("Osaka")
	assert.ErrorIs(t, err, ErrCityNotFound)
}

func TestStockMarket_股份守恒(t *testing.T) {
	g := newGame(t, "a", "b")
	a, b := g.Players["a"], g.Players["b"]
	m := g.StockMarket

	require.NoError(t, m.BuyFromIPO("AR", a, 2))
	require.NoError(t, m.BuyFromIPO("AR", b, 3))
	require.NoError(t, m.SellToMarket("AR", b, 2))
	require.NoError(t, m.BuyFromMarket("AR", a, 1))

	s, err := m.Stock("AR")
	require.NoError(t, err)
	assert.Equal(t, 5, s.IPOShares)
	assert.Equal(t, 1, s.MarketShares)
	assert.Equal(t, 3, s.SharesOf("a"))
	assert.Equal(t, 1, s.SharesOf("b"))
	assert.Equal(t, TotalShares, s.Total())
	assert.Equal(t, 3, a.Shares("AR"))

	assert.Error(t, m.BuyFromMarket("AR", a, 2))
	assert.Error(t, m.SellToMarket("AR", b, 2))
	assert.Error(t, m.BuyFromIPO("AR", a, 6))
	require.NoError(t, m.SellToMarket("AR", b, 1))
	assert.NotContains(t, b.Stocks, "AR")
}

func TestCertificateCount_总裁证书(t *testing.T) {
	g := newGame(t, "a", "b")
	a := g.Players["a"]
	require.NoError(t, g.StockMarket.BuyFromIPO("AR", a, 4))
	g.Companies["AR"].PresidentID = "a"
	require.NoError(t, g.StockMarket.BuyFromIPO("IR", a, 1))
	assert.Equal(t, 1+2+1, g.CertificateCount("a"))
	assert.Equal(t, 0, g.CertificateCount("b"))
	assert.Equal(t, 0, g.CertificateCount("nobody"))
}

func TestUpdatePresident(t *testing.T) {
	g := newGame(t, "a", "b", "c")
	c := g.Companies["AR"]
	c.PresidentID = "a"
	require.NoError(t, g.StockMarket.BuyFromIPO("AR", g.Players["a"], 2))
	require.NoError(t, g.StockMarket.BuyFromIPO("AR", g.Players["b"], 2))
	require.NoError(t, g.StockMarket.BuyFromIPO("AR", g.Players["c"], 2))

	_, changed := g.UpdatePresident("AR")
	assert.False(t, changed, "平手保持现任")

	require.NoError(t, g.StockMarket.SellToMarket("AR", g.Players["a"], 1))
	next, changed := g.UpdatePresident("AR")
	assert.True(t, changed)
	assert.Equal(t, "b", next, "平手按座位顺序")
	assert.Equal(t, "president_change", g.GameLog[len(g.GameLog)-1].Type)
}

func TestCompany_股价移动(t *testing.T) {
	c := NewCompany(CompanyDefs[0])
	c.PriceIndex = len(StockPrices) - 1
	c.MovePriceUp()
	assert.Equal(t, 400, c.StockPrice())

	c.PriceIndex = 1
	assert.False(t, c.MovePriceDown())
	assert.Equal(t, 0, c.StockPrice())
	assert.False(t, c.MovePriceDown())

	assert.Equal(t, 0, c.NextTokenCost())
	c.TokensRemaining--
	assert.Equal(t, TokenCost, c.NextTokenCost())
}

func TestTrainDepot_可购买型号(t *testing.T) {
	d := NewTrainDepot()
	assert.Equal(t, []TrainType{Train2}, types(d.AvailableTypes()))

	for i := 0; i < 6; i++ {
		_, _, err := d.Buy(Train2, "AR")
		require.NoError(t, err)
	}
	assert.Equal(t, []TrainType{Train3}, types(d.AvailableTypes()))
	_, _, err := d.Buy(Train4, "AR")
	assert.Error(t, err)

	tr, advanced, err := d.Buy(Train3, "AR")
	require.NoError(t, err)
	assert.True(t, advanced)
	assert.Equal(t, "AR", tr.OwnerID)
	assert.Equal(t, 3, d.CurrentPhase)

	rusted := d.Rust(Train4)
	assert.Len(t, rusted, 6)
	assert.Len(t, d.OwnedBy("AR"), 1)
	assert.Empty(t, d.Rust(Train4), "已生锈的不会重复生锈")

	cheapest, ok := d.CheapestAvailable()
	require.True(t, ok)
	assert.Equal(t, Train3, cheapest.Type)
}

func types(defs []TrainDef) []TrainType {
	out := make([]TrainType, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.Type)
	}
	return out
}

func TestBoard(t *testing.T) {
	b := NewBoard()
	assert.Len(t, b.Tiles, BoardRows*BoardCols)
	assert.Equal(t, "A1", TileID(0, 0))
	assert.Equal(t, "I12", TileID(8, 11))

	require.NoError(t, b.PlaceToken("Kotohira", "AR"))
	assert.Error(t, b.PlaceToken("Kotohira", "IR"), "单槽城市已满")
	city, err := b.City("Kotohira")
	require.NoError(t, err)
	assert.True(t, city.HasToken("AR"))
	assert.NotContains(t, b.TokenableCities("IR"), "Kotohira")

	assert.Error(t, b.LayTrack("B6", "", 0))
	require.NoError(t, b.LayTrack("B2", "", 3))
	tile, err := b.Tile("B2")
	require.NoError(t, err)
	assert.True(t, tile.HasTrack())
	assert.Equal(t, "generic", tile.TileNumber)

	city, err = b.City("Takamatsu")
	require.NoError(t, err)
	assert.Equal(t, 30, city.RevenueAt(2))
	assert.Equal(t, 50, city.RevenueAt(7))
	assert.Equal(t, 20, city.RevenueAt(0))
}

func TestScores_按净资产排名(t *testing.T) {
	g := newGame(t, "a", "b")
	c := g.Companies["AR"]
	c.PriceIndex = PriceIndexOf(100)
	require.NoError(t, g.StockMarket.BuyFromIPO("AR", g.Players["b"], 2))

	scores := g.Scores()
	require.Len(t, scores, 2)
	assert.Equal(t, "b", scores[0].PlayerID)
	assert.Equal(t, 420+200, scores[0].NetWorth)
	assert.Equal(t, 2, scores[1].Rank)
}

func TestCheckBankBroken(t *testing.T) {
	g := newGame(t, "a", "b")
	assert.False(t, g.CheckBankBroken())
	g.BankPaysPlayer(g.Players["a"], g.BankCash)
	assert.True(t, g.CheckBankBroken())
	assert.Equal(t, PhaseGameEnd, g.Phase)
	assert.Equal(t, "a", g.GameLog[len(g.GameLog)-1].Data["winner"])
}

func TestRuleError(t *testing.T) {
	err := Reject(CodeCertLimit, "上限 %d", 28)
	assert.ErrorIs(t, err, ErrCertLimit)
	assert.NotErrorIs(t, err, ErrNotYourTurn)
	assert.Equal(t, "上限 28", err.Error())

	var re *RuleError
	require.True(t, errors.As(error(err), &re))
	assert.Equal(t, CodeCertLimit, re.Code)
}

func TestLogSince(t *testing.T) {
	g := newGame(t, "a", "b")
	n := len(g.GameLog)
	g.AddLog("custom", nil)
	entries := g.LogSince(n)
	require.Len(t, entries, 1)
	assert.Equal(t, n+1, entries[0].Seq)
	assert.Equal(t, 1, entries[0].StockRound)
	assert.Nil(t, g.LogSince(n+1))
}
