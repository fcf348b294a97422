package entities

// 1889 四国 固定规则表
const (
	TotalShares      = 10
	BankInitialCash  = 12000
	TokensPerCompany = 3
	TokenCost        = 40
	MaxTilesPerTurn  = 2
	PresidentShares  = 2
	MinPlayers       = 2
	MaxPlayers       = 6
	BoardRows        = 9
	BoardCols        = 12
)

// CertLimits 证书上限（按玩家人数）
var CertLimits = map[int]int{2: 28, 3: 20, 4: 16, 5: 13, 6: 11}

// ParValues 可选的面值
var ParValues = []int{65, 70, 75, 80, 85, 90, 95, 100}

// StockPrices 股价阶梯，公司的 PriceIndex 指向这里
var StockPrices = []int{
	0, 5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60, 65, 70, 75, 80, 85, 90, 95, 100,
	110, 120, 130, 140, 150, 160, 170, 180, 190, 200,
	220, 240, 260, 280, 300,
	330, 360, 400,
}

// operatingRoundsByPhase 每个股票轮之后的运营轮数量
var operatingRoundsByPhase = map[int]int{2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 3}

type CompanyDef struct {
	ID    string
	Name  string
	Color string
}

var CompanyDefs = []CompanyDef{
	{ID: "AR", Name: "Awa Railroad", Color: "brown"},
	{ID: "IR", Name: "Iyo Railway", Color: "orange"},
	{ID: "SR", Name: "Sanuki Railway", Color: "green"},
	{ID: "KO", Name: "Kotohira Railway", Color: "blue"},
	{ID: "TR", Name: "Tosa Railway", Color: "red"},
	{ID: "KU", Name: "Takamatsu Railway", Color: "yellow"},
	{ID: "UR", Name: "Uwajima Railway", Color: "purple"},
}

type CityDef struct {
	Name    string
	Revenue []int
	Slots   int
}

var CityDefs = []CityDef{
	{Name: "Takamatsu", Revenue: []int{20, 30, 40, 50}, Slots: 2},
	{Name: "Kotohira", Revenue: []int{10, 20, 30, 40}, Slots: 1},
	{Name: "Marugame", Revenue: []int{10, 20, 30, 40}, Slots: 2},
	{Name: "Matsuyama", Revenue: []int{20, 30, 40, 50}, Slots: 2},
	{Name: "Uwajima", Revenue: []int{10, 20, 30, 40}, Slots: 1},
	{Name: "Kochi", Revenue: []int{20, 30, 40, 50}, Slots: 2},
	{Name: "Tokushima", Revenue: []int{20, 30, 40, 50}, Slots: 2},
	{Name: "Anan", Revenue: []int{10, 20, 30, 40}, Slots: 1},
	{Name: "Imabari", Revenue: []int{10, 20, 30, 40}, Slots: 1},
	{Name: "Niihama", Revenue: []int{10, 20, 30, 40}, Slots: 1},
}

// StartingCash 起始资金：2-4 人 420，5-6 人 390
func StartingCash(playerCount int) int {
	if playerCount >= 5 {
		return 390
	}
	return 420
}

// TrainLimit 公司持有火车上限随阶段收紧
func TrainLimit(phase int) int {
	switch {
	case phase <= 3:
		return 4
	case phase <= 5:
		return 3
	default:
		return 2
	}
}

func OperatingRoundsFor(phase int) int {
	if n, ok := operatingRoundsByPhase[phase]; ok {
		return n
	}
	if phase < 2 {
		return 1
	}
	return 3
}

func IsParValue(v int) bool {
	for _, p := range ParValues {
		if p == v {
			return true
		}
	}
	return false
}

// PriceIndexOf 返回股价在阶梯上的位置，不存在返回 -1
func PriceIndexOf(price int) int {
	for i, p := range StockPrices {
		if p == price {
			return i
		}
	}
	return -1
}

type TerrainDef struct {
	TileID  string
	Terrain Terrain
	Cost    int
}

// TerrainDefs 非平原地块，其余都是平原且免费
var TerrainDefs = []TerrainDef{
	{TileID: "A1", Terrain: TerrainOffboard},
	{TileID: "A12", Terrain: TerrainOffboard},
	{TileID: "I1", Terrain: TerrainOffboard},
	{TileID: "I12", Terrain: TerrainOffboard},
	{TileID: "B6", Terrain: TerrainWater},
	{TileID: "C7", Terrain: TerrainWater},
	{TileID: "D5", Terrain: TerrainMountain, Cost: 80},
	{TileID: "E6", Terrain: TerrainMountain, Cost: 80},
	{TileID: "E7", Terrain: TerrainMountain, Cost: 80},
	{TileID: "F4", Terrain: TerrainMountain, Cost: 80},
	{TileID: "G8", Terrain: TerrainMountain, Cost: 120},
	{TileID: "H9", Terrain: TerrainMountain, Cost: 120},
}
