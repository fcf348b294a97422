package entities

import "fmt"

type City struct {
	Name    string   `json:"name"`
	Revenue []int    `json:"revenue"`
	Slots   int      `json:"slots"`
	Tokens  []string `json:"tokens"`
}

// RevenueAt 阶段越高收益越高，超出表长取最后一档
func (c *City) RevenueAt(phase int) int {
	if len(c.Revenue) == 0 {
		return 0
	}
	idx := min(phase-1, len(c.Revenue)-1)
	if idx < 0 {
		idx = 0
	}
	return c.Revenue[idx]
}

func (c *City) HasFreeSlot() bool {
	return len(c.Tokens) < c.Slots
}

func (c *City) HasToken(companyID string) bool {
	for _, id := range c.Tokens {
		if id == companyID {
			return true
		}
	}
	return false
}

func (c *City) placeToken(companyID string) error {
	if !c.HasFreeSlot() {
		return fmt.Errorf("城市 %s 没有空位", c.Name)
	}
	if c.HasToken(companyID) {
		return fmt.Errorf("公司 %s 已在 %s 放置车站", companyID, c.Name)
	}
	c.Tokens = append(c.Tokens, companyID)
	return nil
}

type Terrain string

const (
	TerrainPlain    Terrain = "plain"
	TerrainMountain Terrain = "mountain"
	TerrainWater    Terrain = "water"
	TerrainOffboard Terrain = "offboard"
)

type Tile struct {
	ID          string  `json:"id"` // "A1" .. "I12"
	Row         int     `json:"row"`
	Col         int     `json:"col"`
	Terrain     Terrain `json:"terrain"`
	TerrainCost int     `json:"terrainCost"`
	TileNumber  string  `json:"tileNumber,omitempty"`
	Rotation    int     `json:"rotation"`
}

func (t *Tile) HasTrack() bool {
	return t.TileNumber != ""
}

// Buildable 水域和棋盘外不能铺轨
func (t *Tile) Buildable() bool {
	return t.Terrain != TerrainWater && t.Terrain != TerrainOffboard
}

type Board struct {
	Cities    map[string]*City `json:"cities"`
	CityOrder []string         `json:"cityOrder"`
	Tiles     map[string]*Tile `json:"tiles"`
}

func TileID(row, col int) string {
	return fmt.Sprintf("%c%d", 'A'+row, col+1)
}

func NewBoard() *Board {
	b := &Board{
		Cities: make(map[string]*City, len(CityDefs)),
		Tiles:  make(map[string]*Tile, BoardRows*BoardCols),
	}
	for _, def := range CityDefs {
		b.Cities[def.Name] = &City{
			Name:    def.Name,
			Revenue: append([]int(nil), def.Revenue...),
			Slots:   def.Slots,
			Tokens:  []string{},
		}
		b.CityOrder = append(b.CityOrder, def.Name)
	}
	for row := 0; row < BoardRows; row++ {
		for col := 0; col < BoardCols; col++ {
			id := TileID(row, col)
			b.Tiles[id] = &Tile{ID: id, Row: row, Col: col, Terrain: TerrainPlain}
		}
	}
	for _, def := range TerrainDefs {
		if t, ok := b.Tiles[def.TileID]; ok {
			t.Terrain = def.Terrain
			t.TerrainCost = def.Cost
		}
	}
	return b
}

func (b *Board) City(name string) (*City, error) {
	c, ok := b.Cities[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCityNotFound, name)
	}
	return c, nil
}

func (b *Board) Tile(id string) (*Tile, error) {
	t, ok := b.Tiles[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTileNotFound, id)
	}
	return t, nil
}

func (b *Board) PlaceToken(cityName, companyID string) error {
	c, err := b.City(cityName)
	if err != nil {
		return err
	}
	return c.placeToken(companyID)
}

func (b *Board) LayTrack(tileID, tileNumber string, rotation int) error {
	t, err := b.Tile(tileID)
	if err != nil {
		return err
	}
	if !t.Buildable() {
		return fmt.Errorf("地块 %s 不能铺轨", tileID)
	}
	if tileNumber == "" {
		tileNumber = "generic"
	}
	t.TileNumber = tileNumber
	t.Rotation = rotation
	return nil
}

// TokenableCities 公司还能放车站的城市
func (b *Board) TokenableCities(companyID string) []string {
	var out []string
	for _, name := range b.CityOrder {
		c := b.Cities[name]
		if c.HasFreeSlot() && !c.HasToken(companyID) {
			out = append(out, name)
		}
	}
	return out
}
