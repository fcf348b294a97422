package entities

import "fmt"

type TrainType string

const (
	Train2 TrainType = "2"
	Train3 TrainType = "3"
	Train4 TrainType = "4"
	Train5 TrainType = "5"
	Train6 TrainType = "6"
	TrainD TrainType = "D"
)

type TrainDef struct {
	Type     TrainType
	Name     string
	Cities   int
	Cost     int
	RustsOn  TrainType // 空表示永不生锈
	Quantity int
	Phase    int
}

// TrainDefs 按出场顺序排列
var TrainDefs = []TrainDef{
	{Type: Train2, Name: "2-Train", Cities: 2, Cost: 80, RustsOn: Train4, Quantity: 6, Phase: 2},
	{Type: Train3, Name: "3-Train", Cities: 3, Cost: 180, RustsOn: Train6, Quantity: 5, Phase: 3},
	{Type: Train4, Name: "4-Train", Cities: 4, Cost: 300, RustsOn: TrainD, Quantity: 4, Phase: 4},
	{Type: Train5, Name: "5-Train", Cities: 5, Cost: 450, Quantity: 3, Phase: 5},
	{Type: Train6, Name: "6-Train", Cities: 6, Cost: 630, Quantity: 2, Phase: 6},
	{Type: TrainD, Name: "Diesel", Cities: 99, Cost: 1100, Quantity: 10, Phase: 7},
}

func TrainDefOf(t TrainType) (TrainDef, error) {
	for _, def := range TrainDefs {
		if def.Type == t {
			return def, nil
		}
	}
	return TrainDef{}, fmt.Errorf("%w: %q", ErrTrainTypeUnknown, t)
}

func ParseTrainType(s string) (TrainType, error) {
	def, err := TrainDefOf(TrainType(s))
	if err != nil {
		return "", err
	}
	return def.Type, nil
}

type Train struct {
	ID      string    `json:"id"`
	Type    TrainType `json:"type"`
	Name    string    `json:"name"`
	Cities  int       `json:"cities"`
	Cost    int       `json:"cost"`
	RustsOn TrainType `json:"rustsOn,omitempty"`
	Phase   int       `json:"phase"`
	OwnerID string    `json:"ownerId,omitempty"`
	Rusted  bool      `json:"rusted"`
}

// InDepot 还在银行里可以买
func (t *Train) InDepot() bool {
	return t.OwnerID == "" && !t.Rusted
}

func (t *Train) ShouldRust(bought TrainType) bool {
	return !t.Rusted && t.RustsOn != "" && t.RustsOn == bought
}

type TrainDepot struct {
	Trains       []*Train `json:"trains"`
	CurrentPhase int      `json:"currentPhase"`
}

func NewTrainDepot() *TrainDepot {
	d := &TrainDepot{CurrentPhase: 2}
	next := 1
	for _, def := range TrainDefs {
		for i := 0; i < def.Quantity; i++ {
			d.Trains = append(d.Trains, &Train{
				ID:      fmt.Sprintf("train_%d", next),
				Type:    def.Type,
				Name:    def.Name,
				Cities:  def.Cities,
				Cost:    def.Cost,
				RustsOn: def.RustsOn,
				Phase:   def.Phase,
			})
			next++
		}
	}
	return d
}

func (d *TrainDepot) Train(id string) (*Train, error) {
	for _, t := range d.Trains {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTrainNotFound, id)
}

func (d *TrainDepot) remaining(t TrainType) int {
	n := 0
	for _, tr := range d.Trains {
		if tr.Type == t && tr.InDepot() {
			n++
		}
	}
	return n
}

// AvailableTypes 当前可买的火车类型：
// 阶段已解锁的类型，加上排在最前面、仍有库存的类型（前一种卖光后下一种上架）。
func (d *TrainDepot) AvailableTypes() []TrainDef {
	var out []TrainDef
	nextOnSale := true
	for _, def := range TrainDefs {
		left := d.remaining(def.Type)
		if left == 0 {
			continue
		}
		if def.Phase <= d.CurrentPhase || nextOnSale {
			out = append(out, def)
		}
		nextOnSale = false
	}
	return out
}

func (d *TrainDepot) IsAvailable(t TrainType) bool {
	for _, def := range d.AvailableTypes() {
		if def.Type == t {
			return true
		}
	}
	return false
}

// CheapestAvailable 第二个返回值 false 表示银行里已经没有火车
func (d *TrainDepot) CheapestAvailable() (TrainDef, bool) {
	avail := d.AvailableTypes()
	if len(avail) == 0 {
		return TrainDef{}, false
	}
	best := avail[0]
	for _, def := range avail[1:] {
		if def.Cost < best.Cost {
			best = def
		}
	}
	return best, true
}

// Buy 把一辆 t 型火车交给公司，必要时推进阶段。不处理生锈。
func (d *TrainDepot) Buy(t TrainType, companyID string) (*Train, bool, error) {
	if !d.IsAvailable(t) {
		return nil, false, fmt.Errorf("火车 %s 当前不可购买", t)
	}
	for _, tr := range d.Trains {
		if tr.Type == t && tr.InDepot() {
			tr.OwnerID = companyID
			advanced := false
			if tr.Phase > d.CurrentPhase {
				d.CurrentPhase = tr.Phase
				advanced = true
			}
			return tr, advanced, nil
		}
	}
	return nil, false, fmt.Errorf("火车 %s 已售罄", t)
}

type RustedTrain struct {
	ID          string    `json:"id"`
	Type        TrainType `json:"type"`
	FormerOwner string    `json:"formerOwner,omitempty"`
}

// Rust 所有 rusts_on == trigger 的火车生锈并脱离所属公司
func (d *TrainDepot) Rust(trigger TrainType) []RustedTrain {
	var rusted []RustedTrain
	for _, tr := range d.Trains {
		if tr.ShouldRust(trigger) {
			rusted = append(rusted, RustedTrain{ID: tr.ID, Type: tr.Type, FormerOwner: tr.OwnerID})
			tr.Rusted = true
			tr.OwnerID = ""
		}
	}
	return rusted
}

func (d *TrainDepot) OwnedBy(companyID string) []*Train {
	var out []*Train
	for _, tr := range d.Trains {
		if tr.OwnerID == companyID && !tr.Rusted {
			out = append(out, tr)
		}
	}
	return out
}
