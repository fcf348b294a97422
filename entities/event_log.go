package entities

import "time"

// LogEntry 追加式事件日志，持久化和审计都依赖它
type LogEntry struct {
	Seq            int            `json:"seq"`
	Type           string         `json:"type"`
	Data           map[string]any `json:"data"`
	StockRound     int            `json:"stockRound"`
	OperatingRound int            `json:"operatingRound"`
	At             time.Time      `json:"at"`
}

func (g *GameState) AddLog(eventType string, data map[string]any) LogEntry {
	if data == nil {
		data = map[string]any{}
	}
	now := time.Now()
	entry := LogEntry{
		Seq:            len(g.GameLog) + 1,
		Type:           eventType,
		Data:           data,
		StockRound:     g.StockRoundNumber,
		OperatingRound: g.OperatingRoundNumber,
		At:             now,
	}
	g.GameLog = append(g.GameLog, entry)
	g.UpdatedAt = now
	return entry
}

// LogSince 返回 seq 之后的日志
func (g *GameState) LogSince(seq int) []LogEntry {
	if seq < 0 {
		seq = 0
	}
	if seq >= len(g.GameLog) {
		return nil
	}
	return append([]LogEntry(nil), g.GameLog[seq:]...)
}
