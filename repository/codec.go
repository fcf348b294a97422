package repository

import (
	"encoding/json"
	"fmt"

	"go-tycoon/entities"
)

func encodeState(g *entities.GameState) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("游戏 %s 序列化失败: %w", g.ID, err)
	}
	return data, nil
}

func decodeState(data []byte) (*entities.GameState, error) {
	var g entities.GameState
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("游戏快照反序列化失败: %w", err)
	}
	if g.Players == nil {
		g.Players = make(map[string]*entities.Player)
	}
	if g.Companies == nil {
		g.Companies = make(map[string]*entities.Company)
	}
	if g.PassedPlayers == nil {
		g.PassedPlayers = make(map[string]bool)
	}
	return &g, nil
}

// Clone 深拷贝，推送给监听者的状态不能和引擎共享
func Clone(g *entities.GameState) (*entities.GameState, error) {
	data, err := encodeState(g)
	if err != nil {
		return nil, err
	}
	return decodeState(data)
}
