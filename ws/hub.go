// Package ws 游戏房间的长连接：推送状态变化，接收玩家动作
package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-tycoon/dto"
	"go-tycoon/logs"
	"go-tycoon/service"
)

type Hub struct {
	games *service.GameManager

	mu    sync.Mutex // 同时保护 rooms 和所有连接的写
	rooms map[string][]dto.PlayerConn
}

// NewHub 创建后自动订阅游戏状态变化
func NewHub(games *service.GameManager) *Hub {
	h := &Hub{games: games, rooms: make(map[string][]dto.PlayerConn)}
	games.Subscribe(h.OnUpdate)
	return h
}

// 构建一条统一格式的消息（type + data）
func buildMessage(msgType string, data map[string]interface{}) []byte {
	if data == nil {
		data = make(map[string]interface{})
	}
	data["type"] = msgType
	msg, err := json.Marshal(data)
	if err != nil {
		logs.Error("消息序列化失败", zap.String("type", msgType), zap.Error(err))
		return []byte(`{"type":"error","message":"消息序列化失败"}`)
	}
	return msg
}

func syncMessage(u service.Update) []byte {
	data := map[string]interface{}{
		"gameID":        u.GameID,
		"state":         u.State,
		"currentPlayer": u.Actor,
		"actions":       u.Actions,
	}
	if u.Result != nil {
		data["result"] = u.Result
	}
	return buildMessage(dto.MsgTypeSync, data)
}

// OnUpdate 广播给房间内所有在线玩家
func (h *Hub) OnUpdate(u service.Update) {
	h.broadcastToRoom(u.GameID, syncMessage(u))
}

// 广播消息给房间内所有连接成功的玩家，写失败的连接标记为离线
func (h *Hub) broadcastToRoom(gameID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, pc := range h.rooms[gameID] {
		if !pc.Online {
			continue
		}
		if err := pc.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logs.Warn("广播失败，断开连接", zap.String("gameID", gameID), zap.String("playerID", pc.PlayerID), zap.Error(err))
			pc.Conn.Close()
			h.rooms[gameID][i].Online = false
		}
	}
}

func (h *Hub) sendTo(conn dto.ConnInterface, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
		logs.Warn("发送消息失败", zap.Error(err))
	}
}

// join 同一玩家重连时替换旧连接
func (h *Hub) join(gameID, playerID string, conn dto.ConnInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, pc := range h.rooms[gameID] {
		if pc.PlayerID == playerID {
			if pc.Online && pc.Conn != conn {
				pc.Conn.Close()
			}
			h.rooms[gameID][i].Conn = conn
			h.rooms[gameID][i].Online = true
			logs.Info("玩家重连", zap.String("gameID", gameID), zap.String("playerID", playerID))
			return
		}
	}
	h.rooms[gameID] = append(h.rooms[gameID], dto.PlayerConn{PlayerID: playerID, Conn: conn, Online: true})
	logs.Info("玩家进入房间", zap.String("gameID", gameID), zap.String("playerID", playerID))
}

// leave 只在连接仍是当前连接时才标记离线，避免重连后被旧连接覆盖
func (h *Hub) leave(gameID, playerID string, conn dto.ConnInterface) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, pc := range h.rooms[gameID] {
		if pc.PlayerID == playerID && pc.Conn == conn {
			h.rooms[gameID][i].Online = false
			logs.Info("玩家离开房间", zap.String("gameID", gameID), zap.String("playerID", playerID))
		}
	}
}

// OnlinePlayers 房间内在线人数
func (h *Hub) OnlinePlayers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, pc := range h.rooms[gameID] {
		if pc.Online {
			n++
		}
	}
	return n
}

type messageHandler func(h *Hub, ctx context.Context, conn dto.ConnInterface, gameID, playerID string, msgMap map[string]interface{})

var messageHandlers = map[string]messageHandler{
	dto.MsgTypeAction: handleActionMessage,
	dto.MsgTypeSync:   handleSyncMessage,
}

// handleActionMessage 成功的结果随广播下发，失败只回给发送者
func handleActionMessage(h *Hub, ctx context.Context, conn dto.ConnInterface, gameID, playerID string, msgMap map[string]interface{}) {
	raw, ok := msgMap["action"].(map[string]interface{})
	if !ok {
		h.sendTo(conn, buildMessage(dto.MsgTypeError, map[string]interface{}{"message": "缺少 action 字段"}))
		return
	}
	res, err := h.games.ExecuteAction(ctx, gameID, playerID, raw)
	if err != nil {
		h.sendTo(conn, buildMessage(dto.MsgTypeError, map[string]interface{}{"message": err.Error()}))
		return
	}
	if !res.Success {
		h.sendTo(conn, buildMessage(dto.MsgTypeResult, map[string]interface{}{"result": res}))
	}
}

func handleSyncMessage(h *Hub, ctx context.Context, conn dto.ConnInterface, gameID, playerID string, msgMap map[string]interface{}) {
	state, err := h.games.GetState(ctx, gameID)
	if err != nil {
		h.sendTo(conn, buildMessage(dto.MsgTypeError, map[string]interface{}{"message": err.Error()}))
		return
	}
	actor, actions, err := h.games.AvailableActions(ctx, gameID, "")
	if err != nil {
		h.sendTo(conn, buildMessage(dto.MsgTypeError, map[string]interface{}{"message": err.Error()}))
		return
	}
	h.sendTo(conn, syncMessage(service.Update{GameID: gameID, State: state, Actor: actor, Actions: actions}))
}

// dispatch 处理一条客户端消息
func (h *Hub) dispatch(ctx context.Context, conn dto.ConnInterface, gameID, playerID string, msg []byte) {
	msgMap := make(map[string]interface{})
	if err := json.Unmarshal(msg, &msgMap); err != nil {
		logs.Warn("消息解析失败", zap.String("playerID", playerID), zap.Error(err))
		h.sendTo(conn, buildMessage(dto.MsgTypeError, map[string]interface{}{"message": "消息格式错误"}))
		return
	}
	msgType, _ := msgMap["type"].(string)
	handler, found := messageHandlers[msgType]
	if !found {
		logs.Warn("未知的消息类型", zap.String("type", msgType))
		h.sendTo(conn, buildMessage(dto.MsgTypeError, map[string]interface{}{"message": "未知的消息类型: " + msgType}))
		return
	}
	handler(h, ctx, conn, gameID, playerID, msgMap)
}
