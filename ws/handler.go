package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-tycoon/dto"
	"go-tycoon/logs"
	"go-tycoon/service"
	"go-tycoon/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket 入口 /ws?gameID=&token=，鉴权和查游戏都在升级之前完成
func (h *Hub) HandleWebSocket(c *gin.Context) {
	gameID := c.Query("gameID")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少 gameID"})
		return
	}
	claims, err := utils.ParseAccessToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "令牌无效或已过期"})
		return
	}
	if _, err := h.games.GetState(c.Request.Context(), gameID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrGameNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logs.Warn("WebSocket 升级失败", zap.Error(err))
		return
	}
	pc := &dto.RealConn{Conn: conn}
	defer pc.Close()

	playerID := claims.UserID
	h.join(gameID, playerID, pc)
	defer h.leave(gameID, playerID, pc)

	h.sendTo(pc, buildMessage(dto.MsgTypeInit, map[string]interface{}{"playerID": playerID, "gameID": gameID}))
	ctx := context.Background()
	handleSyncMessage(h, ctx, pc, gameID, playerID, nil)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logs.Warn("读取消息失败", zap.String("playerID", playerID), zap.Error(err))
			}
			return
		}
		h.dispatch(ctx, pc, gameID, playerID, msg)
	}
}
