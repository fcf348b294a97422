package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go-tycoon/config"
	"go-tycoon/dto"
	"go-tycoon/repository"
	"go-tycoon/service"
	"go-tycoon/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu     sync.Mutex
	msgs   [][]byte
	fail   bool
	closed bool
}

func (f *fakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("broken pipe")
	}
	f.msgs = append(f.msgs, data)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) last(t *testing.T) map[string]interface{} {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.msgs)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(f.msgs[len(f.msgs)-1], &out))
	return out
}

func newHub(t *testing.T) (*Hub, *service.GameManager, string) {
	t.Helper()
	cfg := config.Default().Game
	games := service.NewGameManager(repository.NewMemoryStore(), nil, cfg)
	h := NewHub(games)

	ctx := context.Background()
	id, err := games.CreateGame(ctx, "ws")
	require.NoError(t, err)
	for _, pid := range []string{"p1", "p2"} {
		_, err := games.JoinGame(ctx, id, dto.JoinGameRequest{PlayerName: pid, PlayerID: pid})
		require.NoError(t, err)
	}
	return h, games, id
}

func TestHub_状态变化广播给在线玩家(t *testing.T) {
	h, games, id := newHub(t)
	c1, c2 := &fakeConn{}, &fakeConn{}
	h.join(id, "p1", c1)
	h.join(id, "p2", c2)

	require.NoError(t, games.StartGame(context.Background(), id))

	for _, c := range []*fakeConn{c1, c2} {
		msg := c.last(t)
		assert.Equal(t, dto.MsgTypeSync, msg["type"])
		assert.Equal(t, "p1", msg["currentPlayer"])
		assert.NotEmpty(t, msg["actions"])
	}
	assert.Equal(t, 2, h.OnlinePlayers(id))
}

func TestHub_写失败的连接标记离线(t *testing.T) {
	h, games, id := newHub(t)
	good, bad := &fakeConn{}, &fakeConn{fail: true}
	h.join(id, "p1", good)
	h.join(id, "p2", bad)

	require.NoError(t, games.StartGame(context.Background(), id))

	assert.True(t, bad.closed)
	assert.Equal(t, 1, h.OnlinePlayers(id))
}

func TestHub_重连替换旧连接(t *testing.T) {
	h, _, id := newHub(t)
	old, fresh := &fakeConn{}, &fakeConn{}
	h.join(id, "p1", old)
	h.join(id, "p1", fresh)
	assert.True(t, old.closed)
	assert.Equal(t, 1, h.OnlinePlayers(id))

	h.leave(id, "p1", old)
	assert.Equal(t, 1, h.OnlinePlayers(id), "旧连接退出不影响新连接")
	h.leave(id, "p1", fresh)
	assert.Equal(t, 0, h.OnlinePlayers(id))
}

func TestDispatch_非法动作只回给发送者(t *testing.T) {
	h, games, id := newHub(t)
	c1, c2 := &fakeConn{}, &fakeConn{}
	h.join(id, "p1", c1)
	h.join(id, "p2", c2)
	require.NoError(t, games.StartGame(context.Background(), id))
	before := len(c1.msgs)

	h.dispatch(context.Background(), c2, id, "p2", []byte(`{"type":"action","action":{"type":"pass"}}`))

	msg := c2.last(t)
	assert.Equal(t, dto.MsgTypeResult, msg["type"])
	result := msg["result"].(map[string]interface{})
	assert.Equal(t, false, result["success"])
	assert.Equal(t, "NOT_YOUR_TURN", result["code"])
	assert.Len(t, c1.msgs, before)
}

func TestDispatch_合法动作广播结果(t *testing.T) {
	h, games, id := newHub(t)
	c1, c2 := &fakeConn{}, &fakeConn{}
	h.join(id, "p1", c1)
	h.join(id, "p2", c2)
	require.NoError(t, games.StartGame(context.Background(), id))

	h.dispatch(context.Background(), c1, id, "p1", []byte(`{"type":"action","action":{"type":"pass"}}`))

	msg := c2.last(t)
	assert.Equal(t, dto.MsgTypeSync, msg["type"])
	assert.Equal(t, "p2", msg["currentPlayer"])
	result := msg["result"].(map[string]interface{})
	assert.Equal(t, true, result["success"])
}

func TestDispatch_格式错误(t *testing.T) {
	h, _, id := newHub(t)
	c := &fakeConn{}
	h.join(id, "p1", c)

	h.dispatch(context.Background(), c, id, "p1", []byte(`not json`))
	assert.Equal(t, dto.MsgTypeError, c.last(t)["type"])

	h.dispatch(context.Background(), c, id, "p1", []byte(`{"type":"dance"}`))
	assert.Contains(t, c.last(t)["message"], "dance")

	h.dispatch(context.Background(), c, id, "p1", []byte(`{"type":"action"}`))
	assert.Equal(t, "缺少 action 字段", c.last(t)["message"])
}

func TestHandleWebSocket_真实连接收到初始化和同步(t *testing.T) {
	h, games, id := newHub(t)
	require.NoError(t, games.StartGame(context.Background(), id))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := utils.GenerateAccessToken("p1")
	require.NoError(t, err)
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?gameID=" + id + "&token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	read := func() map[string]interface{} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var msg map[string]interface{}
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	}

	first := read()
	assert.Equal(t, dto.MsgTypeInit, first["type"])
	assert.Equal(t, "p1", first["playerID"])
	assert.Equal(t, dto.MsgTypeSync, read()["type"])

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"action","action":{"type":"pass"}}`)))
	msg := read()
	assert.Equal(t, dto.MsgTypeSync, msg["type"])
	assert.Equal(t, "p2", msg["currentPlayer"])
}

func TestHandleWebSocket_鉴权和游戏校验(t *testing.T) {
	h, _, id := newHub(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", h.HandleWebSocket)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?gameID="+id+"&token=bad", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateAccessToken("p1")
	require.NoError(t, err)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?gameID=missing&token="+token, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
