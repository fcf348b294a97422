package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"go-tycoon/config"
	"go-tycoon/repository"
	"go-tycoon/service"
	"go-tycoon/ws"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t *testing.T
	r *gin.Engine
}

func newClient(t *testing.T) *apiClient {
	gin.SetMode(gin.TestMode)
	games := service.NewGameManager(repository.NewMemoryStore(), nil, config.Default().Game)
	r := gin.New()
	InitRouter(r, games, ws.NewHub(games))
	return &apiClient{t: t, r: r}
}

func (c *apiClient) do(method, path, token string, body interface{}) (int, map[string]interface{}) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)

	var out map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out
}

func (c *apiClient) login(userID string) string {
	c.t.Helper()
	code, body := c.do(http.MethodPost, "/auth/token", "", map[string]string{"userID": userID})
	require.Equal(c.t, http.StatusOK, code)
	data := body["data"].(map[string]interface{})
	return data["accessToken"].(string)
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "响应缺少 data: %v", body)
	return d
}

func TestAPI_建局到行动的完整流程(t *testing.T) {
	c := newClient(t)
	alice, bob := c.login("alice"), c.login("bob")

	code, body := c.do(http.MethodPost, "/game/create", alice, map[string]string{"name": "周末局"})
	require.Equal(t, http.StatusOK, code)
	gameID := data(t, body)["gameID"].(string)

	for _, token := range []string{alice, bob} {
		code, body = c.do(http.MethodPost, "/game/"+gameID+"/join", token, map[string]string{"playerName": "x"})
		require.Equal(t, http.StatusOK, code, body)
	}
	code, body = c.do(http.MethodPost, "/game/"+gameID+"/join", alice, map[string]string{"playerName": "again"})
	assert.Equal(t, http.StatusConflict, code, "重复加入")

	code, _ = c.do(http.MethodPost, "/game/"+gameID+"/start", alice, nil)
	require.Equal(t, http.StatusOK, code)

	code, body = c.do(http.MethodGet, "/game/"+gameID+"/actions", bob, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alice", data(t, body)["currentPlayer"])

	code, body = c.do(http.MethodPost, "/game/"+gameID+"/action", bob, map[string]interface{}{"type": "pass"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "NOT_YOUR_TURN", body["code"])

	code, body = c.do(http.MethodPost, "/game/"+gameID+"/action", alice,
		map[string]interface{}{"type": "start_company", "company_id": "AR", "par_value": 65})
	require.Equal(t, http.StatusOK, code, body)
	assert.Equal(t, true, data(t, body)["success"])

	code, body = c.do(http.MethodGet, "/game/"+gameID, alice, nil)
	require.Equal(t, http.StatusOK, code)
	companies := data(t, body)["companies"].(map[string]interface{})
	assert.EqualValues(t, 650, companies["AR"].(map[string]interface{})["treasury"])

	code, body = c.do(http.MethodGet, "/game/"+gameID+"/log?since=2", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["data"])

	code, body = c.do(http.MethodGet, "/game/"+gameID+"/scores", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, data(t, body)["scores"], 2)

	code, body = c.do(http.MethodGet, "/game/list", alice, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, data(t, body)["games"], 1)

	code, _ = c.do(http.MethodDelete, "/game/"+gameID, alice, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = c.do(http.MethodGet, "/game/"+gameID, alice, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_电脑玩家加入后自动行动(t *testing.T) {
	c := newClient(t)
	alice := c.login("alice")

	_, body := c.do(http.MethodPost, "/game/create", alice, map[string]string{"name": "人机"})
	gameID := data(t, body)["gameID"].(string)
	code, body := c.do(http.MethodPost, "/game/"+gameID+"/join", alice, map[string]string{"playerName": "bot", "kind": "rule_based_ai"})
	require.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, "alice", data(t, body)["playerID"])
	code, _ = c.do(http.MethodPost, "/game/"+gameID+"/join", alice, map[string]string{"playerName": "alice"})
	require.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodPost, "/game/"+gameID+"/start", alice, nil)
	require.Equal(t, http.StatusOK, code)

	_, body = c.do(http.MethodGet, "/game/"+gameID+"/actions", alice, nil)
	assert.Equal(t, "alice", data(t, body)["currentPlayer"])
}

func TestAPI_错误响应(t *testing.T) {
	c := newClient(t)
	alice := c.login("alice")

	code, _ := c.do(http.MethodGet, "/game/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = c.do(http.MethodGet, "/game/nope", alice, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodPost, "/game/create", alice, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)

	_, body := c.do(http.MethodPost, "/game/create", alice, map[string]string{"name": "g"})
	gameID := data(t, body)["gameID"].(string)

	code, _ = c.do(http.MethodPost, "/game/"+gameID+"/start", alice, nil)
	assert.Equal(t, http.StatusBadRequest, code, "人数不够")

	code, _ = c.do(http.MethodPost, "/game/"+gameID+"/action", alice, map[string]interface{}{"type": "teleport"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = c.do(http.MethodPost, "/game/"+gameID+"/join", alice, map[string]string{"kind": "alien"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_刷新令牌(t *testing.T) {
	c := newClient(t)
	code, body := c.do(http.MethodPost, "/auth/token", "", map[string]string{"userID": "carol"})
	require.Equal(t, http.StatusOK, code)
	refresh := data(t, body)["refreshToken"].(string)

	code, body = c.do(http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": refresh})
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, data(t, body)["accessToken"])

	code, _ = c.do(http.MethodPost, "/auth/refresh", "", map[string]string{"refreshToken": "bad"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_Swagger文档(t *testing.T) {
	c := newClient(t)
	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	w := httptest.NewRecorder()
	c.r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/game/{gameID}/action")
}
