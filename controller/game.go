package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-tycoon/dto"
	"go-tycoon/entities"
	"go-tycoon/middleware"
	"go-tycoon/service"
)

type GameController struct {
	games *service.GameManager
}

func NewGameController(games *service.GameManager) *GameController {
	return &GameController{games: games}
}

// statusOf 业务错误映射到 HTTP 状态码
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrGameStarted), errors.Is(err, entities.ErrDuplicatePlayer):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidAction), errors.Is(err, service.ErrInvalidPlayerKind),
		errors.Is(err, entities.ErrInvalidPlayerCount):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func fail(c *gin.Context, err error) {
	c.JSON(statusOf(err), gin.H{"error": err.Error()})
}

func success(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         msg,
		"data":        data,
	})
}

// CreateGame godoc
// @Summary 创建游戏
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateGameRequest true "游戏名"
// @Success 200 {object} dto.CreateGameResponse
// @Router /game/create [post]
func (gc *GameController) CreateGame(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少必要字段"})
		return
	}
	id, err := gc.games.CreateGame(c.Request.Context(), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "游戏创建成功", dto.CreateGameResponse{GameID: id})
}

// ListGames godoc
// @Summary 游戏列表
// @Tags game
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.GetGameList
// @Router /game/list [get]
func (gc *GameController) ListGames(c *gin.Context) {
	games, err := gc.games.ListGames(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "获取游戏列表失败"})
		return
	}
	success(c, "获取成功", dto.GetGameList{Games: games})
}

// GetGame godoc
// @Summary 游戏完整状态
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Success 200 {object} entities.GameState
// @Router /game/{gameID} [get]
func (gc *GameController) GetGame(c *gin.Context) {
	state, err := gc.games.GetState(c.Request.Context(), c.Param("gameID"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "获取成功", state)
}

// JoinGame godoc
// @Summary 加入游戏
// @Description 不传 playerID 时人类玩家用登录用户 id，电脑玩家随机生成
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Param body body dto.JoinGameRequest true "玩家信息"
// @Success 200 {object} dto.JoinGameResponse
// @Router /game/{gameID}/join [post]
func (gc *GameController) JoinGame(c *gin.Context) {
	var req dto.JoinGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	if req.PlayerID == "" && (req.Kind == "" || req.Kind == string(entities.PlayerHuman)) {
		req.PlayerID = middleware.UserID(c)
	}
	playerID, err := gc.games.JoinGame(c.Request.Context(), c.Param("gameID"), req)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "加入成功", dto.JoinGameResponse{PlayerID: playerID})
}

// StartGame godoc
// @Summary 开始游戏
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Success 200 {object} map[string]interface{}
// @Router /game/{gameID}/start [post]
func (gc *GameController) StartGame(c *gin.Context) {
	if err := gc.games.StartGame(c.Request.Context(), c.Param("gameID")); err != nil {
		fail(c, err)
		return
	}
	success(c, "游戏开始", nil)
}

// AvailableActions godoc
// @Summary 当前可执行的动作
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Param playerID query string false "只看该玩家的动作"
// @Success 200 {object} map[string]interface{}
// @Router /game/{gameID}/actions [get]
func (gc *GameController) AvailableActions(c *gin.Context) {
	actor, actions, err := gc.games.AvailableActions(c.Request.Context(), c.Param("gameID"), c.Query("playerID"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "获取成功", gin.H{"currentPlayer": actor, "actions": actions})
}

// ExecuteAction godoc
// @Summary 执行动作
// @Description 以登录用户身份行动，请求体为 {type, ...字段}
// @Tags game
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Param body body map[string]interface{} true "动作"
// @Success 200 {object} dto.ActionResult
// @Failure 422 {object} dto.ActionResult
// @Router /game/{gameID}/action [post]
func (gc *GameController) ExecuteAction(c *gin.Context) {
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求格式错误"})
		return
	}
	res, err := gc.games.ExecuteAction(c.Request.Context(), c.Param("gameID"), middleware.UserID(c), raw)
	if err != nil {
		fail(c, err)
		return
	}
	if !res.Success {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": res.Error, "code": res.Code, "data": res})
		return
	}
	success(c, res.Message, res)
}

// GameLog godoc
// @Summary 事件日志
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Param since query int false "只返回该序号之后的日志"
// @Success 200 {array} entities.LogEntry
// @Router /game/{gameID}/log [get]
func (gc *GameController) GameLog(c *gin.Context) {
	since, _ := strconv.Atoi(c.DefaultQuery("since", "0"))
	entries, err := gc.games.Log(c.Request.Context(), c.Param("gameID"), since)
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "获取成功", entries)
}

// Scores godoc
// @Summary 净资产排名
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Success 200 {object} map[string]interface{}
// @Router /game/{gameID}/scores [get]
func (gc *GameController) Scores(c *gin.Context) {
	scores, winner, err := gc.games.Scores(c.Request.Context(), c.Param("gameID"))
	if err != nil {
		fail(c, err)
		return
	}
	success(c, "获取成功", gin.H{"scores": scores, "winner": winner})
}

// DeleteGame godoc
// @Summary 删除游戏
// @Tags game
// @Produce json
// @Security BearerAuth
// @Param gameID path string true "游戏 ID"
// @Success 200 {object} map[string]interface{}
// @Router /game/{gameID} [delete]
func (gc *GameController) DeleteGame(c *gin.Context) {
	if err := gc.games.DeleteGame(c.Request.Context(), c.Param("gameID")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status_code": http.StatusOK,
		"msg":         "游戏删除成功",
	})
}
