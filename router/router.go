package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go-tycoon/controller"
	_ "go-tycoon/docs"
	"go-tycoon/middleware"
	"go-tycoon/service"
	"go-tycoon/ws"
)

func InitRouter(r *gin.Engine, games *service.GameManager, hub *ws.Hub) {
	auth := r.Group("/auth")
	{
		auth.POST("/token", controller.IssueToken)
		auth.POST("/refresh", controller.RefreshToken)
	}

	// 游戏接口路由
	gc := controller.NewGameController(games)
	api := r.Group("/game", middleware.JWTAuth())
	{
		api.POST("/create", gc.CreateGame)
		api.GET("/list", gc.ListGames)
		api.GET("/:gameID", gc.GetGame)
		api.DELETE("/:gameID", gc.DeleteGame)
		api.POST("/:gameID/join", gc.JoinGame)
		api.POST("/:gameID/start", gc.StartGame)
		api.GET("/:gameID/actions", gc.AvailableActions)
		api.POST("/:gameID/action", gc.ExecuteAction)
		api.GET("/:gameID/log", gc.GameLog)
		api.GET("/:gameID/scores", gc.Scores)
	}

	// WebSocket 路由，令牌走查询参数
	r.GET("/ws", hub.HandleWebSocket)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
