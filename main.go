package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-tycoon/config"
	"go-tycoon/logs"
	"go-tycoon/middleware"
	"go-tycoon/repository"
	"go-tycoon/router"
	"go-tycoon/service"
	"go-tycoon/ws"
)

// @title go-tycoon API
// @version 1.0
// @description 1889 铁路股份游戏服务
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	config.Load("")
	conf := config.Get()
	if err := logs.Init("tycoon", conf.Log); err != nil {
		panic(err)
	}
	defer logs.Sync()
	logs.Info("conf", zap.Any("server", conf.Server), zap.Any("game", conf.Game))

	store, archive := openStorage(conf)
	games := service.NewGameManager(store, archive, conf.Game)
	hub := ws.NewHub(games)

	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.AccessLog())

	// 设置 CORS 中间件，允许所有域名、所有方法、所有 header
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	router.InitRouter(r, games, hub)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go games.RunIdleSweeper(ctx)

	srv := &http.Server{Addr: conf.Server.Addr, Handler: r}
	errCh := make(chan error, 1)
	go func() {
		logs.Info("http server started", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		logs.Error("服务异常退出", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.Error("关闭 http server 失败", zap.Error(err))
	}
}

// openStorage redis 和 mysql 都是可选的，没开启时退回内存快照和空归档
func openStorage(conf config.Config) (repository.SnapshotStore, repository.Archive) {
	var store repository.SnapshotStore = repository.NewMemoryStore()
	if conf.Redis.Enabled {
		rdb, err := repository.InitRedis(conf.Redis)
		if err != nil {
			logs.Fatal("redis 初始化失败", zap.Error(err))
		}
		store = repository.NewRedisSnapshotStore(rdb)
	}

	var archive repository.Archive = repository.NopArchive{}
	if conf.MySQL.Enabled {
		db, err := repository.OpenMySQL(conf.MySQL)
		if err != nil {
			logs.Fatal("mysql 初始化失败", zap.Error(err))
		}
		archive = repository.NewMySQLArchive(db)
	}
	return store, archive
}
