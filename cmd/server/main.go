package main

import (
	"github.com/blues/cfl/internal/archive"
	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/database"
	"github.com/blues/cfl/internal/ledger"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/router"
	"github.com/blues/cfl/internal/task"
	"github.com/blues/cfl/internal/transfer"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithRotation(level, logger.RotationConfig{Filename: cfg.Log.File})
		if err != nil {
			logger.Fatal("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化出账通道
	ethClient, err := transfer.Init(cfg.Chain)
	if err != nil {
		logger.Fatal("Failed to initialize transfer client: %v", err)
	}

	// 初始化事件归档
	archiver, err := archive.New(db, cfg.Archive)
	if err != nil {
		logger.Fatal("Failed to initialize archiver: %v", err)
	}
	archiver.Start()
	defer archiver.Stop()

	// 初始化账本状态机
	store := ledger.NewStore(cfg.Ledger.Owner, cfg.Ledger.FeeBps, cfg.Ledger.FeeRecipient)
	machine := ledger.NewMachine(store, ethClient, archiver, cfg.Ledger.MinGoalAmount, nil)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(machine)

	// 启动定时任务
	manager := task.Start(machine, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
