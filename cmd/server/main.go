package main

import (
	"github.com/Ajinkya-07/Freelance-Website/internal/activity"
	"github.com/Ajinkya-07/Freelance-Website/internal/config"
	"github.com/Ajinkya-07/Freelance-Website/internal/database"
	"github.com/Ajinkya-07/Freelance-Website/internal/logger"
	"github.com/Ajinkya-07/Freelance-Website/internal/router"
	"github.com/Ajinkya-07/Freelance-Website/internal/scheduler"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	setupLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化项目动态记录器
	recorder, err := activity.NewRecorder(db, cfg.Activity.PoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize activity recorder: %v", err)
	}
	defer recorder.Release()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, recorder, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// setupLogger 按配置重建默认日志器
func setupLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var l *logger.Logger
	var err error
	if cfg.Output == "file" {
		l, err = logger.NewWithFileRotation(level, logger.FileConfig{Filename: cfg.File})
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		logger.Fatal("Failed to initialize logger: %v", err)
	}
	logger.SetDefaultLogger(l)
}
