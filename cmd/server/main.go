package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mirrormood/internal/config"
	"github.com/mirrormood/internal/db"
	"github.com/mirrormood/internal/logger"
	"github.com/mirrormood/internal/router"
)

func main() {
	cfg := config.Load()

	// 初始化日志
	if err := logger.Init(cfg.LogDir); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		logger.Log.Fatalw("failed to initialize database", "error", err)
	}

	// 按需创建超级管理员账号
	if err := db.EnsureUser(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		logger.Log.Fatalw("failed to ensure super root user", "error", err)
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg.SessionSecret)
	logger.Log.Infow("server starting", "addr", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Log.Fatalw("failed to run server", "error", err)
	}
}
