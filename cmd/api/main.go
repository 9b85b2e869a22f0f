// Package main はブログサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/blogr/internal/auth"
	"github.com/yourusername/blogr/internal/config"
	"github.com/yourusername/blogr/internal/router"
	"github.com/yourusername/blogr/internal/store"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// セッション有効期間の設定
	auth.SetSessionLifetime(time.Duration(cfg.SessionLifetimeHours) * time.Hour)

	// データベースを開き、マイグレーションを適用
	db, err := store.Open(context.Background(), cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// ルーターの組み立てとサーバーの起動
	engine := router.New(cfg, db)

	addr := ":" + cfg.Port
	log.Printf("Starting blogr server on %s (mode: %s)", addr, cfg.GinMode)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
