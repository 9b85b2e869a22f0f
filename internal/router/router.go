// Package router はミドルウェアとルーティングの配線をまとめます。
package router

import (
	"database/sql"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/blogr/internal/auth"
	"github.com/yourusername/blogr/internal/blog"
	"github.com/yourusername/blogr/internal/config"
	"github.com/yourusername/blogr/internal/store"
	"github.com/yourusername/blogr/internal/web"
)

// New は全ミドルウェアとルートを配線したginエンジンを作成します。
func New(cfg *config.Config, db *sql.DB) *gin.Engine {
	router := gin.Default()

	// セッションストアの設定（クッキー署名鍵は必須）
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   auth.SessionMaxAgeSeconds(),
		HttpOnly: true,
		Secure:   cfg.GinMode == gin.ReleaseMode,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions(auth.SessionCookieName, sessionStore))

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	router.Use(web.RequestID())

	// テンプレートと静的ファイルの登録
	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.StaticFS())

	users := store.NewUserStore(db)
	posts := store.NewPostStore(db)

	// リクエストごとにセッションからログイン済みユーザーを解決する
	router.Use(auth.LoadUser(users))

	hasher := auth.NewHasher(cfg.BcryptCost)
	authHandler := auth.NewHandler(users, hasher)
	blogHandler := blog.NewHandler(posts)

	router.GET("/health", handleHealth)

	authRoutes := router.Group("/auth")
	{
		authRoutes.GET("/register", authHandler.RegisterForm)
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.GET("/login", authHandler.LoginForm)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/logout", authHandler.Logout)
	}

	router.GET("/", blogHandler.Index)

	// 変更系のルートはすべてログイン必須
	protected := router.Group("")
	protected.Use(auth.RequireLogin())
	{
		protected.GET("/create", blogHandler.CreateForm)
		protected.POST("/create", blogHandler.Create)
		protected.GET("/:id/update", blogHandler.UpdateForm)
		protected.POST("/:id/update", blogHandler.Update)
		protected.POST("/:id/delete", blogHandler.Delete)
	}

	return router
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "blogr",
		"version": "0.1.0",
	})
}
