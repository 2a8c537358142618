package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mirrormood/internal/db"
	"github.com/mirrormood/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handler.RequestLogger())

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("mirrormood_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := handler.NewAPI(db.DB)

	public := r.Group("/api")
	{
		public.POST("/users", api.Register)
		public.POST("/login", api.Login)
		public.POST("/logout", api.Logout)
	}

	// 需要登录的路由
	auth := r.Group("/api")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/users/me", api.GetMe)

		auth.POST("/emotions", api.RecordEmotion)
		auth.GET("/emotions/me", api.GetMyEmotion)
		auth.GET("/emotions/family", api.GetFamilyEmotion)
		auth.GET("/emotions/family/angry", api.GetFamilyAngryList)

		auth.GET("/connections", api.ListConnections)
		auth.POST("/connections", api.CreateConnection)
		auth.DELETE("/connections/:id", api.DeleteConnection)
	}

	return r
}
