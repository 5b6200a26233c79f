package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/yashp/portfolio-assistant/internal/middleware"
)

type RouterDeps struct {
	Chat      *ChatHandler
	Knowledge *KnowledgeHandler
	Admin     *AdminHandler
	JWTSecret []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/chat", deps.Chat.Chat)

	api.GET("/knowledge", deps.Knowledge.List)
	api.GET("/knowledge/search", deps.Knowledge.Search)
	api.GET("/knowledge/:id", deps.Knowledge.Get)

	if deps.Admin != nil {
		api.POST("/admin/login", deps.Admin.Login)
		adminGroup := api.Group("/admin")
		adminGroup.Use(middleware.AdminAuth(deps.JWTSecret))
		adminGroup.POST("/knowledge/reload", deps.Admin.Reload)
		adminGroup.GET("/stats", deps.Admin.Stats)
	}
}
