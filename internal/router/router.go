package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/linkfolio/internal/db"
	"github.com/linkfolio/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(sessionSecret, uploadDir, uploadURLPath string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	// 显式设置 Cookie 属性：库默认的 Secure+SameSite=None 会让纯 HTTP 部署丢会话
	store := cookie.NewStore([]byte(sessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("linkfolio_session", store))

	// 头像等上传文件的静态服务
	if uploadDir != "" && uploadURLPath != "" {
		r.Static(uploadURLPath, uploadDir)
	}

	api := handler.NewAPI(db.DB, uploadDir, uploadURLPath)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 匿名访客可达的公开读路径与点击记账
	r.GET("/api/profiles/:username", api.ShowPublicProfile)
	r.POST("/api/links/:id/click", api.RecordLinkClick)

	auth := r.Group("/auth")
	{
		auth.POST("/register", api.Register)
		auth.POST("/login", api.Login)
		auth.POST("/logout", api.Logout)
	}

	// 需要登录的编辑器路由
	editor := r.Group("/api")
	editor.Use(handler.AuthRequired())
	{
		editor.GET("/profile", api.GetMyProfile)
		editor.PUT("/profile", api.UpdateMyProfile)
		editor.POST("/profile/onboard", api.OnboardProfile)
		editor.GET("/platforms", api.ListPlatforms)

		editor.GET("/icon-links", api.ListIconLinks)
		editor.POST("/icon-links", api.CreateIconLink)
		editor.PUT("/icon-links/:id", api.UpdateIconLink)
		editor.DELETE("/icon-links/:id", api.DeleteIconLink)
		editor.POST("/icon-links/:id/toggle", api.ToggleIconLink)
		editor.POST("/icon-links/:id/reorder", api.ReorderIconLinks)

		editor.GET("/links", api.ListCustomLinks)
		editor.POST("/links", api.CreateCustomLink)
		editor.PUT("/links/:id", api.UpdateCustomLink)
		editor.DELETE("/links/:id", api.DeleteCustomLink)
		editor.POST("/links/:id/toggle", api.ToggleCustomLink)
		editor.POST("/links/:id/reorder", api.ReorderCustomLinks)

		editor.POST("/upload/avatar", api.UploadAvatar)
	}

	return r
}
