// File: internal/router/router.go
package router

import (
	"log/slog"

	"ipv4-bazaar/internal/backend"
	"ipv4-bazaar/internal/cache"
	"ipv4-bazaar/internal/database"
	"ipv4-bazaar/internal/handler"
	"ipv4-bazaar/internal/handler/admin"
	"ipv4-bazaar/internal/handler/auth"
	"ipv4-bazaar/internal/handler/content"
	"ipv4-bazaar/internal/handler/users"
	"ipv4-bazaar/internal/middleware"
	"ipv4-bazaar/internal/portal"

	"github.com/labstack/echo/v4"
)

// Deps 路由需要的依賴
type Deps struct {
	DB            database.DB
	Cache         cache.Cache
	Backend       backend.Service
	Portal        *portal.Service
	Recorder      auth.Recorder
	Session       middleware.SessionConfig
	AuthRateLimit int
	Logger        *slog.Logger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api", middleware.Session(d.Session))
	limited := middleware.AuthRateLimiter(d.AuthRateLimit)

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.DB, d.Cache))

	// 身分
	api.GET("/session", auth.SessionHandler())
	apiAuth := api.Group("/auth")
	apiAuth.POST("/signup", auth.SignupHandler(d.Recorder), limited)
	apiAuth.POST("/login", auth.LoginHandler(d.Recorder), limited)
	apiAuth.POST("/admin/login", auth.AdminLoginHandler(d.Recorder), limited)
	apiAuth.POST("/logout", auth.LogoutHandler())
	apiAuth.POST("/verification/resend", auth.ResendVerificationHandler(d.Backend, d.Logger), limited)
	apiAuth.GET("/verify-email", auth.VerifyEmailHandler(d.Backend, d.Logger))

	// 當前使用者與其申請
	apiUsersMe := api.Group("/users/me", middleware.RequireUser)
	apiUsersMe.GET("", users.GetMyUserHandler())
	apiUsersMe.PUT("", users.UpdateMyUserHandler(d.Portal, d.Logger))
	apiUsersMe.GET("/requests", users.ListMyRequestsHandler(d.Portal))
	apiUsersMe.POST("/requests", users.CreateMyRequestHandler(d.Portal))

	// 管理員專屬
	apiAdmin := api.Group("/admin", middleware.RequireAdmin)
	apiAdmin.GET("/stats", admin.StatsHandler(d.Portal))
	apiAdmin.GET("/requests/latest", admin.LatestRequestsHandler(d.Portal))
	apiAdmin.GET("/requests", admin.ListRequestsHandler(d.Portal))
	apiAdmin.PATCH("/requests/:id/status", admin.UpdateRequestStatusHandler(d.Portal))
	apiAdmin.GET("/users", admin.ListUsersHandler(d.Portal))
	apiAdmin.PUT("/users/:id", admin.UpdateUserHandler(d.Portal))

	// 網站內容
	api.GET("/content/:kind", content.ListHandler())
}
