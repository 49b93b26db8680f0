package be

import (
	"attend_now/be/biz/handler"
	"attend_now/be/biz/middleware"
	"attend_now/be/biz/middleware/jwt"
	"attend_now/be/biz/middleware/ratelimit"
	"attend_now/be/biz/middleware/security"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/hertz-contrib/swagger"
	swaggerFiles "github.com/swaggo/files"

	_ "attend_now/be/docs"
)

func NewEngine(opts ...config.Option) *server.Hertz {
	h := server.New(opts...)
	h.Use(middleware.Suite()...)

	registerRoutes(h)
	return h
}

func registerRoutes(h *server.Hertz) {
	h.GET("/swagger/*any", swagger.WrapHandler(swaggerFiles.Handler))

	v1 := h.Group("/api/v1")

	userGroup := v1.Group("/user")
	userGroup.POST("/register", ratelimit.NewRegisterProtection(), handler.Register)
	userGroup.POST("/login", handler.Login)
	userGroup.POST("/refresh_token", handler.RefreshToken)

	authed := v1.Group("", jwt.ValidateMW(), security.NewCredentialCheck())

	userAuthed := authed.Group("/user")
	userAuthed.POST("/logout", handler.Logout)
	userAuthed.GET("/info", handler.GetUserInfo)
	userAuthed.POST("/update_info", handler.UpdateInfo)
	userAuthed.POST("/update_password", handler.UpdatePassword)

	mfaGroup := authed.Group("/mfa")
	mfaGroup.POST("/face/enroll", handler.EnrollFace)
	mfaGroup.POST("/face/verify", handler.VerifyFace)
	mfaGroup.POST("/totp/setup", handler.SetupTotp)
	mfaGroup.POST("/totp/verify", handler.VerifyTotp)

	attendanceGroup := authed.Group("/attendance")
	attendanceGroup.POST("/check_in", handler.CheckIn)
	attendanceGroup.POST("/check_out", handler.CheckOut)
	attendanceGroup.GET("/today", handler.TodayStatus)
	attendanceGroup.GET("/records", handler.ListRecords)
	attendanceGroup.GET("/summary", handler.Summary)
	attendanceGroup.GET("/summary/monthly", handler.MonthlySummary)
	attendanceGroup.GET("/dashboard", handler.GetDashboard)

	securityGroup := authed.Group("/security")
	securityGroup.GET("/events", handler.ListSecurityEvents)
	securityGroup.GET("/login_attempts", handler.ListLoginAttempts)
}
