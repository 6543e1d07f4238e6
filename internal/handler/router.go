package handler

import (
	"event-platform/internal/auth"
	"event-platform/internal/metrics"
	"event-platform/internal/middleware"
	"event-platform/internal/service"

	"github.com/gin-gonic/gin"
)

type Services struct {
	Users      service.UserService
	Auth       service.AuthService
	Events     service.EventService
	Tickets    service.TicketService
	Activities service.ActivityService
}

type RouterOptions struct {
	Tokens         auth.TokenIssuer
	DB             Pinger
	LoginPerMinute int
}

// NewRouter 組裝所有路由與共用 middleware
func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger(),
		metrics.GinMiddleware(),
	)

	requireAuth := middleware.RequireAuth(opts.Tokens, svc.Users)

	NewHealthHandler(opts.DB).RegisterRoutes(r)
	NewAuthHandler(svc.Users, svc.Auth).RegisterRoutes(r, middleware.LoginRateLimit(opts.LoginPerMinute))
	NewUserHandler(svc.Users, svc.Events).RegisterRoutes(r, requireAuth)
	NewEventHandler(svc.Events).RegisterRoutes(r, requireAuth)
	NewTicketHandler(svc.Tickets).RegisterRoutes(r, requireAuth)
	NewAdminHandler(svc.Users, svc.Events, svc.Activities).RegisterRoutes(r, requireAuth)

	return r
}
