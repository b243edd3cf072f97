// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"contacts/internal/delivery/http/middleware"
	"contacts/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ContactHandler *handler.ContactHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimit      *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	contactHandler *handler.ContactHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimit      *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		contactHandler: params.ContactHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimit:      params.RateLimit,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Auth routes, no session required
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.GET("/refresh_token", r.authHandler.RefreshToken)
		authGroup.GET("/confirmed_email/:token", r.authHandler.ConfirmEmail)
		authGroup.POST("/request_email", r.authHandler.RequestEmail)
		authGroup.POST("/reset_password", r.authHandler.ResetPassword)
		authGroup.POST("/set_password/:token", r.authHandler.SetPassword)
	}

	// Profile routes behind the session resolver, with per-account limits
	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me, r.rateLimit.LimitMe())
		userGroup.PATCH("/avatar", r.userHandler.UpdateAvatar, r.rateLimit.LimitAvatar())
	}

	// Address book routes, always owner scoped
	contactGroup := api.Group("/contacts")
	contactGroup.Use(r.authMiddleware.Authenticate)
	{
		contactGroup.POST("", r.contactHandler.Create)
		contactGroup.GET("", r.contactHandler.List)
		contactGroup.GET("/search", r.contactHandler.Search)
		contactGroup.GET("/bday", r.contactHandler.UpcomingBirthdays)
		contactGroup.GET("/:id", r.contactHandler.Get)
		contactGroup.PUT("/:id", r.contactHandler.Update)
		contactGroup.DELETE("/:id", r.contactHandler.Delete)
	}
}
