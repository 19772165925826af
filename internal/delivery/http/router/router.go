// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tasknest/internal/delivery/http/middleware"
	"tasknest/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers and middlewares Fx injects into the router.
type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	TodoHandler         *handler.TodoHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RequestIDMiddleware *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	todoHandler         *handler.TodoHandler
	authMiddleware      *middleware.AuthMiddleware
	requestIDMiddleware *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		todoHandler:         params.TodoHandler,
		authMiddleware:      params.AuthMiddleware,
		requestIDMiddleware: params.RequestIDMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.Use(r.requestIDMiddleware.Process)

	// Public endpoints
	api.GET("/", handler.Root)
	api.GET("/healthchecker", handler.HealthCheck)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.POST("/refresh", r.userHandler.Refresh)

		// Logout routes sit behind the gate: revocation needs a live identity.
		authGroup.POST("/logout", r.userHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.POST("/logout-all", r.userHandler.LogoutAll, r.authMiddleware.Authenticate)
		authGroup.GET("/sessions", r.userHandler.ListSessions, r.authMiddleware.Authenticate)
	}

	userGroup := api.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.Me)
	}

	todoGroup := api.Group("/todos")
	todoGroup.Use(r.authMiddleware.Authenticate)
	{
		todoGroup.POST("", r.todoHandler.Create)
		todoGroup.GET("", r.todoHandler.List)
		todoGroup.GET("/:id", r.todoHandler.Get)
		todoGroup.PATCH("/:id", r.todoHandler.Update)
		todoGroup.DELETE("/:id", r.todoHandler.Delete)
	}
}
