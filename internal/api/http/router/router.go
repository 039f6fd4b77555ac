// Package router wires handlers and middleware into the gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/authkeeper/internal/api/http/handler"
	"github.com/dtroode/authkeeper/internal/api/http/middleware"
	"github.com/dtroode/authkeeper/internal/logger"
)

// Router builds the HTTP routing table.
type Router struct {
	auth         *handler.Auth
	user         *handler.User
	authenticate *middleware.Authenticate
	logger       *logger.Logger
}

// New creates a new Router.
func New(auth *handler.Auth, user *handler.User, authenticate *middleware.Authenticate, logger *logger.Logger) *Router {
	return &Router{
		auth:         auth,
		user:         user,
		authenticate: authenticate,
		logger:       logger,
	}
}

// Register returns the configured gin engine.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.NewLogging(r.logger).Handle, gin.Recovery())

	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"title":       "Welcome to the API",
			"description": "This is the backend API for the application.",
		})
	})

	v1 := engine.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/sign-up", r.auth.SignUp)
		auth.POST("/sign-in", r.auth.SignIn)
		auth.POST("/refresh", r.auth.Refresh)
		auth.POST("/sign-out", r.auth.SignOut)
	}

	users := v1.Group("/users", r.authenticate.Handle)
	{
		users.GET("/me", r.user.Me)
		users.GET("/:id", r.user.GetByID)
	}

	return engine
}
