// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"herbarium/internal/delivery/http/middleware"
	"herbarium/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	PlantHandler      *handler.PlantHandler
	EngagementHandler *handler.EngagementHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	plantHandler      *handler.PlantHandler
	engagementHandler *handler.EngagementHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		plantHandler:      params.PlantHandler,
		engagementHandler: params.EngagementHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/status", r.authHandler.Status, r.authMiddleware.Authenticate)
	}

	// Plant registry routes. Reads are public; the optional Identify
	// middleware personalizes views for callers presenting a token.
	plantGroup := e.Group("/plants")
	{
		plantGroup.POST("", r.plantHandler.AddPlant, r.authMiddleware.Authenticate)
		plantGroup.GET("", r.plantHandler.ListPlants)
		plantGroup.GET("/count", r.plantHandler.CountPlants)
		plantGroup.GET("/search", r.plantHandler.SearchPlants)

		// Engagement writes require authentication
		plantGroup.POST("/rate", r.engagementHandler.Rate, r.authMiddleware.Authenticate)
		plantGroup.POST("/like", r.engagementHandler.Like, r.authMiddleware.Authenticate)
		plantGroup.POST("/comment", r.engagementHandler.Comment, r.authMiddleware.Authenticate)

		plantGroup.PUT("/:plantId", r.plantHandler.EditPlant, r.authMiddleware.Authenticate)
		plantGroup.GET("/:plantId", r.plantHandler.GetPlant, r.authMiddleware.Identify)
		plantGroup.GET("/:plantId/comments", r.engagementHandler.Comments)
		plantGroup.GET("/:plantId/ratings", r.engagementHandler.Ratings)
		plantGroup.GET("/:plantId/rating/average", r.engagementHandler.AverageRating)
		plantGroup.GET("/:plantId/history", r.plantHandler.History)
		plantGroup.GET("/:plantId/qr", r.plantHandler.ShareQR)
	}
}
