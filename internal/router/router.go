package router

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealfinder/internal/api"
	"github.com/pageza/mealfinder/internal/middleware"
	"github.com/pageza/mealfinder/internal/webui"
)

// SetupRouter configures the application routes
func SetupRouter(
	pageHandler *api.PageHandler,
	recipeHandler *api.RecipeHandler,
	allowedOrigins []string,
	logger *log.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), middleware.ErrorHandler(logger))

	// Health check endpoint
	router.GET("/health", api.HealthCheck)

	// CORS applies to the JSON API only; the HTML pages are same-origin
	apiGroup := router.Group("/api", middleware.CORS(allowedOrigins))
	apiGroup.GET("/health", api.HealthCheck)

	// Stylesheet and other embedded assets
	router.StaticFS("/static", http.FS(webui.StaticFS()))

	// HTML interface
	pageHandler.RegisterRoutes(router)

	// API v1 routes
	v1 := apiGroup.Group("/v1")
	recipeHandler.RegisterRoutes(v1)

	return router
}
