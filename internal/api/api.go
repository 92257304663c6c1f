package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/rollhouse/salesdash/internal/api/handlers"
	"github.com/rollhouse/salesdash/internal/api/middleware"
	"github.com/rollhouse/salesdash/internal/service"
)

func NewRouter(dashboardService *service.DashboardService, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		status := dashboardService.Status()
		code := http.StatusOK
		if !status.Healthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	apiGroup := router.Group("/api/v1")

	handler := handlers.NewDashboardHandler(dashboardService)

	dashboardGroup := apiGroup.Group("/dashboard")
	{
		dashboardGroup.GET("", handler.GetDashboard)
		dashboardGroup.GET("/items", handler.GetItems)
		dashboardGroup.GET("/specialty", handler.GetSpecialty)
		dashboardGroup.GET("/seasonality", handler.GetSeasonality)
		dashboardGroup.GET("/forecast", handler.GetForecast)
	}

	apiGroup.GET("/summary", handler.GetSummary)

	presetGroup := apiGroup.Group("/presets")
	{
		presetGroup.GET("", handler.GetPresets)
		presetGroup.GET("/detect", handler.DetectPreset)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
