package main

import (
	"context"
	"net/http"
	"time"

	"diamond-insights.backend/internal/config"
	"diamond-insights.backend/internal/interfaces/http/handlers"
	"diamond-insights.backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

const healthCheckTimeout = 2 * time.Second

type routeDeps struct {
	teamHandler *handlers.TeamHandler
}

// healthCheck is a named dependency probed by /health.
type healthCheck struct {
	name  string
	check func(context.Context) error
}

func applyCORSMiddleware(r *gin.Engine, origins []string) {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader, middleware.IdempotencyHitHeader},
	})

	r.Use(func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}
		ctx.Next()
	})
}

func registerRootRoutes(r *gin.Engine, app config.AppConfig, checks ...healthCheck) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Diamond Insights!"})
	})
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		defer cancel()

		status, code := "ok", http.StatusOK
		results := gin.H{}
		for _, hc := range checks {
			if err := hc.check(ctx); err != nil {
				results[hc.name] = err.Error()
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[hc.name] = "ok"
		}

		body := gin.H{
			"status":  status,
			"service": app.Name,
			"version": app.Version,
		}
		if len(checks) > 0 {
			body["checks"] = results
		}
		c.JSON(code, body)
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// api-sports proxy and sync
		baseball := v1.Group("/sports/baseball")
		{
			baseball.GET("/teams", d.teamHandler.GetBaseballTeams)
			baseball.POST("/teams/sync", middleware.IdempotencyMiddleware(), d.teamHandler.SyncBaseballTeams)
		}

		// Stored teams (read only)
		teams := v1.Group("/teams")
		{
			teams.GET("", d.teamHandler.ListTeams)
			teams.GET("/:externalId", d.teamHandler.GetTeam)
		}
	}
}
