package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gusto-pos/internal/config"
)

var (
	defaultOrigins = []string{"http://localhost:3000", "http://localhost:5173", "http://127.0.0.1:3000"}
	defaultMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	defaultHeaders = []string{"Accept", "Content-Type", "Origin", "X-Request-ID", IdempotencyKeyHeader}
)

// CORSMiddleware lets the terminal front end call the API from its own origin
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins: orDefault(cfg.AllowedOrigins, defaultOrigins),
		AllowMethods: orDefault(cfg.AllowedMethods, defaultMethods),
		AllowHeaders: orDefault(cfg.AllowedHeaders, defaultHeaders),
		ExposeHeaders: []string{
			"Content-Length", "Content-Type", "Content-Disposition",
			"X-Request-ID", "X-Idempotency-Replayed", "X-RateLimit-Limit", "X-RateLimit-Remaining",
		},
		MaxAge: 12 * time.Hour,
	}

	if !slices.Contains(corsConfig.AllowHeaders, IdempotencyKeyHeader) {
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, IdempotencyKeyHeader)
	}

	return cors.New(corsConfig)
}

func orDefault(values, fallback []string) []string {
	if len(values) == 0 {
		return slices.Clone(fallback)
	}
	return slices.Clone(values)
}
