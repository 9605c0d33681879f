package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
)

const (
	// Submission endpoints are write-heavy; 20 requests per 30s per IP
	// comfortably covers browsing plus an application burst.
	limiterMax    = 20
	limiterWindow = 30 * time.Second
)

// NewLimiterWithRedis rate-limits per client IP with a sliding window
// backed by Redis, so limits hold across replicas.
func NewLimiterWithRedis(rdb *redis.Client) fiber.Handler {
	return limiter.New(limiter.Config{
		Storage:           fiberredis.NewFromConnection(rdb),
		Max:               limiterMax,
		Expiration:        limiterWindow,
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
