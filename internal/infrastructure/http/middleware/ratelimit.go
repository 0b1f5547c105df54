package middleware

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-recovery/errors"
)

const rateLimitPrefix = "meeting_recovery_limiter"

// NewUserRateLimiter returns middleware that limits each authenticated user.
// rateFormatted: "10-M", "100-H". Empty disables. A nil redis client keeps
// counters in process memory. Must run after EchoAuth.
func NewUserRateLimiter(rateFormatted string, client *redis.Client, logger *zap.Logger) (echo.MiddlewareFunc, error) {
	if rateFormatted == "" {
		return noopMiddleware, nil
	}
	rate, err := limiter.NewRateFromFormatted(rateFormatted)
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if client != nil {
		store, err = sredis.NewStoreWithOptions(client, limiter.StoreOptions{Prefix: rateLimitPrefix})
		if err != nil {
			return nil, fmt.Errorf("create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: rateLimitPrefix})
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return userLimitMiddleware(limiter.New(store, rate), logger), nil
}

func userLimitMiddleware(instance *limiter.Limiter, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, ok := UserID(c)
			if !ok {
				return next(c)
			}
			key := "user:" + userID.String()
			ctx, err := instance.Increment(c.Request().Context(), key, 1)
			if err != nil {
				// Fail open; a broken limiter store must not take the API down
				logger.Warn("rate limiter unavailable", zap.Error(err))
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.FormatInt(ctx.Limit, 10))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(ctx.Remaining, 10))
			if ctx.Reset > 0 {
				h.Set("X-RateLimit-Reset", strconv.FormatInt(ctx.Reset, 10))
			}
			if ctx.Reached {
				return errors.ErrRateLimited()
			}
			return next(c)
		}
	}
}

func noopMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}
