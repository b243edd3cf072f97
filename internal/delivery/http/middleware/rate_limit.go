package middleware

import (
	"log/slog"
	"time"

	"contacts/config"
	deliverycontext "contacts/internal/delivery/context"
	"contacts/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	defaultMeRatePerMinute     = 10
	defaultAvatarRatePerMinute = 5
)

// RateLimitMiddleware bounds request rates on the user-facing profile routes.
// Authenticated requests are bucketed per account, everything else per source
// address.
type RateLimitMiddleware struct {
	logger      *slog.Logger
	meLimit     int
	avatarLimit int
}

// NewRateLimitMiddleware creates a new rate limit middleware
func NewRateLimitMiddleware(cfg *config.Config, logger *slog.Logger) *RateLimitMiddleware {
	meLimit := defaultMeRatePerMinute
	avatarLimit := defaultAvatarRatePerMinute
	if cfg.RateLimit != nil {
		if cfg.RateLimit.MeRequestsPerMinute > 0 {
			meLimit = cfg.RateLimit.MeRequestsPerMinute
		}
		if cfg.RateLimit.AvatarRequestsPerMinute > 0 {
			avatarLimit = cfg.RateLimit.AvatarRequestsPerMinute
		}
	}

	return &RateLimitMiddleware{
		logger:      logger,
		meLimit:     meLimit,
		avatarLimit: avatarLimit,
	}
}

// LimitMe returns the limiter for GET /api/users/me.
func (m *RateLimitMiddleware) LimitMe() echo.MiddlewareFunc {
	return m.perMinuteLimiter(m.meLimit)
}

// LimitAvatar returns the limiter for PATCH /api/users/avatar.
func (m *RateLimitMiddleware) LimitAvatar() echo.MiddlewareFunc {
	return m.perMinuteLimiter(m.avatarLimit)
}

func (m *RateLimitMiddleware) perMinuteLimiter(requestsPerMinute int) echo.MiddlewareFunc {
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requestsPerMinute) / 60.0),
		Burst:     requestsPerMinute,
		ExpiresIn: 3 * time.Minute,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if user := deliverycontext.GetCurrentUser(c); user != nil {
				return user.Email, nil
			}

			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			m.logger.Warn("Rate limit exceeded",
				slog.String("identifier", identifier),
				slog.String("path", c.Request().URL.Path),
			)

			return response.TooManyRequests(c, "RATE_LIMITED", "No requests left")
		},
	})
}
