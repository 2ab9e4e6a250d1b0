package router

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"stockflow/docs"
	"stockflow/internal/config"
	"stockflow/internal/errors"
	"stockflow/internal/handler"
	"stockflow/internal/logger"
	"stockflow/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Sector       *handler.SectorHandler
	Product      *handler.ProductHandler
	Notification *handler.NotificationHandler
	Watchlist    *handler.WatchlistHandler
	Stats        *handler.StatsHandler
}

// Register wires routes and middleware.
func Register(e *echo.Echo, cfg *config.Config, log *zap.Logger, authService service.AuthService, h Handlers) {
	e.Use(logger.RequestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = handler.NewValidator()

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.GET("/sectors", h.Sector.List)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.UserContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrUnauthorized.Error(),
				Code:  "UNAUTHORIZED",
			})
		},
	}))

	secured.POST("/auth/logout", h.Auth.Logout)

	secured.GET("/me", h.User.Me)
	secured.PATCH("/me/preferences", h.User.UpdatePreferences)

	// Product routes
	secured.GET("/products", h.Product.List)
	secured.GET("/products/low-stock", h.Product.LowStock)
	secured.GET("/products/:id", h.Product.Get)
	secured.POST("/products", h.Product.Create)
	secured.PUT("/products/:id", h.Product.Update)
	secured.DELETE("/products/:id", h.Product.Delete)
	secured.POST("/products/:id/notify", h.Product.Notify)

	// Watchlist routes
	secured.GET("/watchlist", h.Watchlist.List)
	secured.POST("/watchlist/:productId", h.Watchlist.Watch)
	secured.DELETE("/watchlist/:productId", h.Watchlist.Unwatch)

	// Notification routes
	secured.GET("/notifications", h.Notification.List)
	secured.GET("/notifications/unread-count", h.Notification.UnreadCount)
	secured.PATCH("/notifications/read-all", h.Notification.MarkAllRead)
	secured.PATCH("/notifications/:id/read", h.Notification.MarkRead)

	secured.GET("/stats", h.Stats.Get)
	secured.GET("/debug/skus", h.Product.DebugSKUs)
}
