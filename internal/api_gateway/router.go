package api_gateway

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/momopress-backend/internal/api_gateway/handler"
	"github.com/momopress-backend/internal/api_gateway/middleware"
	"github.com/momopress-backend/internal/platform/observability"
)

// handlers groups every HTTP handler mounted by setupRouter
type handlers struct {
	transactions *handler.TransactionHandler
	snapshots    *handler.SnapshotHandler
	exports      *handler.ExportHandler
	users        *handler.UserHandler
	sessions     *handler.SessionHandler
	health       *handler.HealthHandler
}

// setupRouter configures API routes and middleware for the application
func setupRouter(logger *slog.Logger, r *gin.Engine, h handlers, metrics *observability.Metrics, staticDir string) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// Endpoint the UI already calls to rebuild its data file
	r.GET("/api/updateTransactions", h.transactions.UpdateTransactions)

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		v1.POST("/periods/:year/:month/refresh", h.transactions.RefreshPeriod)

		transactions := v1.Group("/transactions")
		{
			transactions.GET("", h.transactions.List)
			transactions.GET("/spending", h.transactions.Spending)
		}

		snapshots := v1.Group("/snapshots")
		{
			snapshots.GET("", h.snapshots.List)
			snapshots.GET("/:year/:month", h.snapshots.Get)
		}

		v1.POST("/exports", h.exports.Create)

		users := v1.Group("/users")
		{
			users.POST("", h.users.SignUp)
			users.PUT("/:phone/password", h.users.ResetPassword)
			users.GET("/:phone/settings", h.users.GetSettings)
			users.PUT("/:phone/settings", h.users.UpdateSettings)
		}

		sessions := v1.Group("/sessions")
		{
			sessions.POST("", h.sessions.Login)
			sessions.GET("/remembered", h.sessions.Remembered)
			sessions.GET("/:phone", h.sessions.Current)
			sessions.DELETE("/:phone", h.sessions.Logout)
		}
	}

	r.GET("/health", h.health.Health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// The UI pages and the generated data file
	if staticDir != "" {
		r.Static("/static", staticDir)
	}
}
