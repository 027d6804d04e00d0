package routes

import (
	"net/http"
	"time"

	"medledger/handlers"
	"medledger/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRevenueRoutes registers the reconciliation and settlement endpoints.
func RegisterRevenueRoutes(r *gin.Engine, h *handlers.ReconcileHandler) {
	api := r.Group("/api/revenue")
	{
		// All revenue endpoints require an authenticated operator.
		api.Use(middleware.OperatorAuthMiddleware())
		api.GET("", h.GetRevenueItems)
		api.GET("/doctors", h.GetDoctorAggregates)
		api.GET("/history", h.GetSettlementHistory)
		api.POST("/refresh", h.RefreshRevenue)
		api.POST("/:appointmentId/settle", h.SettleAppointment)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Medledger"})
	})
}

// RegisterRoutes sets up CORS and all endpoint groups.
func RegisterRoutes(r *gin.Engine, h *handlers.ReconcileHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterRevenueRoutes(r, h)
}
