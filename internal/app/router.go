// internal/app/router.go
package app

import (
	"github.com/gin-gonic/gin"

	analyticsHandler "gastro-insights/internal/handlers/analytics"
	authHandler "gastro-insights/internal/handlers/auth"
	healthHandler "gastro-insights/internal/handlers/health"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	AnalyticsHandler *analyticsHandler.AnalyticsHandler
	HealthHandler    *healthHandler.HealthHandler
	AuthMiddleware   gin.HandlerFunc
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", h.HealthHandler.Check)

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.POST("/2fa-verify", h.AuthHandler.Verify2FA)
		authPublic.POST("/refresh", h.AuthHandler.Refresh)
		authPublic.POST("/logout", h.AuthHandler.Logout)
		authPublic.GET("/check-session", h.AuthHandler.CheckSession)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware)
	{
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.GET("/admins", h.AuthHandler.ListAdmins)
		authProtected.POST("/admins", h.AuthHandler.CreateAdmin)
		authProtected.DELETE("/admins/:id", h.AuthHandler.DeleteAdmin)
	}

	// ==================== Analytics ====================
	analytics := api.Group("/analytics")
	{
		analytics.GET("/health", h.HealthHandler.Check)

		analytics.GET("/products/top-revenue", h.AnalyticsHandler.TopRevenueProducts)
		analytics.GET("/products/market-basket", h.AnalyticsHandler.MarketBasket)
		analytics.GET("/products/abc-analysis", h.AnalyticsHandler.ABCAnalysis)
		analytics.GET("/products/discontinued-analysis", h.AnalyticsHandler.DiscontinuedAnalysis)

		analytics.GET("/employees/monthly-sales", h.AnalyticsHandler.EmployeeMonthlySales)
		analytics.GET("/employees/hierarchy", h.AnalyticsHandler.EmployeeHierarchy)

		analytics.GET("/customers/top-by-country", h.AnalyticsHandler.TopCustomersByCountry)
		analytics.GET("/customers/rfm-segmentation", h.AnalyticsHandler.RFMSegmentation)
		analytics.GET("/customers/retention-analysis", h.AnalyticsHandler.CustomerRetention)
		analytics.GET("/customers/discount-behavior", h.AnalyticsHandler.CustomerDiscountBehavior)

		analytics.GET("/categories/monthly-growth", h.AnalyticsHandler.CategoryMonthlyGrowth)
		analytics.GET("/categories/country-breakdown", h.AnalyticsHandler.CategoryCountryBreakdown)

		analytics.GET("/suppliers/performance", h.AnalyticsHandler.SupplierPerformance)
		analytics.GET("/suppliers/risk-analysis", h.AnalyticsHandler.SupplierRiskAnalysis)

		analytics.GET("/shipping/efficiency", h.AnalyticsHandler.ShippingEfficiency)

		analytics.GET("/sales/yoy-growth", h.AnalyticsHandler.YoYGrowth)
		analytics.GET("/sales/day-of-week-patterns", h.AnalyticsHandler.DayOfWeekPatterns)
		analytics.GET("/sales/discount-impact", h.AnalyticsHandler.DiscountImpact)
		analytics.GET("/sales/territory-performance", h.AnalyticsHandler.TerritoryPerformance)

		analytics.GET("/dashboard/business-kpis", h.AnalyticsHandler.BusinessKPIs)
	}
}
