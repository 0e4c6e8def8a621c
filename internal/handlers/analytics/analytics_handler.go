// internal/handlers/analytics/analytics_handler.go
package analytics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gastro-insights/internal/pkg/response"
	analyticsService "gastro-insights/internal/service/analytics"
)

// defaultRFMReferenceDate anchors recency scoring to the end of the
// dataset rather than the wall clock, so scores stay stable.
const defaultRFMReferenceDate = "2008-05-06"

type AnalyticsHandler struct {
	service *analyticsService.Service
	logger  *zap.Logger
}

func NewAnalyticsHandler(service *analyticsService.Service, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger,
	}
}

// ========== Query parameters ==========

// parseBoundedInt reads an integer query parameter and enforces its
// range. A violation writes the 400 response and returns ok=false.
func parseBoundedInt(c *gin.Context, name string, def, min, max int) (int, bool) {
	raw := c.DefaultQuery(name, strconv.Itoa(def))
	v, err := strconv.Atoi(raw)
	if err != nil || v < min || v > max {
		response.ValidationError(c, "invalid query parameter",
			fmt.Errorf("%s must be an integer between %d and %d", name, min, max))
		return 0, false
	}
	return v, true
}

func parseReferenceDate(c *gin.Context) (time.Time, bool) {
	raw := c.DefaultQuery("reference_date", defaultRFMReferenceDate)
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.ValidationError(c, "invalid query parameter",
			fmt.Errorf("reference_date must be a date in YYYY-MM-DD format"))
		return time.Time{}, false
	}
	return d, true
}

func (h *AnalyticsHandler) respond(c *gin.Context, message string, rows []map[string]any, err error) {
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to run report", err)
		return
	}
	response.List(c, message, rows)
}

// ========== Products ==========

func (h *AnalyticsHandler) TopRevenueProducts(c *gin.Context) {
	limit, ok := parseBoundedInt(c, "limit", 5, 1, 100)
	if !ok {
		return
	}
	rows, err := h.service.TopRevenueProducts(c.Request.Context(), limit)
	h.respond(c, "top revenue products", rows, err)
}

func (h *AnalyticsHandler) MarketBasket(c *gin.Context) {
	minOccurrences, ok := parseBoundedInt(c, "min_occurrences", 10, 1, 1000)
	if !ok {
		return
	}
	limit, ok := parseBoundedInt(c, "limit", 20, 1, 100)
	if !ok {
		return
	}
	rows, err := h.service.MarketBasket(c.Request.Context(), minOccurrences, limit)
	h.respond(c, "market basket analysis", rows, err)
}

func (h *AnalyticsHandler) ABCAnalysis(c *gin.Context) {
	rows, err := h.service.ABCAnalysis(c.Request.Context())
	h.respond(c, "ABC product classification", rows, err)
}

func (h *AnalyticsHandler) DiscontinuedAnalysis(c *gin.Context) {
	rows, err := h.service.DiscontinuedAnalysis(c.Request.Context())
	h.respond(c, "discontinued product analysis", rows, err)
}

// ========== Employees ==========

func (h *AnalyticsHandler) EmployeeMonthlySales(c *gin.Context) {
	rows, err := h.service.EmployeeMonthlySales(c.Request.Context())
	h.respond(c, "employee monthly sales", rows, err)
}

func (h *AnalyticsHandler) EmployeeHierarchy(c *gin.Context) {
	rows, err := h.service.EmployeeHierarchy(c.Request.Context())
	h.respond(c, "employee hierarchy", rows, err)
}

// ========== Customers ==========

func (h *AnalyticsHandler) TopCustomersByCountry(c *gin.Context) {
	rows, err := h.service.TopCustomersByCountry(c.Request.Context())
	h.respond(c, "top customers by country", rows, err)
}

func (h *AnalyticsHandler) RFMSegmentation(c *gin.Context) {
	referenceDate, ok := parseReferenceDate(c)
	if !ok {
		return
	}
	rows, err := h.service.RFMSegmentation(c.Request.Context(), referenceDate)
	h.respond(c, "RFM customer segmentation", rows, err)
}

func (h *AnalyticsHandler) CustomerRetention(c *gin.Context) {
	rows, err := h.service.CustomerRetention(c.Request.Context())
	h.respond(c, "customer retention analysis", rows, err)
}

func (h *AnalyticsHandler) CustomerDiscountBehavior(c *gin.Context) {
	limit, ok := parseBoundedInt(c, "limit", 20, 1, 100)
	if !ok {
		return
	}
	rows, err := h.service.CustomerDiscountBehavior(c.Request.Context(), limit)
	h.respond(c, "customer discount behavior", rows, err)
}

// ========== Categories ==========

func (h *AnalyticsHandler) CategoryMonthlyGrowth(c *gin.Context) {
	rows, err := h.service.CategoryMonthlyGrowth(c.Request.Context())
	h.respond(c, "category monthly growth", rows, err)
}

func (h *AnalyticsHandler) CategoryCountryBreakdown(c *gin.Context) {
	rows, err := h.service.CategoryCountryBreakdown(c.Request.Context())
	h.respond(c, "category revenue by country", rows, err)
}

// ========== Suppliers ==========

func (h *AnalyticsHandler) SupplierPerformance(c *gin.Context) {
	minOrders, ok := parseBoundedInt(c, "min_orders", 10, 1, 1000)
	if !ok {
		return
	}
	rows, err := h.service.SupplierPerformance(c.Request.Context(), minOrders)
	h.respond(c, "supplier performance", rows, err)
}

func (h *AnalyticsHandler) SupplierRiskAnalysis(c *gin.Context) {
	rows, err := h.service.SupplierRiskAnalysis(c.Request.Context())
	h.respond(c, "supplier dependency risk", rows, err)
}

// ========== Shipping ==========

func (h *AnalyticsHandler) ShippingEfficiency(c *gin.Context) {
	rows, err := h.service.ShippingEfficiency(c.Request.Context())
	h.respond(c, "shipper efficiency", rows, err)
}

// ========== Sales ==========

func (h *AnalyticsHandler) YoYGrowth(c *gin.Context) {
	rows, err := h.service.YoYGrowth(c.Request.Context())
	h.respond(c, "year-over-year sales growth", rows, err)
}

func (h *AnalyticsHandler) DayOfWeekPatterns(c *gin.Context) {
	rows, err := h.service.DayOfWeekPatterns(c.Request.Context())
	h.respond(c, "day-of-week sales patterns", rows, err)
}

func (h *AnalyticsHandler) DiscountImpact(c *gin.Context) {
	limit, ok := parseBoundedInt(c, "limit", 20, 1, 100)
	if !ok {
		return
	}
	rows, err := h.service.DiscountImpact(c.Request.Context(), limit)
	h.respond(c, "discount impact analysis", rows, err)
}

func (h *AnalyticsHandler) TerritoryPerformance(c *gin.Context) {
	rows, err := h.service.TerritoryPerformance(c.Request.Context())
	h.respond(c, "territory sales performance", rows, err)
}

// ========== Dashboard ==========

func (h *AnalyticsHandler) BusinessKPIs(c *gin.Context) {
	rows, err := h.service.BusinessKPIs(c.Request.Context())
	h.respond(c, "business KPI dashboard", rows, err)
}
