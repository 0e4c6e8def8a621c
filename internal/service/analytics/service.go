// internal/service/analytics/service.go
package analytics

import (
	"context"
	"time"

	"go.uber.org/zap"

	"gastro-insights/internal/repository/postgres"
)

// Service fronts the report repositories and centralizes request logging.
type Service struct {
	products   *postgres.ProductAnalyticsRepository
	employees  *postgres.EmployeeAnalyticsRepository
	customers  *postgres.CustomerAnalyticsRepository
	categories *postgres.CategoryAnalyticsRepository
	suppliers  *postgres.SupplierAnalyticsRepository
	shipping   *postgres.ShippingAnalyticsRepository
	sales      *postgres.SalesAnalyticsRepository
	logger     *zap.Logger
}

func NewService(
	products *postgres.ProductAnalyticsRepository,
	employees *postgres.EmployeeAnalyticsRepository,
	customers *postgres.CustomerAnalyticsRepository,
	categories *postgres.CategoryAnalyticsRepository,
	suppliers *postgres.SupplierAnalyticsRepository,
	shipping *postgres.ShippingAnalyticsRepository,
	sales *postgres.SalesAnalyticsRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		products:   products,
		employees:  employees,
		customers:  customers,
		categories: categories,
		suppliers:  suppliers,
		shipping:   shipping,
		sales:      sales,
		logger:     logger,
	}
}

func (s *Service) report(name string, rows []map[string]any, err error) ([]map[string]any, error) {
	if err != nil {
		s.logger.Error("analytics report failed", zap.String("report", name), zap.Error(err))
		return nil, err
	}
	s.logger.Debug("analytics report served", zap.String("report", name), zap.Int("rows", len(rows)))
	return rows, nil
}

func (s *Service) TopRevenueProducts(ctx context.Context, limit int) ([]map[string]any, error) {
	rows, err := s.products.TopRevenueProducts(ctx, limit)
	return s.report("products/top-revenue", rows, err)
}

func (s *Service) MarketBasket(ctx context.Context, minOccurrences, limit int) ([]map[string]any, error) {
	rows, err := s.products.MarketBasket(ctx, minOccurrences, limit)
	return s.report("products/market-basket", rows, err)
}

func (s *Service) ABCAnalysis(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.products.ABCAnalysis(ctx)
	return s.report("products/abc-analysis", rows, err)
}

func (s *Service) DiscontinuedAnalysis(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.products.DiscontinuedAnalysis(ctx)
	return s.report("products/discontinued-analysis", rows, err)
}

func (s *Service) EmployeeMonthlySales(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.employees.MonthlySales(ctx)
	return s.report("employees/monthly-sales", rows, err)
}

func (s *Service) EmployeeHierarchy(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.employees.Hierarchy(ctx)
	return s.report("employees/hierarchy", rows, err)
}

func (s *Service) TopCustomersByCountry(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.customers.TopByCountry(ctx)
	return s.report("customers/top-by-country", rows, err)
}

func (s *Service) RFMSegmentation(ctx context.Context, referenceDate time.Time) ([]map[string]any, error) {
	rows, err := s.customers.RFMSegmentation(ctx, referenceDate)
	return s.report("customers/rfm-segmentation", rows, err)
}

func (s *Service) CustomerRetention(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.customers.RetentionAnalysis(ctx)
	return s.report("customers/retention-analysis", rows, err)
}

func (s *Service) CustomerDiscountBehavior(ctx context.Context, limit int) ([]map[string]any, error) {
	rows, err := s.customers.DiscountBehavior(ctx, limit)
	return s.report("customers/discount-behavior", rows, err)
}

func (s *Service) CategoryMonthlyGrowth(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.categories.MonthlyGrowth(ctx)
	return s.report("categories/monthly-growth", rows, err)
}

func (s *Service) CategoryCountryBreakdown(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.categories.CountryBreakdown(ctx)
	return s.report("categories/country-breakdown", rows, err)
}

func (s *Service) SupplierPerformance(ctx context.Context, minOrders int) ([]map[string]any, error) {
	rows, err := s.suppliers.Performance(ctx, minOrders)
	return s.report("suppliers/performance", rows, err)
}

func (s *Service) SupplierRiskAnalysis(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.suppliers.RiskAnalysis(ctx)
	return s.report("suppliers/risk-analysis", rows, err)
}

func (s *Service) ShippingEfficiency(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.shipping.ShipperEfficiency(ctx)
	return s.report("shipping/efficiency", rows, err)
}

func (s *Service) YoYGrowth(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.sales.YoYGrowth(ctx)
	return s.report("sales/yoy-growth", rows, err)
}

func (s *Service) DayOfWeekPatterns(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.sales.DayOfWeekPatterns(ctx)
	return s.report("sales/day-of-week-patterns", rows, err)
}

func (s *Service) DiscountImpact(ctx context.Context, limit int) ([]map[string]any, error) {
	rows, err := s.sales.DiscountImpact(ctx, limit)
	return s.report("sales/discount-impact", rows, err)
}

func (s *Service) TerritoryPerformance(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.sales.TerritoryPerformance(ctx)
	return s.report("sales/territory-performance", rows, err)
}

func (s *Service) BusinessKPIs(ctx context.Context) ([]map[string]any, error) {
	rows, err := s.sales.BusinessKPIs(ctx)
	return s.report("dashboard/business-kpis", rows, err)
}
