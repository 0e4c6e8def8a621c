// internal/repository/postgres/supplier_analytics_repo.go
package postgres

import (
	"context"
)

type SupplierAnalyticsRepository struct {
	analyticsRepo
}

func NewSupplierAnalyticsRepository(db *DB) *SupplierAnalyticsRepository {
	return &SupplierAnalyticsRepository{analyticsRepo{db: db}}
}

// Performance reports lead times and late-shipment rates per supplier.
func (r *SupplierAnalyticsRepository) Performance(ctx context.Context, minOrders int) ([]map[string]any, error) {
	query := `
		SELECT
			s.supplierId AS supplier_id,
			s.companyName AS supplier_name,
			s.country,
			COUNT(DISTINCT so.orderId) AS total_orders,
			AVG(so.shippedDate::date - so.orderDate::date) AS avg_lead_time_days,
			MIN(so.shippedDate::date - so.orderDate::date) AS min_lead_time,
			MAX(so.shippedDate::date - so.orderDate::date) AS max_lead_time,
			SUM(CASE WHEN so.shippedDate > so.requiredDate THEN 1 ELSE 0 END) AS late_shipments,
			ROUND(
				SUM(CASE WHEN so.shippedDate > so.requiredDate THEN 1 ELSE 0 END) * 100.0
				/ COUNT(DISTINCT so.orderId), 2
			) AS late_shipment_percent,
			SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue
		FROM Supplier s
		INNER JOIN Product p ON s.supplierId = p.supplierId
		INNER JOIN OrderDetail od ON p.productId = od.productId
		INNER JOIN SalesOrder so ON od.orderId = so.orderId
		WHERE so.shippedDate IS NOT NULL
		GROUP BY s.supplierId, s.companyName, s.country
		HAVING COUNT(DISTINCT so.orderId) >= $1
		ORDER BY avg_lead_time_days ASC
	`
	return r.queryRows(ctx, query, minOrders)
}

// RiskAnalysis measures revenue concentration per supplier within each category.
func (r *SupplierAnalyticsRepository) RiskAnalysis(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH SupplierDependency AS (
			SELECT
				cat.categoryId,
				cat.categoryName AS category_name,
				s.supplierId,
				s.companyName AS supplier_name,
				s.country AS supplier_country,
				COUNT(DISTINCT p.productId) AS product_count,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS supplier_revenue
			FROM Category cat
			INNER JOIN Product p ON cat.categoryId = p.categoryId
			INNER JOIN Supplier s ON p.supplierId = s.supplierId
			INNER JOIN OrderDetail od ON p.productId = od.productId
			GROUP BY cat.categoryId, cat.categoryName, s.supplierId, s.companyName, s.country
		),
		CategoryTotals AS (
			SELECT
				categoryId,
				SUM(supplier_revenue) AS category_total_revenue,
				COUNT(DISTINCT supplierId) AS supplier_count
			FROM SupplierDependency
			GROUP BY categoryId
		)
		SELECT
			sd.category_name,
			sd.supplier_name,
			sd.supplier_country,
			sd.product_count,
			ROUND(sd.supplier_revenue::numeric, 2) AS supplier_revenue,
			ROUND(ct.category_total_revenue::numeric, 2) AS category_total_revenue,
			ROUND((sd.supplier_revenue * 100.0 / ct.category_total_revenue)::numeric, 2) AS revenue_share_percent,
			ct.supplier_count AS total_suppliers_in_category,
			CASE
				WHEN sd.supplier_revenue * 100.0 / ct.category_total_revenue > 50 THEN 'HIGH RISK - Single Supplier Dependency'
				WHEN sd.supplier_revenue * 100.0 / ct.category_total_revenue > 25 THEN 'MEDIUM RISK - Significant Dependency'
				ELSE 'LOW RISK - Diversified'
			END AS risk_assessment
		FROM SupplierDependency sd
		INNER JOIN CategoryTotals ct ON sd.categoryId = ct.categoryId
		ORDER BY sd.category_name, revenue_share_percent DESC
	`
	return r.queryRows(ctx, query)
}
