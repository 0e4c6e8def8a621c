// internal/repository/postgres/sales_analytics_repo.go
package postgres

import (
	"context"
)

type SalesAnalyticsRepository struct {
	analyticsRepo
}

func NewSalesAnalyticsRepository(db *DB) *SalesAnalyticsRepository {
	return &SalesAnalyticsRepository{analyticsRepo{db: db}}
}

// YoYGrowth computes year-over-year revenue growth with a 3-month moving
// average and a year-to-date running sum.
func (r *SalesAnalyticsRepository) YoYGrowth(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH MonthlyRevenue AS (
			SELECT
				to_char(so.orderDate, 'YYYY-MM') AS sales_month,
				EXTRACT(YEAR FROM so.orderDate)::int AS sales_year,
				EXTRACT(MONTH FROM so.orderDate)::int AS month_num,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS revenue
			FROM SalesOrder so
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
			GROUP BY to_char(so.orderDate, 'YYYY-MM'),
			         EXTRACT(YEAR FROM so.orderDate), EXTRACT(MONTH FROM so.orderDate)
		)
		SELECT
			sales_month,
			revenue,
			LAG(revenue, 12) OVER (ORDER BY sales_month) AS prev_year_revenue,
			ROUND(
				((revenue - LAG(revenue, 12) OVER (ORDER BY sales_month))
				/ NULLIF(LAG(revenue, 12) OVER (ORDER BY sales_month), 0) * 100)::numeric, 2
			) AS yoy_growth_percent,
			ROUND(AVG(revenue) OVER (ORDER BY sales_month ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)::numeric, 2) AS moving_avg_3month,
			SUM(revenue) OVER (PARTITION BY sales_year ORDER BY month_num) AS ytd_revenue
		FROM MonthlyRevenue
		ORDER BY sales_month
	`
	return r.queryRows(ctx, query)
}

// DayOfWeekPatterns aggregates order volume and revenue by weekday.
// day_of_week is 1=Sunday through 7=Saturday.
func (r *SalesAnalyticsRepository) DayOfWeekPatterns(ctx context.Context) ([]map[string]any, error) {
	query := `
		SELECT
			EXTRACT(DOW FROM so.orderDate)::int + 1 AS day_of_week,
			trim(to_char(so.orderDate, 'Day')) AS day_name,
			COUNT(DISTINCT so.orderId) AS total_orders,
			COUNT(DISTINCT so.custId) AS unique_customers,
			SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue,
			AVG(od.unitPrice * od.quantity * (1 - od.discount)) AS avg_order_value,
			ROUND(
				COUNT(DISTINCT so.orderId) * 100.0 / (SELECT COUNT(DISTINCT orderId) FROM SalesOrder), 2
			) AS order_percentage,
			RANK() OVER (ORDER BY SUM(od.unitPrice * od.quantity * (1 - od.discount)) DESC) AS revenue_rank
		FROM SalesOrder so
		INNER JOIN OrderDetail od ON so.orderId = od.orderId
		GROUP BY EXTRACT(DOW FROM so.orderDate), trim(to_char(so.orderDate, 'Day'))
		ORDER BY day_of_week
	`
	return r.queryRows(ctx, query)
}

// DiscountImpact lists the most heavily discounted orders.
func (r *SalesAnalyticsRepository) DiscountImpact(ctx context.Context, limit int) ([]map[string]any, error) {
	query := `
		WITH OrderDiscountAnalysis AS (
			SELECT
				so.orderId AS order_id,
				so.orderDate AS order_date,
				c.companyName AS customer_name,
				e.firstname AS employee_name,
				SUM(od.unitPrice * od.quantity) AS gross_amount,
				SUM(od.unitPrice * od.quantity * od.discount) AS total_discount,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS net_amount,
				AVG(od.discount) * 100 AS avg_discount_percent,
				MAX(od.discount) * 100 AS max_discount_percent,
				COUNT(od.orderDetailId) AS line_items
			FROM SalesOrder so
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
			INNER JOIN Customer c ON so.custId = c.custId
			INNER JOIN Employee e ON so.employeeId = e.employeeId
			GROUP BY so.orderId, so.orderDate, c.companyName, e.firstname
		)
		SELECT
			order_id,
			order_date,
			customer_name,
			employee_name,
			gross_amount,
			total_discount,
			net_amount,
			ROUND(avg_discount_percent::numeric, 2) AS avg_discount_percent,
			ROUND(max_discount_percent::numeric, 2) AS max_discount_percent,
			line_items,
			ROUND((total_discount * 100.0 / NULLIF(gross_amount, 0))::numeric, 2) AS discount_impact_percent,
			CASE
				WHEN avg_discount_percent >= 15 THEN 'High Discount'
				WHEN avg_discount_percent >= 5 THEN 'Medium Discount'
				ELSE 'Low/No Discount'
			END AS discount_category
		FROM OrderDiscountAnalysis
		WHERE total_discount > 0
		ORDER BY total_discount DESC
		LIMIT $1
	`
	return r.queryRows(ctx, query, limit)
}

// TerritoryPerformance breaks revenue down by region, territory and
// assigned employee, ranking territories within each region.
func (r *SalesAnalyticsRepository) TerritoryPerformance(ctx context.Context) ([]map[string]any, error) {
	query := `
		SELECT
			r.regionId AS region_id,
			r.regiondescription AS region_name,
			t.territoryId AS territory_id,
			t.territorydescription AS territory_name,
			e.employeeId AS employee_id,
			e.firstname || ' ' || e.lastname AS employee_name,
			COUNT(DISTINCT so.orderId) AS total_orders,
			COUNT(DISTINCT so.custId) AS unique_customers,
			SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue,
			AVG(od.unitPrice * od.quantity * (1 - od.discount)) AS avg_order_value,
			RANK() OVER (PARTITION BY r.regionId ORDER BY SUM(od.unitPrice * od.quantity * (1 - od.discount)) DESC) AS territory_rank_in_region
		FROM Region r
		INNER JOIN Territory t ON r.regionId = t.regionId
		INNER JOIN EmployeeTerritory et ON t.territoryId = et.territoryId
		INNER JOIN Employee e ON et.employeeId = e.employeeId
		INNER JOIN SalesOrder so ON e.employeeId = so.employeeId
		INNER JOIN OrderDetail od ON so.orderId = od.orderId
		GROUP BY r.regionId, r.regiondescription, t.territoryId, t.territorydescription,
		         e.employeeId, e.firstname, e.lastname
		ORDER BY r.regionId, total_revenue DESC
	`
	return r.queryRows(ctx, query)
}

// BusinessKPIs returns a single-row snapshot of company-wide metrics.
func (r *SalesAnalyticsRepository) BusinessKPIs(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH
		SalesMetrics AS (
			SELECT
				COUNT(DISTINCT so.orderId) AS total_orders,
				COUNT(DISTINCT so.custId) AS unique_customers,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue,
				SUM(so.freight) AS total_freight,
				AVG(od.unitPrice * od.quantity * (1 - od.discount)) AS avg_order_value
			FROM SalesOrder so
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
		),
		ProductMetrics AS (
			SELECT
				COUNT(DISTINCT productId) AS total_products,
				SUM(CASE WHEN discontinued = '1' THEN 1 ELSE 0 END) AS discontinued_products,
				COUNT(DISTINCT categoryId) AS total_categories,
				COUNT(DISTINCT supplierId) AS total_suppliers
			FROM Product
		),
		EmployeePerformance AS (
			SELECT
				AVG(order_count) AS avg_orders_per_employee,
				MAX(order_count) AS max_orders_per_employee,
				MIN(order_count) AS min_orders_per_employee
			FROM (
				SELECT employeeId, COUNT(orderId) AS order_count
				FROM SalesOrder
				GROUP BY employeeId
			) emp
		),
		ShippingMetrics AS (
			SELECT
				AVG(shippedDate::date - orderDate::date) AS avg_shipping_days,
				SUM(CASE WHEN shippedDate <= requiredDate THEN 1 ELSE 0 END) * 100.0 / COUNT(*) AS on_time_rate
			FROM SalesOrder
			WHERE shippedDate IS NOT NULL
		),
		MonthlyTrend AS (
			SELECT
				to_char(so.orderDate, 'YYYY-MM') AS month,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS revenue
			FROM SalesOrder so
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
			GROUP BY to_char(so.orderDate, 'YYYY-MM')
			ORDER BY month DESC
			LIMIT 1
		)
		SELECT
			sm.total_orders,
			sm.unique_customers AS active_customers,
			ROUND(sm.total_revenue::numeric, 2) AS total_revenue,
			ROUND(sm.total_freight::numeric, 2) AS total_freight_cost,
			ROUND(sm.avg_order_value::numeric, 2) AS avg_order_value,
			pm.total_products,
			pm.discontinued_products,
			pm.total_categories,
			pm.total_suppliers,
			ROUND(ep.avg_orders_per_employee, 0) AS avg_orders_per_employee,
			ep.max_orders_per_employee,
			ep.min_orders_per_employee,
			ROUND(shm.avg_shipping_days::numeric, 1) AS avg_shipping_days,
			ROUND(shm.on_time_rate::numeric, 2) AS on_time_delivery_rate,
			mt.month AS latest_month,
			ROUND(mt.revenue::numeric, 2) AS latest_month_revenue
		FROM SalesMetrics sm, ProductMetrics pm, EmployeePerformance ep, ShippingMetrics shm, MonthlyTrend mt
	`
	return r.queryRows(ctx, query)
}
