// internal/repository/postgres/product_analytics_repo.go
package postgres

import (
	"context"
)

type ProductAnalyticsRepository struct {
	analyticsRepo
}

func NewProductAnalyticsRepository(db *DB) *ProductAnalyticsRepository {
	return &ProductAnalyticsRepository{analyticsRepo{db: db}}
}

// TopRevenueProducts returns the highest-grossing products.
func (r *ProductAnalyticsRepository) TopRevenueProducts(ctx context.Context, limit int) ([]map[string]any, error) {
	query := `
		SELECT
			p.productId AS product_id,
			p.productName AS product_name,
			SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue,
			SUM(od.quantity) AS total_quantity_sold,
			COUNT(DISTINCT od.orderId) AS total_orders
		FROM Product p
		INNER JOIN OrderDetail od ON p.productId = od.productId
		GROUP BY p.productId, p.productName
		ORDER BY total_revenue DESC
		LIMIT $1
	`
	return r.queryRows(ctx, query, limit)
}

// MarketBasket returns product pairs frequently bought together. The
// threshold and limit are interpolated through intLiteral because a bind
// parameter cannot appear in this HAVING clause shape; both values are
// strict ints by the time they reach this method.
func (r *ProductAnalyticsRepository) MarketBasket(ctx context.Context, minOccurrences, limit int) ([]map[string]any, error) {
	query := `
		WITH ProductPairs AS (
			SELECT
				od1.productId AS product1,
				od2.productId AS product2,
				COUNT(DISTINCT od1.orderId) AS times_bought_together
			FROM OrderDetail od1
			INNER JOIN OrderDetail od2 ON od1.orderId = od2.orderId
				AND od1.productId < od2.productId
			GROUP BY od1.productId, od2.productId
			HAVING COUNT(DISTINCT od1.orderId) >= ` + intLiteral(minOccurrences) + `
		)
		SELECT
			p1.productName AS product_name1,
			p2.productName AS product_name2,
			pp.times_bought_together,
			ROUND(pp.times_bought_together * 100.0 /
				(SELECT COUNT(DISTINCT orderId) FROM SalesOrder), 2) AS support_percent
		FROM ProductPairs pp
		INNER JOIN Product p1 ON pp.product1 = p1.productId
		INNER JOIN Product p2 ON pp.product2 = p2.productId
		ORDER BY times_bought_together DESC
		LIMIT ` + intLiteral(limit)
	return r.queryRows(ctx, query)
}

// ABCAnalysis classifies products by cumulative revenue contribution.
func (r *ProductAnalyticsRepository) ABCAnalysis(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH ProductRevenue AS (
			SELECT
				p.productId AS product_id,
				p.productName AS product_name,
				cat.categoryName AS category_name,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue
			FROM Product p
			INNER JOIN Category cat ON p.categoryId = cat.categoryId
			INNER JOIN OrderDetail od ON p.productId = od.productId
			GROUP BY p.productId, p.productName, cat.categoryName
		),
		RevenueRanked AS (
			SELECT
				*,
				SUM(total_revenue) OVER (ORDER BY total_revenue DESC) AS cumulative_revenue,
				SUM(total_revenue) OVER () AS grand_total_revenue,
				ROW_NUMBER() OVER (ORDER BY total_revenue DESC) AS revenue_rank
			FROM ProductRevenue
		)
		SELECT
			product_id,
			product_name,
			category_name,
			ROUND(total_revenue::numeric, 2) AS total_revenue,
			revenue_rank,
			ROUND(cumulative_revenue::numeric, 2) AS cumulative_revenue,
			ROUND((cumulative_revenue * 100.0 / grand_total_revenue)::numeric, 2) AS cumulative_percent,
			CASE
				WHEN cumulative_revenue * 100.0 / grand_total_revenue <= 70 THEN 'A (Top 70%)'
				WHEN cumulative_revenue * 100.0 / grand_total_revenue <= 90 THEN 'B (Next 20%)'
				ELSE 'C (Bottom 10%)'
			END AS abc_category
		FROM RevenueRanked
		ORDER BY revenue_rank
	`
	return r.queryRows(ctx, query)
}

// DiscontinuedAnalysis compares active vs discontinued products, with a
// grand total row appended.
func (r *ProductAnalyticsRepository) DiscontinuedAnalysis(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH ProductAnalysis AS (
			SELECT
				p.productId,
				p.productName,
				p.discontinued,
				CASE WHEN p.discontinued = '1' THEN 'Discontinued' ELSE 'Active' END AS product_status,
				cat.categoryName,
				s.companyName AS supplierName,
				COUNT(DISTINCT od.orderId) AS order_count,
				SUM(od.quantity) AS total_quantity_sold,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_revenue,
				AVG(od.discount) AS avg_discount,
				MAX(so.orderDate) AS last_order_date
			FROM Product p
			INNER JOIN Category cat ON p.categoryId = cat.categoryId
			INNER JOIN Supplier s ON p.supplierId = s.supplierId
			LEFT JOIN OrderDetail od ON p.productId = od.productId
			LEFT JOIN SalesOrder so ON od.orderId = so.orderId
			GROUP BY p.productId, p.productName, p.discontinued, cat.categoryName, s.companyName
		)
		SELECT
			product_status,
			COUNT(*) AS product_count,
			SUM(order_count) AS total_orders,
			SUM(total_quantity_sold) AS total_units_sold,
			SUM(total_revenue) AS total_revenue,
			AVG(total_revenue) AS avg_revenue_per_product,
			AVG(avg_discount) AS avg_discount_given
		FROM ProductAnalysis
		GROUP BY product_status

		UNION ALL

		SELECT
			'GRAND TOTAL' AS product_status,
			COUNT(*) AS product_count,
			SUM(order_count) AS total_orders,
			SUM(total_quantity_sold) AS total_units_sold,
			SUM(total_revenue) AS total_revenue,
			AVG(total_revenue) AS avg_revenue_per_product,
			AVG(avg_discount) AS avg_discount_given
		FROM ProductAnalysis
	`
	return r.queryRows(ctx, query)
}
