// internal/repository/postgres/category_analytics_repo.go
package postgres

import (
	"context"
)

type CategoryAnalyticsRepository struct {
	analyticsRepo
}

func NewCategoryAnalyticsRepository(db *DB) *CategoryAnalyticsRepository {
	return &CategoryAnalyticsRepository{analyticsRepo{db: db}}
}

// MonthlyGrowth computes month-over-month revenue growth per category.
func (r *CategoryAnalyticsRepository) MonthlyGrowth(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH MonthlyCategorySales AS (
			SELECT
				c.categoryId,
				c.categoryName AS category_name,
				to_char(so.orderDate, 'YYYY-MM') AS sales_month,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS monthly_revenue
			FROM Category c
			INNER JOIN Product p ON c.categoryId = p.categoryId
			INNER JOIN OrderDetail od ON p.productId = od.productId
			INNER JOIN SalesOrder so ON od.orderId = so.orderId
			GROUP BY c.categoryId, c.categoryName, to_char(so.orderDate, 'YYYY-MM')
		)
		SELECT
			category_name,
			sales_month,
			monthly_revenue,
			LAG(monthly_revenue) OVER (PARTITION BY categoryId ORDER BY sales_month) AS prev_month_revenue,
			ROUND(
				((monthly_revenue - LAG(monthly_revenue) OVER (PARTITION BY categoryId ORDER BY sales_month))
				/ NULLIF(LAG(monthly_revenue) OVER (PARTITION BY categoryId ORDER BY sales_month), 0) * 100)::numeric, 2
			) AS mom_growth_percent
		FROM MonthlyCategorySales
		ORDER BY category_name, sales_month
	`
	return r.queryRows(ctx, query)
}

// CountryBreakdown pivots revenue by country across the fixed category set.
func (r *CategoryAnalyticsRepository) CountryBreakdown(ctx context.Context) ([]map[string]any, error) {
	query := `
		SELECT
			c.country,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Beverages' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS beverages,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Condiments' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS condiments,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Confections' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS confections,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Dairy Products' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS dairy_products,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Grains/Cereals' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS grains_cereals,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Meat/Poultry' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS meat_poultry,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Produce' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS produce,
			ROUND(SUM(CASE WHEN cat.categoryName = 'Seafood' THEN od.unitPrice * od.quantity * (1 - od.discount) ELSE 0 END)::numeric, 2) AS seafood,
			ROUND(SUM(od.unitPrice * od.quantity * (1 - od.discount))::numeric, 2) AS total_revenue
		FROM Customer c
		INNER JOIN SalesOrder so ON c.custId = so.custId
		INNER JOIN OrderDetail od ON so.orderId = od.orderId
		INNER JOIN Product p ON od.productId = p.productId
		INNER JOIN Category cat ON p.categoryId = cat.categoryId
		GROUP BY c.country
		ORDER BY total_revenue DESC
	`
	return r.queryRows(ctx, query)
}
