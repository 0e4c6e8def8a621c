// internal/repository/postgres/customer_analytics_repo.go
package postgres

import (
	"context"
	"time"
)

type CustomerAnalyticsRepository struct {
	analyticsRepo
}

func NewCustomerAnalyticsRepository(db *DB) *CustomerAnalyticsRepository {
	return &CustomerAnalyticsRepository{analyticsRepo{db: db}}
}

// TopByCountry finds the highest-spending customer in each country.
func (r *CustomerAnalyticsRepository) TopByCountry(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH CustomerRevenue AS (
			SELECT
				c.custId AS cust_id,
				c.companyName AS company_name,
				c.country,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_spent,
				COUNT(DISTINCT so.orderId) AS order_count
			FROM Customer c
			INNER JOIN SalesOrder so ON c.custId = so.custId
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
			GROUP BY c.custId, c.companyName, c.country
		),
		RankedCustomers AS (
			SELECT
				*,
				RANK() OVER (PARTITION BY country ORDER BY total_spent DESC) AS country_rank,
				SUM(total_spent) OVER (PARTITION BY country ORDER BY total_spent DESC) AS running_total
			FROM CustomerRevenue
		)
		SELECT
			country,
			company_name,
			total_spent,
			order_count,
			running_total,
			ROUND((total_spent * 100.0 / SUM(total_spent) OVER (PARTITION BY country))::numeric, 2) AS percent_of_country
		FROM RankedCustomers
		WHERE country_rank = 1
		ORDER BY total_spent DESC
	`
	return r.queryRows(ctx, query)
}

// RFMSegmentation scores customers on recency, frequency and monetary
// value relative to the given reference date.
func (r *CustomerAnalyticsRepository) RFMSegmentation(ctx context.Context, referenceDate time.Time) ([]map[string]any, error) {
	query := `
		WITH CustomerMetrics AS (
			SELECT
				c.custId AS cust_id,
				c.companyName AS company_name,
				($1::date - MAX(so.orderDate)::date) AS recency,
				COUNT(DISTINCT so.orderId) AS frequency,
				SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS monetary
			FROM Customer c
			INNER JOIN SalesOrder so ON c.custId = so.custId
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
			GROUP BY c.custId, c.companyName
		),
		RFMScores AS (
			SELECT
				*,
				NTILE(5) OVER (ORDER BY recency DESC) AS r_score,
				NTILE(5) OVER (ORDER BY frequency ASC) AS f_score,
				NTILE(5) OVER (ORDER BY monetary ASC) AS m_score
			FROM CustomerMetrics
		)
		SELECT
			cust_id,
			company_name,
			recency,
			frequency,
			monetary,
			r_score,
			f_score,
			m_score,
			r_score::text || f_score::text || m_score::text AS rfm_segment,
			CASE
				WHEN r_score >= 4 AND f_score >= 4 AND m_score >= 4 THEN 'Champions'
				WHEN r_score >= 3 AND f_score >= 3 THEN 'Loyal Customers'
				WHEN r_score >= 4 AND f_score <= 2 THEN 'New Customers'
				WHEN r_score <= 2 AND f_score >= 3 THEN 'At Risk'
				WHEN r_score <= 2 AND f_score <= 2 THEN 'Lost'
				ELSE 'Regular'
			END AS customer_segment
		FROM RFMScores
		ORDER BY monetary DESC
	`
	return r.queryRows(ctx, query, referenceDate)
}

// RetentionAnalysis classifies customers by reorder cadence.
func (r *CustomerAnalyticsRepository) RetentionAnalysis(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH CustomerOrders AS (
			SELECT
				c.custId AS cust_id,
				c.companyName AS company_name,
				c.country,
				so.orderId AS order_id,
				so.orderDate AS order_date,
				ROW_NUMBER() OVER (PARTITION BY c.custId ORDER BY so.orderDate) AS order_sequence,
				LAG(so.orderDate) OVER (PARTITION BY c.custId ORDER BY so.orderDate) AS prev_order_date
			FROM Customer c
			INNER JOIN SalesOrder so ON c.custId = so.custId
		)
		SELECT
			cust_id,
			company_name,
			country,
			COUNT(order_id) AS total_orders,
			MIN(order_date) AS first_order_date,
			MAX(order_date) AS last_order_date,
			(MAX(order_date)::date - MIN(order_date)::date) AS customer_lifespan_days,
			AVG(order_date::date - prev_order_date::date) AS avg_days_between_orders,
			CASE
				WHEN COUNT(order_id) = 1 THEN 'One-Time Buyer'
				WHEN AVG(order_date::date - prev_order_date::date) <= 30 THEN 'Frequent Buyer'
				WHEN AVG(order_date::date - prev_order_date::date) <= 90 THEN 'Regular Buyer'
				ELSE 'Occasional Buyer'
			END AS buyer_type
		FROM CustomerOrders
		GROUP BY cust_id, company_name, country
		HAVING COUNT(order_id) >= 1
		ORDER BY total_orders DESC
	`
	return r.queryRows(ctx, query)
}

// DiscountBehavior profiles how aggressively each customer uses discounts.
func (r *CustomerAnalyticsRepository) DiscountBehavior(ctx context.Context, limit int) ([]map[string]any, error) {
	query := `
		WITH CustomerDiscountBehavior AS (
			SELECT
				c.custId AS cust_id,
				c.companyName AS company_name,
				c.country,
				COUNT(DISTINCT so.orderId) AS total_orders,
				SUM(od.unitPrice * od.quantity) AS gross_purchases,
				SUM(od.unitPrice * od.quantity * od.discount) AS total_discount_received,
				AVG(od.discount) AS avg_discount_rate,
				SUM(CASE WHEN od.discount > 0 THEN 1 ELSE 0 END) AS discounted_line_items,
				COUNT(od.orderDetailId) AS total_line_items
			FROM Customer c
			INNER JOIN SalesOrder so ON c.custId = so.custId
			INNER JOIN OrderDetail od ON so.orderId = od.orderId
			GROUP BY c.custId, c.companyName, c.country
		)
		SELECT
			cust_id,
			company_name,
			country,
			total_orders,
			ROUND(gross_purchases::numeric, 2) AS gross_purchases,
			ROUND(total_discount_received::numeric, 2) AS total_discount_received,
			ROUND((avg_discount_rate * 100)::numeric, 2) AS avg_discount_percent,
			discounted_line_items,
			total_line_items,
			ROUND((discounted_line_items * 100.0 / NULLIF(total_line_items, 0))::numeric, 2) AS discounted_items_percent,
			ROUND((total_discount_received * 100.0 / NULLIF(gross_purchases, 0))::numeric, 2) AS overall_discount_impact,
			CASE
				WHEN avg_discount_rate >= 0.15 THEN 'Discount Hunter'
				WHEN avg_discount_rate >= 0.05 THEN 'Discount Aware'
				ELSE 'Full Price Buyer'
			END AS discount_behavior
		FROM CustomerDiscountBehavior
		ORDER BY total_discount_received DESC
		LIMIT $1
	`
	return r.queryRows(ctx, query, limit)
}
