// internal/repository/postgres/shipping_analytics_repo.go
package postgres

import (
	"context"
)

type ShippingAnalyticsRepository struct {
	analyticsRepo
}

func NewShippingAnalyticsRepository(db *DB) *ShippingAnalyticsRepository {
	return &ShippingAnalyticsRepository{analyticsRepo{db: db}}
}

// ShipperEfficiency reports freight cost and on-time delivery per shipper.
func (r *ShippingAnalyticsRepository) ShipperEfficiency(ctx context.Context) ([]map[string]any, error) {
	query := `
		SELECT
			sh.shipperId AS shipper_id,
			sh.companyName AS shipper_name,
			COUNT(DISTINCT so.orderId) AS total_shipments,
			SUM(so.freight) AS total_freight_cost,
			AVG(so.freight) AS avg_freight_cost,
			STDDEV(so.freight) AS freight_std_dev,
			MIN(so.freight) AS min_freight,
			MAX(so.freight) AS max_freight,
			AVG(so.shippedDate::date - so.orderDate::date) AS avg_shipping_days,
			SUM(CASE WHEN so.shippedDate <= so.requiredDate THEN 1 ELSE 0 END) AS on_time_deliveries,
			ROUND(
				SUM(CASE WHEN so.shippedDate <= so.requiredDate THEN 1 ELSE 0 END) * 100.0
				/ COUNT(DISTINCT so.orderId), 2
			) AS on_time_delivery_rate,
			SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS total_order_value,
			ROUND((SUM(so.freight) * 100.0 / SUM(od.unitPrice * od.quantity * (1 - od.discount)))::numeric, 2) AS freight_to_value_ratio
		FROM Shipper sh
		INNER JOIN SalesOrder so ON sh.shipperId = so.shipperId
		INNER JOIN OrderDetail od ON so.orderId = od.orderId
		WHERE so.shippedDate IS NOT NULL
		GROUP BY sh.shipperId, sh.companyName
		ORDER BY total_shipments DESC
	`
	return r.queryRows(ctx, query)
}
