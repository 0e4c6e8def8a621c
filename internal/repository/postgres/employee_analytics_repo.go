// internal/repository/postgres/employee_analytics_repo.go
package postgres

import (
	"context"
)

type EmployeeAnalyticsRepository struct {
	analyticsRepo
}

func NewEmployeeAnalyticsRepository(db *DB) *EmployeeAnalyticsRepository {
	return &EmployeeAnalyticsRepository{analyticsRepo{db: db}}
}

// MonthlySales returns per-employee monthly sales performance.
func (r *EmployeeAnalyticsRepository) MonthlySales(ctx context.Context) ([]map[string]any, error) {
	query := `
		SELECT
			e.employeeId AS employee_id,
			e.firstname || ' ' || e.lastname AS employee_name,
			e.title,
			EXTRACT(YEAR FROM so.orderDate)::int AS order_year,
			EXTRACT(MONTH FROM so.orderDate)::int AS order_month,
			COUNT(DISTINCT so.orderId) AS total_orders,
			SUM(od.unitPrice * od.quantity * (1 - od.discount)) AS monthly_revenue,
			AVG(od.unitPrice * od.quantity * (1 - od.discount)) AS avg_order_value
		FROM Employee e
		INNER JOIN SalesOrder so ON e.employeeId = so.employeeId
		INNER JOIN OrderDetail od ON so.orderId = od.orderId
		GROUP BY e.employeeId, e.firstname, e.lastname, e.title,
		         EXTRACT(YEAR FROM so.orderDate), EXTRACT(MONTH FROM so.orderDate)
		ORDER BY e.employeeId, order_year, order_month
	`
	return r.queryRows(ctx, query)
}

// Hierarchy walks the manager chain recursively and attaches team revenue.
func (r *EmployeeAnalyticsRepository) Hierarchy(ctx context.Context) ([]map[string]any, error) {
	query := `
		WITH RECURSIVE EmployeeHierarchy AS (
			SELECT
				employeeId AS employee_id,
				firstname || ' ' || lastname AS employee_name,
				title,
				mgrId AS mgr_id,
				1 AS level,
				(firstname || ' ' || lastname)::text AS hierarchy_path
			FROM Employee
			WHERE mgrId IS NULL

			UNION ALL

			SELECT
				e.employeeId,
				e.firstname || ' ' || e.lastname,
				e.title,
				e.mgrId,
				eh.level + 1,
				eh.hierarchy_path || ' -> ' || e.firstname || ' ' || e.lastname
			FROM Employee e
			INNER JOIN EmployeeHierarchy eh ON e.mgrId = eh.employee_id
		)
		SELECT
			eh.employee_id,
			eh.employee_name,
			eh.title,
			eh.level,
			eh.hierarchy_path,
			COUNT(DISTINCT so.orderId) AS total_orders,
			COALESCE(SUM(od.unitPrice * od.quantity * (1 - od.discount)), 0) AS total_revenue
		FROM EmployeeHierarchy eh
		LEFT JOIN SalesOrder so ON eh.employee_id = so.employeeId
		LEFT JOIN OrderDetail od ON so.orderId = od.orderId
		GROUP BY eh.employee_id, eh.employee_name, eh.title, eh.level, eh.hierarchy_path
		ORDER BY eh.level, total_revenue DESC
	`
	return r.queryRows(ctx, query)
}
