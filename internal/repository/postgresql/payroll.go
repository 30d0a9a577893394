package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-policy-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db database.Querier
}

func NewPayrollRepository(db database.Querier) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// GetLatestByEmployeeID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetLatestByEmployeeID(ctx context.Context, employeeID string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, pay_period_start, pay_period_end, basic_salary,
			overtime_hours, overtime_rate, net_salary, pay_date
		FROM payrolls
		WHERE employee_id = $1
		ORDER BY pay_period_end DESC, id DESC
		LIMIT 1
	`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, employeeID).Scan(
		&p.ID,
		&p.EmployeeID,
		&p.PayPeriodStart,
		&p.PayPeriodEnd,
		&p.BasicSalary,
		&p.OvertimeHours,
		&p.OvertimeRate,
		&p.NetSalary,
		&p.PayDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get latest payroll: %w", err)
	}

	return p, nil
}
