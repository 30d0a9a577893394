package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is one pay-period record. The latest record is the one with the greatest PayPeriodEnd.
type Payroll struct {
	ID             string
	EmployeeID     string
	PayPeriodStart time.Time
	PayPeriodEnd   time.Time
	BasicSalary    decimal.Decimal
	OvertimeHours  *decimal.Decimal
	OvertimeRate   *decimal.Decimal
	NetSalary      decimal.Decimal
	PayDate        *time.Time
}
