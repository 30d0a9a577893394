package position

import (
	"time"

	"github.com/shopspring/decimal"
)

type Position struct {
	ID           string
	Title        string
	Code         string
	DepartmentID *string
	MinSalary    *decimal.Decimal
	MaxSalary    *decimal.Decimal
	CreatedAt    time.Time
}
