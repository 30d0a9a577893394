package postgresql

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-policy-engine/internal/domain/master/position"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var positionCols = []string{"id", "title", "code", "department_id", "min_salary", "max_salary", "created_at"}

func TestPositionRepository_GetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPositionRepository(mock)
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM positions\s+WHERE id = \$1`).
		WithArgs("pos-1").
		WillReturnRows(pgxmock.NewRows(positionCols).
			AddRow("pos-1", "Engineering Manager", "ENG-MGR", ptr("dept-1"),
				ptr(decimal.RequireFromString("100000.00")), ptr(decimal.RequireFromString("150000.00")), created))

	pos, err := repo.GetByID(context.Background(), "pos-1")

	require.NoError(t, err)
	assert.Equal(t, "Engineering Manager", pos.Title)
	require.NotNil(t, pos.DepartmentID)
	assert.Equal(t, "dept-1", *pos.DepartmentID)
	require.NotNil(t, pos.MinSalary)
	assert.Equal(t, "100000", pos.MinSalary.String())
	require.NotNil(t, pos.MaxSalary)
	assert.Equal(t, "150000", pos.MaxSalary.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPositionRepository_GetByID_OpenRange(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPositionRepository(mock)
	mock.ExpectQuery(`FROM positions`).
		WithArgs("pos-2").
		WillReturnRows(pgxmock.NewRows(positionCols).
			AddRow("pos-2", "Intern", "INT", nil, nil, nil, time.Now()))

	pos, err := repo.GetByID(context.Background(), "pos-2")

	require.NoError(t, err)
	assert.Nil(t, pos.DepartmentID)
	assert.Nil(t, pos.MinSalary)
	assert.Nil(t, pos.MaxSalary)
}

func TestPositionRepository_GetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPositionRepository(mock)
	mock.ExpectQuery(`FROM positions`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "ghost")

	assert.ErrorIs(t, err, position.ErrPositionNotFound)
}
