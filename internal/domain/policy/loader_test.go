package policy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p := Default()

	require.NoError(t, p.Validate())
	assert.Equal(t, 25, p.MaxAnnualLeaveDays)
	assert.Equal(t, 15, p.MaxSickLeaveDays)
	assert.Equal(t, 90, p.ProbationPeriodDays)
	assert.Equal(t, 65, p.RetirementAge)
	assert.Len(t, p.SalaryBands, len(Levels))

	b, ok := p.Band(LevelSenior)
	require.True(t, ok)
	assert.True(t, b.Min.Equal(decimal.NewFromInt(80000)))
	assert.True(t, b.Max.Equal(decimal.NewFromInt(120000)))
}

func TestParse_PartialOverride(t *testing.T) {
	p, err := Parse([]byte(`
max_annual_leave_days: 30
salary_bands:
  senior: { min: "85000.50", max: 125000 }
`))

	require.NoError(t, err)
	assert.Equal(t, 30, p.MaxAnnualLeaveDays)
	assert.Equal(t, 15, p.MaxSickLeaveDays)

	senior, _ := p.Band(LevelSenior)
	assert.Equal(t, "85000.5", senior.Min.String())
	entry, _ := p.Band(LevelEntry)
	assert.True(t, entry.Min.Equal(decimal.NewFromInt(35000)))
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"negative cap":      "max_sick_leave_days: -1",
		"inverted increase": "min_salary_increase_pct: 0.2\nmax_salary_increase_pct: 0.1",
		"inverted band":     "salary_bands:\n  mid: { min: 90000, max: 60000 }",
		"bad amount":        "salary_bands:\n  mid: { min: lots, max: 60000 }",
		"malformed":         "max_annual_leave_days: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestValidate_MissingBand(t *testing.T) {
	p := Default()
	delete(p.SalaryBands, LevelDirector)

	err := p.Validate()

	assert.ErrorIs(t, err, ErrInvalidPolicy)
	assert.Contains(t, err.Error(), "director")
}

func TestClone_DoesNotShareBands(t *testing.T) {
	p := Default()
	c := p.Clone()

	c.SalaryBands[LevelMid] = SalaryBand{Min: decimal.Zero, Max: decimal.Zero}

	mid, _ := p.Band(LevelMid)
	assert.True(t, mid.Min.Equal(decimal.NewFromInt(60000)))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retirement_age: 67\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 67, p.RetirementAge)

	p, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().RetirementAge, p.RetirementAge)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_ExampleFile(t *testing.T) {
	p, err := Load(filepath.Join("..", "..", "..", "policy.example.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default().MaxAnnualLeaveDays, p.MaxAnnualLeaveDays)
	director, _ := p.Band(LevelDirector)
	assert.True(t, director.Max.Equal(decimal.NewFromInt(200000)))
}
