package employee

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurniatex/payroll-backend-go/internal/domain/employee"
)

func TestParseEmployeeRow(t *testing.T) {
	emp, err := parseEmployeeRow([]string{"kt-001", "Siti Rahma", "3275014403900012", "A", "Harian", "Jahit", "2024-03-01"})
	require.NoError(t, err)

	assert.Equal(t, "KT-001", emp.Code)
	assert.Equal(t, "Siti Rahma", emp.Name)
	require.NotNil(t, emp.NIK)
	assert.Equal(t, "3275014403900012", *emp.NIK)
	assert.Equal(t, "A", emp.Grade)
	assert.Equal(t, employee.SchemeDaily, emp.Scheme)
	require.NotNil(t, emp.Section)
	assert.Equal(t, "Jahit", *emp.Section)
	require.NotNil(t, emp.JoinDate)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *emp.JoinDate)
	assert.True(t, emp.Active)
}

func TestParseEmployeeRow_OptionalColumns(t *testing.T) {
	emp, err := parseEmployeeRow([]string{"KT-002", "Budi Santoso", "", "B", "borongan"})
	require.NoError(t, err)

	assert.Nil(t, emp.NIK)
	assert.Nil(t, emp.Section)
	assert.Nil(t, emp.JoinDate)
	assert.Equal(t, employee.SchemePieceRate, emp.Scheme)
}

func TestParseEmployeeRow_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
	}{
		{"too few columns", []string{"KT-001", "Siti"}},
		{"missing code", []string{"", "Siti", "", "A", "harian"}},
		{"missing name", []string{"KT-001", "", "", "A", "harian"}},
		{"short NIK", []string{"KT-001", "Siti", "12345", "A", "harian"}},
		{"unknown scheme", []string{"KT-001", "Siti", "", "A", "mingguan"}},
		{"bad join date", []string{"KT-001", "Siti", "", "A", "harian", "", "kemarin"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseEmployeeRow(tc.cells)
			assert.Error(t, err)
		})
	}
}
