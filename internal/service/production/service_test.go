package production

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputRow(t *testing.T) {
	out, err := parseOutputRow([]string{"kt-002", "2025-10-02", "Kemeja L", "30", "5000"})
	require.NoError(t, err)

	assert.Equal(t, "KT-002", out.EmployeeCode)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), out.Date)
	assert.Equal(t, "Kemeja L", out.Item)
	assert.Equal(t, "30", out.Quantity.String())
	assert.Equal(t, "5000", out.Rate.String())
}

func TestParseOutputRow_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		cells []string
	}{
		{"too few columns", []string{"KT-002", "2025-10-02", "Kemeja L", "30"}},
		{"missing code", []string{"", "2025-10-02", "Kemeja L", "30", "5000"}},
		{"bad date", []string{"KT-002", "kemarin", "Kemeja L", "30", "5000"}},
		{"missing item", []string{"KT-002", "2025-10-02", "", "30", "5000"}},
		{"zero quantity", []string{"KT-002", "2025-10-02", "Kemeja L", "0", "5000"}},
		{"negative quantity", []string{"KT-002", "2025-10-02", "Kemeja L", "-3", "5000"}},
		{"negative rate", []string{"KT-002", "2025-10-02", "Kemeja L", "30", "-100"}},
		{"rate not a number", []string{"KT-002", "2025-10-02", "Kemeja L", "30", "lima ribu"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseOutputRow(tc.cells)
			assert.Error(t, err)
		})
	}
}
