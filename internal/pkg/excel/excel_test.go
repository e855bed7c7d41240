package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate_ISO(t *testing.T) {
	t.Parallel()
	got, err := ParseDate("2025-10-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_DayMonthYearSlash(t *testing.T) {
	t.Parallel()
	got, err := ParseDate("02/10/2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("2/1/2026")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_DayMonthYearDash(t *testing.T) {
	t.Parallel()
	got, err := ParseDate("02-10-2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_SpreadsheetSerial(t *testing.T) {
	t.Parallel()
	// Serial 45931 with the 1899-12-30 epoch lands on 2025-10-02.
	got, err := ParseDate("45931")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_SerialWithTimeFraction(t *testing.T) {
	t.Parallel()
	got, err := ParseDate("45931.75")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got, "time-of-day fraction is discarded")
}

func TestParseDate_IndonesianMonthName(t *testing.T) {
	t.Parallel()
	got, err := ParseDate("2 Oktober 2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got)

	got, err = ParseDate("17 Agustus 1945")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1945, 8, 17, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_EnglishMonthName(t *testing.T) {
	t.Parallel()
	got, err := ParseDate("October 2, 2025")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_Invalid(t *testing.T) {
	t.Parallel()
	for _, s := range []string{"", "   ", "bukan tanggal", "32 Oktober 2025", "99999999"} {
		_, err := ParseDate(s)
		assert.Error(t, err, s)
	}
}

func TestWorkbookRoundTrip(t *testing.T) {
	t.Parallel()
	headers := []string{"NIK", "Nama", "Tanggal", "Kode"}
	rows := [][]interface{}{
		{"EMP-001", "Siti Rahayu", "2025-10-02", "H"},
		{"EMP-002", "Budi Santoso", "2025-10-02", "S"},
	}

	data, err := BuildWorkbook("Absensi", headers, rows)
	require.NoError(t, err)

	parsed, err := ParseWorkbook(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, headers, parsed[0])
	assert.Equal(t, []string{"EMP-001", "Siti Rahayu", "2025-10-02", "H"}, parsed[1])
	assert.Equal(t, []string{"EMP-002", "Budi Santoso", "2025-10-02", "S"}, parsed[2])
}

func TestImportRowError(t *testing.T) {
	withRow := ImportRowError("row 12: invalid date \"besok\"")
	assert.Equal(t, 12, withRow.Row)
	assert.Equal(t, "row 12: invalid date \"besok\"", withRow.Reason)

	synthetic := ImportRowError("run aborted: context canceled, 4 of 10 items processed")
	assert.Zero(t, synthetic.Row)
	assert.Equal(t, "run aborted: context canceled, 4 of 10 items processed", synthetic.Reason)
}
