package excel

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// RowError pins a human-readable import failure to its spreadsheet row
// (1-based, as the user sees it). Row is zero for failures that are not tied
// to a single row, such as an aborted bulk write.
type RowError struct {
	Row    int    `json:"row,omitempty"`
	Reason string `json:"reason"`
}

// ImportRowError turns a batch failure entry into a RowError. Entries
// produced by import rows carry a "row N:" prefix; synthetic entries (safety
// limit, aborted run) do not and are reported without a row number.
func ImportRowError(failure string) RowError {
	var row int
	if _, err := fmt.Sscanf(failure, "row %d:", &row); err == nil {
		return RowError{Row: row, Reason: failure}
	}
	return RowError{Reason: failure}
}

// ImportSummary is returned by every spreadsheet import endpoint. Partial
// success is expected: imported rows are committed even when others fail.
type ImportSummary struct {
	Processed int        `json:"processed"`
	Imported  int        `json:"imported"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"errors,omitempty"`
}

// ParseWorkbook reads the first sheet of an xlsx file into rows of cells.
// The first row is expected to be a header and is returned as-is; callers
// decide how to map columns.
func ParseWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	return rows, nil
}

// BuildWorkbook writes a single-sheet xlsx file with a header row followed by
// the given rows.
func BuildWorkbook(sheetName string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("invalid header coordinate: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header %q: %w", header, err)
		}
	}

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, fmt.Errorf("invalid cell coordinate: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// serialEpoch is the spreadsheet day-zero (1899-12-30): serial 25569 is
// 1970-01-01.
var serialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

var indonesianMonths = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maret":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"agustus":   time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"desember":  time.December,
}

var englishMonths = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// ParseDate interprets a spreadsheet cell as a calendar date. Accepted forms:
// ISO (2025-10-02), DD/MM/YYYY, DD-MM-YYYY, a raw serial day count, and
// "day monthname year" with Indonesian or English month names.
func ParseDate(cell string) (time.Time, error) {
	s := strings.TrimSpace(cell)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006", "02-01-2006", "2-1-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	// Spreadsheet serial day count. Fractions carry the time of day; only the
	// date part is kept.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial < 1 || serial > 200000 {
			return time.Time{}, fmt.Errorf("serial date %s out of range", s)
		}
		sec := int64(serial * 86400)
		t := serialEpoch.Add(time.Duration(sec) * time.Second)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	if t, ok := parseLocalizedDate(s); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", cell)
}

// parseLocalizedDate handles "2 Oktober 2025" and "October 2, 2025" style
// values as they come out of user-edited sheets.
func parseLocalizedDate(s string) (time.Time, bool) {
	cleaned := strings.ReplaceAll(s, ",", " ")
	fields := strings.Fields(cleaned)
	if len(fields) != 3 {
		return time.Time{}, false
	}

	month, dayField, yearField := time.Month(0), "", ""
	for _, f := range fields {
		lower := strings.ToLower(f)
		if m, ok := indonesianMonths[lower]; ok {
			month = m
			continue
		}
		if m, ok := englishMonths[lower]; ok {
			month = m
			continue
		}
		if len(f) == 4 {
			yearField = f
		} else {
			dayField = f
		}
	}
	if month == 0 || dayField == "" || yearField == "" {
		return time.Time{}, false
	}

	day, err := strconv.Atoi(dayField)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearField)
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}
