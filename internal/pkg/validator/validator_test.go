package validator

import (
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"123", "0", "9876543210"}
	invalid := []string{"abc", "123a", "", "-123"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidMonth(t *testing.T) {
	valid := []string{"2025-01", "2000-12"}
	invalid := []string{"2025-13", "2025-1", "2025/01", "2025-01-01", ""}
	for _, s := range valid {
		_, ok := IsValidMonth(s)
		if !ok {
			t.Errorf("IsValidMonth(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidMonth(s)
		if ok {
			t.Errorf("IsValidMonth(%q) = true, want false", s)
		}
	}
}

func TestIsValidNIK(t *testing.T) {
	valid := []string{"1234567890123456"}
	invalid := []string{"123456789012345", "12345678901234567", "abcdefghabcdefgh", "12345678901234ab"}
	for _, nik := range valid {
		if !IsValidNIK(nik) {
			t.Errorf("IsValidNIK(%q) = false, want true", nik)
		}
	}
	for _, nik := range invalid {
		if IsValidNIK(nik) {
			t.Errorf("IsValidNIK(%q) = true, want false", nik)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"KT-001", "PRD2-12345", "B7-999"}
	invalid := []string{"kt-001", "KT001", "-001", "KT-", "KT-12a", ""}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice('a') = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice('d') = true, want false")
	}
}

func TestIsValidUUID(t *testing.T) {
	if !IsValidUUID("6f1d24b7-26f8-4bf0-9aee-2321b1d1b53a") {
		t.Errorf("IsValidUUID(valid) = false, want true")
	}
	if IsValidUUID("") {
		t.Errorf("IsValidUUID(empty) = true, want false")
	}
	if IsValidUUID("not-a-uuid") {
		t.Errorf("IsValidUUID('not-a-uuid') = true, want false")
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_code", Message: "invalid"},
		{Field: "date", Message: "required"},
	}
	got := errs.Error()
	want := "employee_code: invalid; date: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "employee_code", Message: "invalid"},
		{Field: "date", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"employee_code": "invalid", "date": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}
