package payroll

import (
	"testing"
	"time"

	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func testCalculator() *BreakdownCalculator {
	return NewBreakdownCalculator(config.PayrollConfig{
		PenaltyPerViolation:                 10000,
		DefaultMonthDivisor:                 26,
		BonusCompanyHolidayDivisorPieceRate: 8,
		BonusCompanyHolidayDivisor:          2,
		BonusPartialDivisorPieceRate:        4,
		AuditTolerance:                      100,
	})
}

func testRecord() payroll.SalaryRecord {
	return payroll.SalaryRecord{
		EmployeeCode: "KT-001",
		Date:         time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
		Scheme:       "harian",
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, actual.Equal(decimal.RequireFromString(expected)),
		"expected %s, got %s", expected, actual.String())
}

func TestCompute_CleanMonthDailyAmount(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{MealAllowance: decimal.NewFromInt(2600000)},
		Divisor: 26,
	})

	assertDecimal(t, "0", b.Meal.Deduction)
	assertDecimal(t, "2600000", b.Meal.NetMonthly)
	assertDecimal(t, "100000", b.Meal.Daily)
}

func TestCompute_ViolationPenalty(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{MealAllowance: decimal.NewFromInt(1000000)},
		Divisor: 26,
		Counts:  attendance.ExceptionCounts{Sick: 1, Unexcused: 1},
	})

	assertDecimal(t, "20000", b.Meal.Deduction)
	assertDecimal(t, "980000", b.Meal.NetMonthly)
	assertDecimal(t, "37692.31", b.Meal.Daily.Round(2))
}

func TestCompute_ProRataReduction(t *testing.T) {
	calc := testCalculator()

	// 2 reduced days at 2,600,000/26 = 100,000 each.
	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{AttendanceAllowance: decimal.NewFromInt(2600000)},
		Divisor: 26,
		Counts:  attendance.ExceptionCounts{TransferDays: 2},
	})

	assertDecimal(t, "200000", b.Attendance.Deduction)
	assertDecimal(t, "2400000", b.Attendance.NetMonthly)
}

func TestCompute_NetAllowanceFloorsAtZero(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{MealAllowance: decimal.NewFromInt(50000)},
		Divisor: 26,
		Counts:  attendance.ExceptionCounts{Unexcused: 10},
	})

	assertDecimal(t, "100000", b.Meal.Deduction)
	assertDecimal(t, "0", b.Meal.NetMonthly)
	assertDecimal(t, "0", b.Meal.Daily)
}

func TestCompute_BonusForfeitedBeatsReduced(t *testing.T) {
	calc := testCalculator()

	// Transfer event plus a company holiday: forfeiture wins.
	b := calc.Compute(BreakdownInput{
		Record:          testRecord(),
		Rate:            payroll.MasterRate{Bonus: decimal.NewFromInt(520000)},
		Divisor:         26,
		Counts:          attendance.ExceptionCounts{CompanyHoliday: 1},
		CompanyTransfer: true,
	})

	assert.Equal(t, payroll.BonusForfeited, b.BonusState)
	assertDecimal(t, "0", b.Bonus.NetMonthly)
	assertDecimal(t, "0", b.Bonus.Daily)
}

func TestCompute_BonusForfeitedOnViolation(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{Bonus: decimal.NewFromInt(520000)},
		Divisor: 26,
		Counts:  attendance.ExceptionCounts{Permission: 1},
	})

	assert.Equal(t, payroll.BonusForfeited, b.BonusState)
	assertDecimal(t, "0", b.Bonus.NetMonthly)
}

func TestCompute_BonusForfeitedOnPersonalHoliday(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{Bonus: decimal.NewFromInt(520000)},
		Divisor: 26,
		Counts:  attendance.ExceptionCounts{PersonalHoliday: 1},
	})

	assert.Equal(t, payroll.BonusForfeited, b.BonusState)
	assertDecimal(t, "0", b.Bonus.NetMonthly)
}

func TestCompute_BonusReducedDivisors(t *testing.T) {
	calc := testCalculator()

	pieceRate := calc.Compute(BreakdownInput{
		Record:    testRecord(),
		Rate:      payroll.MasterRate{Bonus: decimal.NewFromInt(800000)},
		Divisor:   26,
		Counts:    attendance.ExceptionCounts{CompanyHoliday: 1},
		PieceRate: true,
	})
	assert.Equal(t, payroll.BonusReduced, pieceRate.BonusState)
	assertDecimal(t, "100000", pieceRate.Bonus.NetMonthly)

	daily := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{Bonus: decimal.NewFromInt(800000)},
		Divisor: 26,
		Counts:  attendance.ExceptionCounts{CompanyHoliday: 1},
	})
	assert.Equal(t, payroll.BonusReduced, daily.BonusState)
	assertDecimal(t, "400000", daily.Bonus.NetMonthly)
}

func TestCompute_BonusPartialForPieceRate(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:    testRecord(),
		Rate:      payroll.MasterRate{Bonus: decimal.NewFromInt(520000)},
		Divisor:   26,
		PieceRate: true,
	})

	assert.Equal(t, payroll.BonusPartial, b.BonusState)
	assertDecimal(t, "130000", b.Bonus.NetMonthly)
	assertDecimal(t, "5000", b.Bonus.Daily)
}

func TestCompute_BonusFull(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record:  testRecord(),
		Rate:    payroll.MasterRate{Bonus: decimal.NewFromInt(520000)},
		Divisor: 26,
	})

	assert.Equal(t, payroll.BonusFull, b.BonusState)
	assertDecimal(t, "520000", b.Bonus.NetMonthly)
	assertDecimal(t, "20000", b.Bonus.Daily)
}

func TestCompute_DefaultDivisorWhenUnset(t *testing.T) {
	calc := testCalculator()

	b := calc.Compute(BreakdownInput{
		Record: testRecord(),
		Rate:   payroll.MasterRate{MealAllowance: decimal.NewFromInt(2600000)},
	})

	assert.Equal(t, 26, b.MonthDivisor)
	assertDecimal(t, "100000", b.Meal.Daily)
}

func TestCompute_MissingMasterRateYieldsZeros(t *testing.T) {
	calc := testCalculator()

	record := testRecord()
	record.BasePay = decimal.NewFromInt(120000)
	record.OvertimePay = decimal.NewFromInt(15000)
	record.Total = decimal.NewFromInt(135000)

	b := calc.Compute(BreakdownInput{
		Record:  record,
		Divisor: 26,
	})

	assertDecimal(t, "0", b.Meal.Daily)
	assertDecimal(t, "0", b.Attendance.Daily)
	assertDecimal(t, "0", b.Bonus.Daily)
	assertDecimal(t, "135000", b.Total)
	assert.False(t, b.Stale)
}

func TestCompute_StaleWhenStoredTotalDiverges(t *testing.T) {
	calc := testCalculator()

	record := testRecord()
	record.BasePay = decimal.NewFromInt(120000)
	record.Total = decimal.NewFromInt(120000)

	within := calc.Compute(BreakdownInput{Record: record, Divisor: 26})
	assert.False(t, within.Stale)

	record.Total = decimal.NewFromInt(121000)
	diverged := calc.Compute(BreakdownInput{Record: record, Divisor: 26})
	assert.True(t, diverged.Stale)
	assertDecimal(t, "120000", diverged.Total)
	assertDecimal(t, "121000", diverged.StoredTotal)
}
