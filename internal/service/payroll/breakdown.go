package payroll

import (
	"github.com/kurniatex/payroll-backend-go/internal/config"
	"github.com/kurniatex/payroll-backend-go/internal/domain/attendance"
	"github.com/kurniatex/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// BreakdownCalculator recomputes, from monthly master figures, how one
// stored employee-day total was derived. It replicates the formulas of the
// server-side sync procedure; the stored total stays authoritative and the
// calculator only explains it.
type BreakdownCalculator struct {
	penaltyPerViolation decimal.Decimal
	defaultDivisor      int

	bonusCompanyHolidayDivisorPieceRate decimal.Decimal
	bonusCompanyHolidayDivisor          decimal.Decimal
	bonusPartialDivisorPieceRate        decimal.Decimal

	tolerance decimal.Decimal
}

func NewBreakdownCalculator(cfg config.PayrollConfig) *BreakdownCalculator {
	return &BreakdownCalculator{
		penaltyPerViolation:                 decimal.NewFromInt(cfg.PenaltyPerViolation),
		defaultDivisor:                      cfg.DefaultMonthDivisor,
		bonusCompanyHolidayDivisorPieceRate: decimal.NewFromInt(cfg.BonusCompanyHolidayDivisorPieceRate),
		bonusCompanyHolidayDivisor:          decimal.NewFromInt(cfg.BonusCompanyHolidayDivisor),
		bonusPartialDivisorPieceRate:        decimal.NewFromInt(cfg.BonusPartialDivisorPieceRate),
		tolerance:                           decimal.NewFromInt(cfg.AuditTolerance),
	}
}

// BreakdownInput carries everything the calculator needs for one
// employee-day. Rate is the zero value when no master rate exists for the
// grade and month; every monthly base is then zero and the breakdown still
// renders. Divisor <= 0 falls back to the configured default.
type BreakdownInput struct {
	Record          payroll.SalaryRecord
	Rate            payroll.MasterRate
	Divisor         int
	Counts          attendance.ExceptionCounts
	PieceRate       bool
	CompanyTransfer bool
}

func (c *BreakdownCalculator) Compute(in BreakdownInput) payroll.Breakdown {
	divisor := in.Divisor
	if divisor <= 0 {
		divisor = c.defaultDivisor
	}
	div := decimal.NewFromInt(int64(divisor))

	meal := c.allowance(in.Rate.MealAllowance, in.Counts, div)
	att := c.allowance(in.Rate.AttendanceAllowance, in.Counts, div)
	bonus, state := c.bonus(in.Rate.Bonus, in.Counts, in.PieceRate, in.CompanyTransfer, div)

	total := in.Record.BasePay.
		Add(in.Record.OvertimePay).
		Add(meal.Daily).
		Add(att.Daily).
		Add(bonus.Daily)

	return payroll.Breakdown{
		EmployeeCode: in.Record.EmployeeCode,
		Date:         in.Record.Date.Format("2006-01-02"),
		MonthDivisor: divisor,
		Meal:         meal,
		Attendance:   att,
		Bonus:        bonus,
		BonusState:   state,
		BasePay:      in.Record.BasePay,
		OvertimePay:  in.Record.OvertimePay,
		Total:        total,
		StoredTotal:  in.Record.Total,
		Stale:        total.Sub(in.Record.Total).Abs().GreaterThan(c.tolerance),
	}
}

// allowance applies the two deductions shared by the meal and attendance
// allowances: a flat penalty per violation and a pro-rata reduction for
// reduced working days.
func (c *BreakdownCalculator) allowance(monthlyBase decimal.Decimal, counts attendance.ExceptionCounts, div decimal.Decimal) payroll.ComponentBreakdown {
	flatPenalty := c.penaltyPerViolation.Mul(decimal.NewFromInt(int64(counts.Violations())))
	proRata := monthlyBase.Div(div).Mul(decimal.NewFromInt(int64(counts.ReducedDays())))
	deduction := flatPenalty.Add(proRata)

	net := monthlyBase.Sub(deduction)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payroll.ComponentBreakdown{
		MonthlyBase: monthlyBase,
		Deduction:   deduction,
		NetMonthly:  net,
		Daily:       net.Div(div),
	}
}

// bonus evaluates the priority-ordered bonus states. First match wins:
// forfeited, then reduced, then partial, then full.
func (c *BreakdownCalculator) bonus(monthlyBonus decimal.Decimal, counts attendance.ExceptionCounts, pieceRate, transfer bool, div decimal.Decimal) (payroll.ComponentBreakdown, payroll.BonusState) {
	var net decimal.Decimal
	var state payroll.BonusState

	switch {
	case transfer || counts.Violations() > 0 || counts.PersonalHoliday > 0:
		state = payroll.BonusForfeited
		net = decimal.Zero
	case counts.CompanyHoliday > 0:
		state = payroll.BonusReduced
		if pieceRate {
			net = monthlyBonus.Div(c.bonusCompanyHolidayDivisorPieceRate)
		} else {
			net = monthlyBonus.Div(c.bonusCompanyHolidayDivisor)
		}
	case pieceRate:
		state = payroll.BonusPartial
		net = monthlyBonus.Div(c.bonusPartialDivisorPieceRate)
	default:
		state = payroll.BonusFull
		net = monthlyBonus
	}

	return payroll.ComponentBreakdown{
		MonthlyBase: monthlyBonus,
		Deduction:   monthlyBonus.Sub(net),
		NetMonthly:  net,
		Daily:       net.Div(div),
	}, state
}
