// Package calculators implements the simple personal-finance calculators
// that sit alongside the options pricing core: compound-interest
// projection and its inverse solvers, the DCA trade-count optimizer,
// the capital-gains breakeven calculator and the options strategy
// helpers. All functions are pure and validate before computing.
package calculators

import (
	"math"

	calcerrors "fincalc/internal/errors"
)

// DefaultMaxGoalYears bounds the years-to-goal scan.
const DefaultMaxGoalYears = 1000

// CompoundInputs describes a recurring-deposit investment.
type CompoundInputs struct {
	Principal          float64 `json:"principal"`
	AnnualRatePct      float64 `json:"annual_rate_pct"`
	Years              int     `json:"years"`
	PeriodsPerYear     int     `json:"periods_per_year"`
	PeriodicDeposit    float64 `json:"periodic_deposit"`
	DepositAtBeginning bool    `json:"deposit_at_beginning"`
}

func (in CompoundInputs) validate() error {
	switch {
	case in.Principal < 0:
		return calcerrors.NewValidationError("principal", in.Principal, "must not be negative")
	case in.AnnualRatePct < 0:
		return calcerrors.NewValidationError("annual_rate_pct", in.AnnualRatePct, "must not be negative")
	case in.PeriodsPerYear <= 0:
		return calcerrors.NewValidationError("periods_per_year", in.PeriodsPerYear, "must be positive")
	case in.PeriodicDeposit < 0:
		return calcerrors.NewValidationError("periodic_deposit", in.PeriodicDeposit, "must not be negative")
	}
	return nil
}

// HistoryEntry is one year of the projected balance history.
type HistoryEntry struct {
	Year           int     `json:"year"`
	Balance        float64 `json:"balance"`
	Principal      float64 `json:"principal"`
	TotalDeposits  float64 `json:"total_deposits"`
	InterestEarned float64 `json:"interest_earned"`
}

// balanceAt evaluates the annuity closed form after the given number of
// whole years.
func (in CompoundInputs) balanceAt(year int) float64 {
	ratePerPeriod := in.AnnualRatePct / 100 / float64(in.PeriodsPerYear)
	periods := float64(year * in.PeriodsPerYear)

	growth := math.Pow(1+ratePerPeriod, periods)
	fvPrincipal := in.Principal * growth

	var fvDeposits float64
	if ratePerPeriod != 0 {
		fvDeposits = in.PeriodicDeposit * ((growth - 1) / ratePerPeriod)
		if in.DepositAtBeginning {
			fvDeposits *= 1 + ratePerPeriod
		}
	} else {
		fvDeposits = in.PeriodicDeposit * periods
	}
	return fvPrincipal + fvDeposits
}

// FutureValue projects the final balance and a year-by-year history.
func FutureValue(in CompoundInputs) (float64, []HistoryEntry, error) {
	if err := in.validate(); err != nil {
		return 0, nil, err
	}
	if in.Years < 0 {
		return 0, nil, calcerrors.NewValidationError("years", in.Years, "must not be negative")
	}

	history := make([]HistoryEntry, 0, in.Years+1)
	for year := 0; year <= in.Years; year++ {
		balance := in.balanceAt(year)
		deposits := in.PeriodicDeposit * float64(year*in.PeriodsPerYear)
		history = append(history, HistoryEntry{
			Year:           year,
			Balance:        balance,
			Principal:      in.Principal,
			TotalDeposits:  deposits,
			InterestEarned: balance - in.Principal - deposits,
		})
	}
	return history[len(history)-1].Balance, history, nil
}

// YearsToGoal scans whole years until the balance first reaches the goal,
// returning the year count and the projected history up to that year.
// ErrGoalNotReached is returned when maxYears is exceeded
// (DefaultMaxGoalYears when maxYears <= 0).
func YearsToGoal(in CompoundInputs, goal float64, maxYears int) (int, []HistoryEntry, error) {
	if err := in.validate(); err != nil {
		return 0, nil, err
	}
	if goal <= 0 {
		return 0, nil, calcerrors.NewValidationError("goal", goal, "must be positive")
	}
	if maxYears <= 0 {
		maxYears = DefaultMaxGoalYears
	}

	for year := 0; year <= maxYears; year++ {
		if in.balanceAt(year) >= goal {
			in.Years = year
			_, history, err := FutureValue(in)
			return year, history, err
		}
	}
	return 0, nil, calcerrors.Wrapf(calcerrors.ErrGoalNotReached, "goal %.2f not reached within %d years", goal, maxYears)
}

// RequiredRate bisects on the annual rate (0..100%) needed to reach the
// goal in the given time. Mirrors the balance-matching loop used in
// YearsToGoal; with a fixed 100-iteration budget the interval collapses
// far below the tolerance, so the midpoint is returned when the tolerance
// is not hit exactly.
func RequiredRate(in CompoundInputs, goal float64) (float64, error) {
	const iterations = 100
	const tolerance = 1e-4

	if err := in.validate(); err != nil {
		return 0, err
	}
	if goal <= 0 {
		return 0, calcerrors.NewValidationError("goal", goal, "must be positive")
	}
	if in.Years <= 0 {
		return 0, calcerrors.NewValidationError("years", in.Years, "must be positive")
	}

	lo, hi := 0.0, 100.0
	if in.withRate(hi).balanceAt(in.Years) < goal {
		return 0, calcerrors.Wrap(calcerrors.ErrGoalNotReached, "goal exceeds growth at 100% annual rate")
	}

	for i := 0; i < iterations; i++ {
		mid := (lo + hi) / 2
		balance := in.withRate(mid).balanceAt(in.Years)
		if math.Abs(balance-goal) < tolerance {
			return mid, nil
		}
		if balance < goal {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, nil
}

func (in CompoundInputs) withRate(annualRatePct float64) CompoundInputs {
	in.AnnualRatePct = annualRatePct
	return in
}

// RequiredDeposit returns the periodic deposit needed to reach the goal,
// or zero when the principal alone already grows past it.
func RequiredDeposit(in CompoundInputs, goal float64) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	if goal <= 0 {
		return 0, calcerrors.NewValidationError("goal", goal, "must be positive")
	}
	if in.Years <= 0 {
		return 0, calcerrors.NewValidationError("years", in.Years, "must be positive")
	}

	ratePerPeriod := in.AnnualRatePct / 100 / float64(in.PeriodsPerYear)
	periods := float64(in.Years * in.PeriodsPerYear)
	growth := math.Pow(1+ratePerPeriod, periods)

	remaining := goal - in.Principal*growth
	if remaining <= 0 {
		return 0, nil
	}

	if ratePerPeriod == 0 {
		return remaining / periods, nil
	}
	factor := (growth - 1) / ratePerPeriod
	if in.DepositAtBeginning {
		factor *= 1 + ratePerPeriod
	}
	return remaining / factor, nil
}

// RequiredInitialBalance returns the starting balance needed to reach the
// goal given the deposits, or zero when the deposits alone suffice.
func RequiredInitialBalance(in CompoundInputs, goal float64) (float64, error) {
	if err := in.validate(); err != nil {
		return 0, err
	}
	if goal <= 0 {
		return 0, calcerrors.NewValidationError("goal", goal, "must be positive")
	}
	if in.Years <= 0 {
		return 0, calcerrors.NewValidationError("years", in.Years, "must be positive")
	}

	zeroPrincipal := in
	zeroPrincipal.Principal = 0
	fromDeposits := zeroPrincipal.balanceAt(in.Years)

	remaining := goal - fromDeposits
	if remaining <= 0 {
		return 0, nil
	}

	ratePerPeriod := in.AnnualRatePct / 100 / float64(in.PeriodsPerYear)
	periods := float64(in.Years * in.PeriodsPerYear)
	return remaining / math.Pow(1+ratePerPeriod, periods), nil
}
