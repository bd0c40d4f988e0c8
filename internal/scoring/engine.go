// internal/scoring/engine.go
package scoring

import (
	"errors"
	"strings"
	"time"

	cerrors "credit-scoring-service/internal/common/errors"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/models"
)

// ErrMissingCriticalData is returned when net or gross salary is absent.
// It is the only error the engine produces; every other absent field just
// skips the rule it would have fed.
var ErrMissingCriticalData = errors.New(cerrors.MissingCriticalDataMessage)

// pointRule awards points for the first predicate that matches. Rules are
// evaluated in order, so each table reads top-down like the underlying
// threshold ladder.
type pointRule struct {
	applies func(v float64) bool
	points  int
}

// penaltyRule subtracts points for the first predicate that matches. The
// running score is floored at zero after each applied penalty.
type penaltyRule struct {
	applies func(v float64) bool
	penalty int
}

// --- Pillar 1: Income Strength & Stability (max 35) ---

// Net-to-gross retention always awards something once both salaries are
// present and gross is positive.
var netToGrossRules = []pointRule{
	{func(r float64) bool { return r >= 0.85 }, 20},
	{func(r float64) bool { return r >= 0.75 }, 15},
	{func(r float64) bool { return r >= 0.65 }, 10},
	{func(r float64) bool { return true }, 5},
}

var salaryCompositionRules = []pointRule{
	{func(r float64) bool { return r >= 0.8 }, 10},
	{func(r float64) bool { return r >= 0.6 }, 5},
}

const incomeStabilityPoints = 5

// --- Pillar 2: Existing Debt Burden (max 35) ---

var loanToNetRules = []pointRule{
	{func(r float64) bool { return r <= 0.1 }, 25},
	{func(r float64) bool { return r <= 0.25 }, 15},
	{func(r float64) bool { return r <= 0.4 }, 5},
}

const noGarnishmentPoints = 10

// --- Pillar 3: Financial Discipline (max 20) ---

var disposableIncomeRules = []pointRule{
	{func(r float64) bool { return r > 0.4 }, 15},
	{func(r float64) bool { return r >= 0.25 }, 10},
	{func(r float64) bool { return r >= 0.15 }, 5},
}

const (
	pensionRatioThreshold = 0.05
	pensionPoints         = 5
)

// --- Pillar 4: Employment Stability (max 10) ---

var tenureDayRules = []pointRule{
	{func(d float64) bool { return d > 1095 }, 10},
	{func(d float64) bool { return d > 365 }, 5},
}

// --- Loan affordability penalties ---

// Loan amount as a multiple of annual net income. Single tier applies.
var affordabilityRules = []penaltyRule{
	{func(r float64) bool { return r > 8 }, 30},
	{func(r float64) bool { return r > 5 }, 20},
	{func(r float64) bool { return r > 3 }, 10},
	{func(r float64) bool { return r > 2 }, 5},
}

// Estimated payment burden for large loans. Single tier applies.
var paymentToIncomeRules = []penaltyRule{
	{func(r float64) bool { return r > 0.5 }, 20},
	{func(r float64) bool { return r > 0.35 }, 10},
}

const (
	largeLoanThreshold          = 100000
	monthlyPaymentRate          = 0.01
	inadequateDisposablePenalty = 15
	maxScore                    = 100
)

func awardPoints(v float64, rules []pointRule) int {
	for _, rule := range rules {
		if rule.applies(v) {
			return rule.points
		}
	}
	return 0
}

// applyPenalty subtracts the first matching penalty, flooring at zero.
func applyPenalty(score int, v float64, rules []penaltyRule) int {
	for _, rule := range rules {
		if rule.applies(v) {
			score -= rule.penalty
			if score < 0 {
				score = 0
			}
			return score
		}
	}
	return score
}

// Engine computes rule-based credit scores from payslip features. It holds
// no mutable state and performs no I/O; the clock is injectable because
// tenure depends on the current date.
type Engine struct {
	logger logger.Logger
	now    func() time.Time
}

func NewEngine(log logger.Logger) *Engine {
	return &Engine{
		logger: log.WithFields(map[string]interface{}{"component": "scoring-engine"}),
		now:    time.Now,
	}
}

// NewEngineWithClock builds an Engine with a fixed clock, used by tests to
// pin the tenure calculation to a known date.
func NewEngineWithClock(log logger.Logger, now func() time.Time) *Engine {
	e := NewEngine(log)
	e.now = now
	return e
}

// ComputeScore evaluates the features against the rule tables and returns a
// score in [0,100]. It fails only when net or gross salary is absent.
func (e *Engine) ComputeScore(features *models.Features, requestedLoanAmount float64) (int, error) {
	if features.NetSalary == nil || features.GrossSalary == nil {
		return 0, ErrMissingCriticalData
	}

	income := e.scoreIncomeStrength(features)
	debt := e.scoreDebtBurden(features)
	discipline := e.scoreFinancialDiscipline(features)
	tenure := e.scoreEmploymentStability(features)

	score := income + debt + discipline + tenure
	score = e.applyAffordability(score, features, requestedLoanAmount)
	score = applyRedFlagCaps(score, features)

	if score > maxScore {
		score = maxScore
	}

	e.logger.Info("credit score calculated", map[string]interface{}{
		"score":      score,
		"income":     income,
		"debt":       debt,
		"discipline": discipline,
		"tenure":     tenure,
		"loanAmount": requestedLoanAmount,
	})

	return score, nil
}

func (e *Engine) scoreIncomeStrength(f *models.Features) int {
	score := 0

	if f.NetSalary != nil && f.GrossSalary != nil && *f.GrossSalary > 0 {
		score += awardPoints(*f.NetSalary / *f.GrossSalary, netToGrossRules)
	}

	if f.BasicSalary != nil && f.GrossSalary != nil && *f.GrossSalary > 0 {
		score += awardPoints(*f.BasicSalary / *f.GrossSalary, salaryCompositionRules)
	}

	if f.Indicators.IncomeStabilityFlag != nil && *f.Indicators.IncomeStabilityFlag {
		score += incomeStabilityPoints
	}

	return score
}

func (e *Engine) scoreDebtBurden(f *models.Features) int {
	score := 0

	if f.Indicators.LoanToNetRatio != nil {
		score += awardPoints(*f.Indicators.LoanToNetRatio, loanToNetRules)
	}

	// Absent garnishments counts the same as zero garnishments here.
	if f.Garnishments == nil || *f.Garnishments == 0 {
		score += noGarnishmentPoints
	}

	return score
}

func (e *Engine) scoreFinancialDiscipline(f *models.Features) int {
	score := 0

	if f.Indicators.DisposableIncome != nil && f.NetSalary != nil && *f.NetSalary > 0 {
		score += awardPoints(*f.Indicators.DisposableIncome / *f.NetSalary, disposableIncomeRules)
	}

	if f.Pension != nil && *f.Pension > 0 && f.NetSalary != nil && *f.NetSalary > 0 {
		if *f.Pension / *f.NetSalary >= pensionRatioThreshold {
			score += pensionPoints
		}
	}

	return score
}

func (e *Engine) scoreEmploymentStability(f *models.Features) int {
	if f.EmploymentStartDate == nil || *f.EmploymentStartDate == "" {
		return 0
	}

	// Only the calendar date before any 'T' matters. A malformed date awards
	// nothing and never escalates to an error.
	datePart := strings.SplitN(*f.EmploymentStartDate, "T", 2)[0]
	startDate, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return 0
	}

	// Whole elapsed days, matching a calendar-day tenure count.
	tenureDays := int(e.now().Sub(startDate).Hours() / 24)
	return awardPoints(float64(tenureDays), tenureDayRules)
}

func (e *Engine) applyAffordability(score int, f *models.Features, requestedLoanAmount float64) int {
	if f.NetSalary == nil || *f.NetSalary <= 0 {
		return score
	}

	annualIncome := *f.NetSalary * 12
	score = applyPenalty(score, requestedLoanAmount/annualIncome, affordabilityRules)

	if requestedLoanAmount >= largeLoanThreshold {
		monthlyPayment := requestedLoanAmount * monthlyPaymentRate
		score = applyPenalty(score, monthlyPayment / *f.NetSalary, paymentToIncomeRules)

		if f.Indicators.DisposableIncome != nil && *f.Indicators.DisposableIncome < monthlyPayment {
			score -= inadequateDisposablePenalty
			if score < 0 {
				score = 0
			}
		}
	}

	return score
}

// applyRedFlagCaps enforces the hard ceilings that override additive scoring.
func applyRedFlagCaps(score int, f *models.Features) int {
	if f.Garnishments != nil && *f.Garnishments > 0 && score > 30 {
		score = 30
	}

	if f.Indicators.LoanToNetRatio != nil && *f.Indicators.LoanToNetRatio > 0.5 && score > 40 {
		score = 40
	}

	return score
}
