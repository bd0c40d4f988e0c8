// internal/models/payslip.go
package models

// Indicators holds the derived ratios and flags computed upstream from a
// payslip. Every field is optional; absent fields are nil, not zero.
type Indicators struct {
	NetToGrossRatio       *float64 `json:"net_to_gross_ratio,omitempty"`
	DeductionRatio        *float64 `json:"deduction_ratio,omitempty"`
	AllowanceRatio        *float64 `json:"allowance_ratio,omitempty"`
	OvertimeRatio         *float64 `json:"overtime_ratio,omitempty"`
	BonusRatio            *float64 `json:"bonus_ratio,omitempty"`
	LoanToNetRatio        *float64 `json:"loan_to_net_ratio,omitempty"`
	EstimatedTaxRate      *float64 `json:"estimated_tax_rate,omitempty"`
	DisposableIncome      *float64 `json:"disposable_income,omitempty"`
	SavingsPotential      *float64 `json:"savings_potential,omitempty"`
	IncomeStabilityFlag   *bool    `json:"income_stability_flag,omitempty"`
	BenefitsValueEstimate *float64 `json:"benefits_value_estimate,omitempty"`
	ProbableStudentFlag   *bool    `json:"probable_student_flag,omitempty"`
}

// Features is the payslip-derived feature set for one applicant. Monetary
// fields are pointers so that "absent" is distinguishable from "zero".
type Features struct {
	NetSalary           *float64   `json:"net_salary,omitempty"`
	GrossSalary         *float64   `json:"gross_salary,omitempty"`
	BasicSalary         *float64   `json:"basic_salary,omitempty"`
	EmploymentStartDate *string    `json:"employment_start_date,omitempty"`
	Pension             *float64   `json:"pension,omitempty"`
	Garnishments        *float64   `json:"garnishments,omitempty"`
	Indicators          Indicators `json:"indicators"`
}

// PayslipData is the inbound request body for credit evaluation.
type PayslipData struct {
	Success  bool     `json:"success"`
	UserID   string   `json:"user_id"`
	LoanID   string   `json:"loan_id"`
	Features Features `json:"features"`
}

// CreditScoreResponse is the outbound response body. UserID and LoanID are
// copied verbatim from the request.
type CreditScoreResponse struct {
	UserID      string `json:"user_id"`
	LoanID      string `json:"loan_id"`
	CreditScore int    `json:"credit_score"`
}
