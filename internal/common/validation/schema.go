// Package validation checks inbound request bodies against the declared
// payslip schema and reports structured per-field errors.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// payslipRequestSchema mirrors the wire contract: success, user_id, loan_id
// and features are required; features.indicators is required; every other
// field is optional and independently nullable.
const payslipRequestSchema = `{
	"type": "object",
	"required": ["success", "user_id", "loan_id", "features"],
	"properties": {
		"success": {"type": "boolean"},
		"user_id": {"type": "string"},
		"loan_id": {"type": "string"},
		"features": {
			"type": "object",
			"required": ["indicators"],
			"properties": {
				"net_salary": {"type": ["number", "null"]},
				"gross_salary": {"type": ["number", "null"]},
				"basic_salary": {"type": ["number", "null"]},
				"employment_start_date": {"type": ["string", "null"]},
				"pension": {"type": ["number", "null"]},
				"garnishments": {"type": ["number", "null"]},
				"indicators": {
					"type": "object",
					"properties": {
						"net_to_gross_ratio": {"type": ["number", "null"]},
						"deduction_ratio": {"type": ["number", "null"]},
						"allowance_ratio": {"type": ["number", "null"]},
						"overtime_ratio": {"type": ["number", "null"]},
						"bonus_ratio": {"type": ["number", "null"]},
						"loan_to_net_ratio": {"type": ["number", "null"]},
						"estimated_tax_rate": {"type": ["number", "null"]},
						"disposable_income": {"type": ["number", "null"]},
						"savings_potential": {"type": ["number", "null"]},
						"income_stability_flag": {"type": ["boolean", "null"]},
						"benefits_value_estimate": {"type": ["number", "null"]},
						"probable_student_flag": {"type": ["boolean", "null"]}
					}
				}
			}
		}
	}
}`

var requestSchemaLoader = gojsonschema.NewStringLoader(payslipRequestSchema)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidatePayslipRequest validates raw request body bytes against the payslip
// request schema with detailed per-field errors.
func ValidatePayslipRequest(body []byte) (*ValidationResult, error) {
	documentLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(requestSchemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, ValidationError{
			Field:   fieldPath(desc),
			Message: desc.Description(),
			Code:    errorCode(desc.Type()),
		})
	}

	return &ValidationResult{Valid: false, Errors: errs}, nil
}

// fieldPath names the offending field. Required-property violations report
// the context of the parent object, so the missing property is appended.
func fieldPath(desc gojsonschema.ResultError) string {
	field := desc.Field()
	if desc.Type() == "required" {
		if prop, ok := desc.Details()["property"].(string); ok {
			if field == gojsonschema.STRING_CONTEXT_ROOT {
				return prop
			}
			return field + "." + prop
		}
	}
	return field
}

func errorCode(schemaErrType string) string {
	switch schemaErrType {
	case "required":
		return "REQUIRED_FIELD_MISSING"
	case "invalid_type":
		return "INVALID_TYPE"
	case "additional_property_not_allowed":
		return "EXTRA_FIELD"
	default:
		return strings.ToUpper(schemaErrType)
	}
}
