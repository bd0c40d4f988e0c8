// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePayslipRequest_Valid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "full payload",
			body: `{
				"success": true,
				"user_id": "u-1",
				"loan_id": "l-1",
				"features": {
					"net_salary": 5000,
					"gross_salary": 6000,
					"basic_salary": 5000,
					"employment_start_date": "2021-06-15T00:00:00",
					"pension": 300,
					"garnishments": 0,
					"indicators": {
						"net_to_gross_ratio": 0.83,
						"loan_to_net_ratio": 0.05,
						"disposable_income": 2200,
						"income_stability_flag": true,
						"probable_student_flag": false
					}
				}
			}`,
		},
		{
			name: "minimal payload with empty indicators",
			body: `{"success": false, "user_id": "u", "loan_id": "l", "features": {"indicators": {}}}`,
		},
		{
			name: "explicit nulls for optional fields",
			body: `{
				"success": true,
				"user_id": "u",
				"loan_id": "l",
				"features": {
					"net_salary": null,
					"gross_salary": null,
					"employment_start_date": null,
					"indicators": {"loan_to_net_ratio": null}
				}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidatePayslipRequest([]byte(tt.body))

			require.NoError(t, err)
			assert.True(t, result.Valid)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestValidatePayslipRequest_Invalid(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedField string
		expectedCode  string
	}{
		{
			name:          "missing success",
			body:          `{"user_id": "u", "loan_id": "l", "features": {"indicators": {}}}`,
			expectedField: "success",
			expectedCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:          "missing features",
			body:          `{"success": true, "user_id": "u", "loan_id": "l"}`,
			expectedField: "features",
			expectedCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:          "missing indicators",
			body:          `{"success": true, "user_id": "u", "loan_id": "l", "features": {}}`,
			expectedField: "features.indicators",
			expectedCode:  "REQUIRED_FIELD_MISSING",
		},
		{
			name:          "user_id not a string",
			body:          `{"success": true, "user_id": 7, "loan_id": "l", "features": {"indicators": {}}}`,
			expectedField: "user_id",
			expectedCode:  "INVALID_TYPE",
		},
		{
			name:          "net_salary not a number",
			body:          `{"success": true, "user_id": "u", "loan_id": "l", "features": {"net_salary": "5k", "indicators": {}}}`,
			expectedField: "features.net_salary",
			expectedCode:  "INVALID_TYPE",
		},
		{
			name:          "stability flag not a boolean",
			body:          `{"success": true, "user_id": "u", "loan_id": "l", "features": {"indicators": {"income_stability_flag": "yes"}}}`,
			expectedField: "features.indicators.income_stability_flag",
			expectedCode:  "INVALID_TYPE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidatePayslipRequest([]byte(tt.body))

			require.NoError(t, err)
			require.False(t, result.Valid)

			found := false
			for _, verr := range result.Errors {
				if verr.Field == tt.expectedField {
					found = true
					assert.Equal(t, tt.expectedCode, verr.Code)
					assert.NotEmpty(t, verr.Message)
				}
			}
			assert.True(t, found, "expected an error for field %s, got %v", tt.expectedField, result.Errors)
		})
	}
}

func TestValidatePayslipRequest_UnparseableBody(t *testing.T) {
	_, err := ValidatePayslipRequest([]byte(`{"success": tru`))

	assert.Error(t, err)
}
