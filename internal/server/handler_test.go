// internal/server/handler_test.go
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-scoring-service/internal/common/config"
	"credit-scoring-service/internal/common/logger"
	"credit-scoring-service/internal/common/observability"
	"credit-scoring-service/internal/scoring"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{
			Name:    "credit-scoring-service",
			Version: "test",
		},
		Server: config.ServerConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
		Scoring: config.ScoringConfig{
			RequestedLoanAmount: 100000,
		},
	}

	log := logger.NewTestLogger(t)
	engine := scoring.NewEngineWithClock(log, func() time.Time { return testNow })

	return New(cfg, log, engine, observability.New("credit-scoring-service-test"))
}

func postEvaluate(t *testing.T, s *Server, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/evaluate_credit", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

const strongApplicantBody = `{
	"success": true,
	"user_id": "user-123",
	"loan_id": "loan-456",
	"features": {
		"net_salary": 5000,
		"gross_salary": 6000,
		"basic_salary": 5000,
		"garnishments": 0,
		"pension": 300,
		"employment_start_date": "2021-06-15",
		"indicators": {
			"loan_to_net_ratio": 0.05,
			"disposable_income": 2200
		}
	}
}`

// ==========================
// Endpoint Tests
// ==========================

func TestEvaluateCredit_Success(t *testing.T) {
	s := newTestServer(t)

	resp := postEvaluate(t, s, strongApplicantBody)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "user-123", body["user_id"])
	assert.Equal(t, "loan-456", body["loan_id"])
	assert.Equal(t, float64(90), body["credit_score"])
}

func TestEvaluateCredit_IDsEchoedVerbatim(t *testing.T) {
	s := newTestServer(t)

	// IDs are opaque: no format validation, no transformation.
	resp := postEvaluate(t, s, `{
		"success": false,
		"user_id": "  WEIRD id / 001  ",
		"loan_id": "",
		"features": {
			"net_salary": 2000,
			"gross_salary": 2500,
			"indicators": {}
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "  WEIRD id / 001  ", body["user_id"])
	assert.Equal(t, "", body["loan_id"])
	assert.Equal(t, float64(5), body["credit_score"])
}

func TestEvaluateCredit_SchemaValidationFailure(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		expectedField string
	}{
		{
			name:          "missing indicators",
			body:          `{"success": true, "user_id": "u", "loan_id": "l", "features": {"net_salary": 1000}}`,
			expectedField: "features.indicators",
		},
		{
			name:          "missing features",
			body:          `{"success": true, "user_id": "u", "loan_id": "l"}`,
			expectedField: "features",
		},
		{
			name:          "wrong user_id type",
			body:          `{"success": true, "user_id": 42, "loan_id": "l", "features": {"indicators": {}}}`,
			expectedField: "user_id",
		},
		{
			name:          "wrong salary type",
			body:          `{"success": true, "user_id": "u", "loan_id": "l", "features": {"net_salary": "lots", "indicators": {}}}`,
			expectedField: "features.net_salary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)

			resp := postEvaluate(t, s, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			body := decodeBody(t, resp)
			detail, ok := body["detail"].([]interface{})
			require.True(t, ok, "detail should be a list of field errors")
			require.NotEmpty(t, detail)

			fields := make([]string, 0, len(detail))
			for _, item := range detail {
				entry, ok := item.(map[string]interface{})
				require.True(t, ok)
				field, _ := entry["field"].(string)
				fields = append(fields, field)
			}
			assert.Contains(t, fields, tt.expectedField)
		})
	}
}

func TestEvaluateCredit_InvalidJSON(t *testing.T) {
	s := newTestServer(t)

	resp := postEvaluate(t, s, `{"success": true,`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestEvaluateCredit_MissingCriticalSalary(t *testing.T) {
	s := newTestServer(t)

	// Schema-valid: net_salary is optional at the schema level, so the
	// rejection comes from the scoring engine, not the validator.
	resp := postEvaluate(t, s, `{
		"success": true,
		"user_id": "user-9",
		"loan_id": "loan-9",
		"features": {
			"gross_salary": 3000,
			"indicators": {}
		}
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Critical salary information is missing. Cannot calculate score.", body["detail"])
}

func TestEvaluateCredit_GarnishmentCapOverHTTP(t *testing.T) {
	s := newTestServer(t)

	resp := postEvaluate(t, s, `{
		"success": true,
		"user_id": "user-g",
		"loan_id": "loan-g",
		"features": {
			"net_salary": 5000,
			"gross_salary": 6000,
			"basic_salary": 5000,
			"garnishments": 750,
			"pension": 300,
			"employment_start_date": "2021-06-15",
			"indicators": {
				"loan_to_net_ratio": 0.05,
				"disposable_income": 2200
			}
		}
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.LessOrEqual(t, body["credit_score"].(float64), float64(30))
}

func TestEvaluateCredit_RequestIDHeader(t *testing.T) {
	s := newTestServer(t)

	resp := postEvaluate(t, s, strongApplicantBody)

	assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))
}

func TestEvaluateCredit_CORSAllowsAnyOrigin(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/evaluate_credit", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "credit-scoring-service", body["service"])
}
