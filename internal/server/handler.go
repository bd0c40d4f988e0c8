// internal/server/handler.go
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"credit-scoring-service/internal/common/metrics"
	"credit-scoring-service/internal/common/validation"
	"credit-scoring-service/internal/models"
	"credit-scoring-service/internal/scoring"
)

// evaluateCredit validates the payslip payload, runs the scoring engine with
// the deployment's fixed requested loan amount, and translates engine errors
// to HTTP statuses. IDs are echoed back verbatim.
func (s *Server) evaluateCredit(c *fiber.Ctx) error {
	start := time.Now()
	requestID, _ := c.Locals("requestId").(string)

	log := s.logger.WithFields(map[string]interface{}{"requestId": requestID})
	log.Info("processing credit evaluation", map[string]interface{}{
		"bodyBytes": len(c.Body()),
	})

	result, err := validation.ValidatePayslipRequest(c.Body())
	if err != nil {
		// The body is not even parseable JSON.
		s.recordOutcome(c, start, "validation_error", "SCHEMA_VALIDATION_FAILED")
		log.WithError(err).Warn("request body unparseable", nil)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": []validation.ValidationError{{
				Field:   "body",
				Message: "request body is not valid JSON",
				Code:    "INVALID_JSON",
			}},
		})
	}
	if !result.Valid {
		s.recordOutcome(c, start, "validation_error", "SCHEMA_VALIDATION_FAILED")
		log.Warn("schema validation rejected request", map[string]interface{}{
			"errorCount": len(result.Errors),
		})
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": result.Errors,
		})
	}

	var payload models.PayslipData
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		s.recordOutcome(c, start, "validation_error", "SCHEMA_VALIDATION_FAILED")
		log.WithError(err).Warn("request body unmarshal failed", nil)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"detail": []validation.ValidationError{{
				Field:   "body",
				Message: err.Error(),
				Code:    "INVALID_TYPE",
			}},
		})
	}

	score, err := s.engine.ComputeScore(&payload.Features, s.config.Scoring.RequestedLoanAmount)
	if err != nil {
		if errors.Is(err, scoring.ErrMissingCriticalData) {
			s.recordOutcome(c, start, "missing_data", "MISSING_CRITICAL_DATA")
			log.Warn("critical salary data missing", map[string]interface{}{
				"userId": payload.UserID,
				"loanId": payload.LoanID,
			})
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"detail": err.Error(),
			})
		}

		stdErr := s.errHandler.Normalize(err)
		s.errHandler.LogError(requestID, stdErr)
		s.recordOutcome(c, start, "error", string(stdErr.Code))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"detail": fmt.Sprintf("An unexpected error occurred during score calculation: %s", err.Error()),
		})
	}

	metrics.CreditScores.Observe(float64(score))
	s.recordOutcome(c, start, "success", "")
	log.Info("credit evaluation completed", map[string]interface{}{
		"userId": payload.UserID,
		"loanId": payload.LoanID,
		"score":  score,
	})

	return c.JSON(models.CreditScoreResponse{
		UserID:      payload.UserID,
		LoanID:      payload.LoanID,
		CreditScore: score,
	})
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": s.config.App.Name,
		"version": s.config.App.Version,
	})
}

func (s *Server) recordOutcome(c *fiber.Ctx, start time.Time, outcome, errorCode string) {
	elapsed := time.Since(start)

	metrics.ScoreRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.ScoreRequestDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if errorCode != "" {
		metrics.ScoreRequestErrors.WithLabelValues(errorCode).Inc()
	}

	s.obs.RecordEvaluation(c.UserContext(), outcome)
	s.obs.RecordEvaluationDuration(c.UserContext(), elapsed, outcome)
}
