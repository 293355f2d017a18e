package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderdesk/wanderdesk/internal/api/models"
)

func TestProblem_Write(t *testing.T) {
	problem := models.NewBadRequest("req_123", "validation failed", []models.FieldError{
		{Field: "title", Message: "is required"},
	})
	problem.Instance = "/v1/api/itinerary/days/0/activities"

	rec := httptest.NewRecorder()
	problem.Write(rec)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req_123", rec.Header().Get("X-Request-Id"))

	var decoded models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, models.ProblemTypeValidation, decoded.Type)
	assert.Equal(t, http.StatusBadRequest, decoded.Status)
	assert.Equal(t, "req_123", decoded.TraceID)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "title", decoded.Errors[0].Field)
}

func TestProblem_Constructors(t *testing.T) {
	tests := []struct {
		name    string
		problem *models.Problem
		status  int
		ptype   string
	}{
		{"not found", models.NewNotFound("t", "missing"), http.StatusNotFound, models.ProblemTypeNotFound},
		{"too many requests", models.NewTooManyRequests("t", "slow down"), http.StatusTooManyRequests, models.ProblemTypeTooManyRequests},
		{"internal", models.NewInternalError("t", "boom"), http.StatusInternalServerError, models.ProblemTypeInternal},
		{"unavailable", models.NewServiceUnavailable("t", "later"), http.StatusServiceUnavailable, models.ProblemTypeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.problem.Status)
			assert.Equal(t, tt.ptype, tt.problem.Type)
			assert.Equal(t, "t", tt.problem.TraceID)
		})
	}
}

func TestProblem_OmitsEmptyErrors(t *testing.T) {
	problem := models.NewNotFound("req_123", "missing")

	data, err := json.Marshal(problem)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"errors"`)
}
