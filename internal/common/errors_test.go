package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("problem 4: %w", ErrNotFound), http.StatusNotFound},
		{"forbidden folds into not found", ErrForbidden, http.StatusNotFound},
		{"validation", ValidationError("title is required"), http.StatusBadRequest},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"conflict", ErrConflict, http.StatusConflict},
		{"pg unique violation", &pgconn.PgError{Code: "23505"}, http.StatusConflict},
		{"anything else", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := ValidationError("difficulty %q is not one of easy, medium, hard", "insane")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), `difficulty "insane"`)
}

func TestRespondWithServiceError(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	logger := zap.New(core)

	t.Run("internal errors are masked and logged", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)

		RespondWithServiceError(rec, req, logger, errors.New("dial tcp: refused"), "Failed to fetch statistics")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Failed to fetch statistics", body.Error)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "/api/stats", logs.All()[0].ContextMap()["path"])
	})

	t.Run("client errors pass through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/problems/9", nil)

		RespondWithServiceError(rec, req, logger, fmt.Errorf("problem 9: %w", ErrNotFound), "Failed to fetch problem")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "problem 9")
	})
}
