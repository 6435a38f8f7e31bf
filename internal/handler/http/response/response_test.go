package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) Response {
	t.Helper()
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var resp Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestSuccessWithMeta(t *testing.T) {
	rr := httptest.NewRecorder()
	SuccessWithMeta(rr, []string{}, &Meta{TotalItems: 0})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":[],"meta":{"total_items":0}}`, rr.Body.String())
}

func TestFail_Envelope(t *testing.T) {
	rr := httptest.NewRecorder()
	BadRequest(rr, "bad month", map[string]string{"month": "must be 0-11"})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	resp := decode(t, rr)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "BAD_REQUEST", resp.Error.Code)
	assert.Equal(t, "must be 0-11", resp.Error.Details["month"])
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "is required"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"worker not found", fmt.Errorf("lookup: %w", worker.ErrWorkerNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"bad period", salary.ErrInvalidPeriod, http.StatusBadRequest, "BAD_REQUEST"},
		{"missing rate", salary.ErrMissingRate, http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"settings race", salary.ErrActiveSettingsExists, http.StatusConflict, "CONFLICT"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			HandleError(rr, tt.err)

			assert.Equal(t, tt.status, rr.Code)
			resp := decode(t, rr)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}
