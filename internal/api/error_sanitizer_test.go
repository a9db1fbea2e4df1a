package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/campaign"
	"github.com/boostify/outreach/internal/service/contact"
	"github.com/boostify/outreach/internal/service/delivery"
)

func TestSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		code int
		err  error
		want string
	}{
		{"client error keeps message", 400, errors.New("userId is required"), "userId is required"},
		{"nil 4xx", 400, nil, "Bad request"},
		{"nil 5xx", 500, nil, "An internal error occurred"},
		{"dial", 500, errors.New("dial tcp 10.0.0.5:5432: connection refused"), "Service temporarily unavailable"},
		{"deadline", 500, errors.New("context deadline exceeded"), "Request timed out"},
		{"postgres", 500, errors.New(`pq: relation "outreach_contacts" does not exist`), "A database error occurred"},
		{"csv", 500, errors.New("parse contacts.csv: record on line 3: wrong number of fields"), "Could not read the import file"},
		{"s3", 500, errors.New("operation error S3: GetObject, AccessDenied"), "Access denied"},
		{"other", 500, errors.New("something odd"), "An internal error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, safeErrorMessage(tt.code, tt.err))
		})
	}
}

func TestStatusFor_Sentinels(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(fmt.Errorf("load: %w", contact.ErrNotFound)))
	assert.Equal(t, http.StatusConflict, statusFor(contact.ErrImportInProgress))
	assert.Equal(t, http.StatusConflict, statusFor(fmt.Errorf("%w: draft -> draft", campaign.ErrInvalidTransition)))
	assert.Equal(t, http.StatusBadRequest, statusFor(delivery.ErrNoEmail))
	assert.Equal(t, http.StatusTooManyRequests, statusFor(&delivery.QuotaError{}))
}

func TestRespondServiceError_HidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, errors.New(`pq: password authentication failed for user "outreach"`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"A database error occurred"}`, rec.Body.String())
}

func TestRespondServiceError_Quota(t *testing.T) {
	rec := httptest.NewRecorder()
	respondServiceError(rec, fmt.Errorf("send: %w", &delivery.QuotaError{Status: domain.QuotaStatus{Sent: 50, Limit: 50}}))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Daily email limit reached","remaining":0,"limit":50,"sent":50}`, rec.Body.String())
}

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		page, limit, total int
		want               PaginationMeta
	}{
		{1, 50, 0, PaginationMeta{Page: 1, Limit: 50, Total: 0, TotalPages: 1}},
		{1, 2, 3, PaginationMeta{Page: 1, Limit: 2, Total: 3, TotalPages: 2, HasMore: true}},
		{2, 2, 4, PaginationMeta{Page: 2, Limit: 2, Total: 4, TotalPages: 2}},
	}
	for _, tt := range tests {
		p := PaginationParams{Page: tt.page, Limit: tt.limit, Offset: (tt.page - 1) * tt.limit}
		assert.Equal(t, tt.want, NewPaginationMeta(p, tt.total))
	}
}

func TestParsePagination(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?page=3&limit=500", nil)
	assert.Equal(t, PaginationParams{Page: 3, Limit: 100, Offset: 200}, ParsePagination(r, 50, 100))

	r = httptest.NewRequest(http.MethodGet, "/?page=-1&limit=abc", nil)
	assert.Equal(t, PaginationParams{Page: 1, Limit: 50, Offset: 0}, ParsePagination(r, 50, 100))
}
