package api

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"

	"github.com/boostify/outreach/internal/pkg/httputil"
	"github.com/boostify/outreach/internal/pkg/logger"
	"github.com/boostify/outreach/internal/service/artist"
	"github.com/boostify/outreach/internal/service/campaign"
	"github.com/boostify/outreach/internal/service/contact"
	"github.com/boostify/outreach/internal/service/delivery"
	"github.com/boostify/outreach/internal/service/template"
)

// =============================================================================
// ERROR SANITIZER
// Internal errors (database details, file paths, provider payloads) are never
// sent to API consumers. 5xx responses carry a generic message and the full
// error is logged server-side.
// =============================================================================

// statusFor maps service errors to HTTP status codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, contact.ErrNotFound),
		errors.Is(err, template.ErrNotFound),
		errors.Is(err, artist.ErrNotFound),
		errors.Is(err, campaign.ErrNotFound),
		errors.Is(err, delivery.ErrContactNotFound),
		errors.Is(err, delivery.ErrTemplateNotFound),
		errors.Is(err, delivery.ErrArtistNotFound),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound

	case errors.Is(err, contact.ErrInvalidStatus),
		errors.Is(err, contact.ErrInvalidContact),
		errors.Is(err, contact.ErrUnsupportedFile),
		errors.Is(err, template.ErrInvalidTemplate),
		errors.Is(err, template.ErrUnknownPreviewType),
		errors.Is(err, campaign.ErrNameRequired),
		errors.Is(err, campaign.ErrUserRequired),
		errors.Is(err, campaign.ErrInvalidFilters),
		errors.Is(err, delivery.ErrNoEmail),
		errors.Is(err, delivery.ErrNoContacts),
		errors.Is(err, delivery.ErrUserRequired):
		return http.StatusBadRequest

	case errors.Is(err, contact.ErrDuplicateEmail),
		errors.Is(err, contact.ErrImportInProgress),
		errors.Is(err, campaign.ErrInvalidTransition):
		return http.StatusConflict

	case errors.Is(err, delivery.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

// respondServiceError writes the response for an error returned by a
// service call.
func respondServiceError(w http.ResponseWriter, err error) {
	var qe *delivery.QuotaError
	if errors.As(err, &qe) {
		httputil.JSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"error":     "Daily email limit reached",
			"remaining": 0,
			"limit":     qe.Status.Limit,
			"sent":      qe.Status.Sent,
		})
		return
	}

	code := statusFor(err)
	if code == http.StatusNotFound && errors.Is(err, fs.ErrNotExist) {
		httputil.NotFound(w, "file not found")
		return
	}
	if code < 500 {
		httputil.Error(w, code, err.Error())
		return
	}
	respondSafeError(w, code, err, safeErrorMessage(code, err))
}

// sanitizedError logs the full internal error and returns a public-safe message.
func sanitizedError(code int, internalErr error, publicMsg string) string {
	if internalErr != nil {
		logger.Error("request failed", "code", code, "public", publicMsg, "error", internalErr)
	}
	return publicMsg
}

// respondSafeError logs the internal error and sends a sanitized JSON error.
func respondSafeError(w http.ResponseWriter, code int, internalErr error, publicMsg string) {
	httputil.Error(w, code, sanitizedError(code, internalErr, publicMsg))
}

// safeErrorMessage maps common internal error patterns to public-safe messages.
// For 400-level errors the original message is kept (user input issues).
func safeErrorMessage(code int, internalErr error) string {
	if code < 500 {
		if internalErr != nil {
			return internalErr.Error()
		}
		return "Bad request"
	}

	if internalErr == nil {
		return "An internal error occurred"
	}

	errStr := strings.ToLower(internalErr.Error())

	switch {
	case strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "dial tcp"):
		return "Service temporarily unavailable"

	case strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") ||
		strings.Contains(errStr, "context canceled"):
		return "Request timed out"

	case strings.Contains(errStr, "sql") ||
		strings.Contains(errStr, "pq:") ||
		strings.Contains(errStr, "scan") ||
		strings.Contains(errStr, "database"):
		return "A database error occurred"

	case strings.Contains(errStr, "parse") ||
		strings.Contains(errStr, "csv") ||
		strings.Contains(errStr, "xlsx"):
		return "Could not read the import file"

	case strings.Contains(errStr, "accessdenied") ||
		strings.Contains(errStr, "access denied") ||
		strings.Contains(errStr, "permission"):
		return "Access denied"

	default:
		return "An internal error occurred"
	}
}
