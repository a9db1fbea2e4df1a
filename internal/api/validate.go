package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/boostify/outreach/internal/pkg/httputil"
)

// FieldError is one failed validation rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// decodeValid decodes the JSON body into dst and runs its validate tags.
// It writes the 400 itself and returns false on failure.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !httputil.Decode(w, r, dst) {
		return false
	}
	return s.valid(w, dst)
}

func (s *Server) valid(w http.ResponseWriter, v interface{}) bool {
	err := s.validate.Struct(v)
	if err == nil {
		return true
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		details := make([]FieldError, 0, len(ve))
		for _, fe := range ve {
			details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		httputil.ErrorWithDetails(w, http.StatusBadRequest, "validation failed", "validation_failed", details)
		return false
	}
	httputil.BadRequest(w, err.Error())
	return false
}
