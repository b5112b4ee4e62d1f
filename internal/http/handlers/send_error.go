package handlers

import (
	"encoding/json"
	"net/http"
	"seo_meta_audit/internal/http/middleware"
	"seo_meta_audit/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Code      int    `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor maps an audit error kind to the response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrMalformedRow), errors.Is(err, errors.ErrInvalidURL), errors.Is(err, errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func sendError(w http.ResponseWriter, r *http.Request, logger *log.Logger, message string, err error, code int) {
	requestID := middleware.RequestID(r.Context())
	logger.WithFields(log.Fields{
		"error":      err,
		"code":       code,
		"request_id": requestID,
	}).Error(message)

	response := ErrorResponse{
		Message:   message,
		Error:     err.Error(),
		Code:      code,
		RequestID: requestID,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}
