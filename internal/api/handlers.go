package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	apperrors "cstore-prefill/internal/common/errors"
	"cstore-prefill/internal/models"
	"cstore-prefill/internal/reconcile"
)

const (
	messageAddressRequired = "Address is required"
	messageInternal        = "Internal server error"
	fetchFailurePrefix     = "Error fetching property data: "

	readinessTimeout = 2 * time.Second
)

type errorResponse struct {
	Success bool             `json:"success"`
	Data    *models.FormData `json:"data,omitempty"`
	Message string           `json:"message"`
	Error   string           `json:"error,omitempty"`
}

func (s *Server) handlePrefill(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: messageAddressRequired})
		return
	}
	address, ok := body["address"].(string)
	if !ok || strings.TrimSpace(address) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: messageAddressRequired})
		return
	}

	result, err := s.reconciler.Reconcile(r.Context(), address)
	if err == nil {
		writeJSON(w, http.StatusOK, result)
		return
	}

	if errors.Is(err, reconcile.ErrAddressRequired) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: messageAddressRequired})
		return
	}

	if stdErr, ok := apperrors.AsStandardError(err); ok && isParcelFailure(stdErr.Code) {
		s.logger.Warn("parcel provider failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"details":   stdErr.Details,
			"requestId": r.Header.Get(requestIDHeader),
		})
		empty := models.FormData{}
		writeJSON(w, http.StatusOK, errorResponse{
			Data:    &empty,
			Message: fetchFailurePrefix + stdErr.Details,
		})
		return
	}

	s.logger.Error("prefill failed", map[string]interface{}{
		"error":     err.Error(),
		"requestId": r.Header.Get(requestIDHeader),
	})
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Message: messageInternal,
		Error:   err.Error(),
	})
}

func isParcelFailure(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeParcelProviderFailed, apperrors.ErrCodeParcelAuthFailed, apperrors.ErrCodeParcelTimeout:
		return true
	}
	return false
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := make(map[string]string, len(s.checks))
	for name, check := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := check(ctx)
		cancel()
		if err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ready"
	if status != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, status, map[string]interface{}{
		"status": state,
		"checks": checks,
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
