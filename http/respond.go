package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"loan-calculator/repository"
	"loan-calculator/service"
)

const maxBodyBytes = 1 << 20

type loggerKey struct{}

// withLogger makes logger available to the response helpers of every request.
func withLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), loggerKey{}, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggerFor returns the router's logger, or the default one for handlers
// called outside NewRouter.
func loggerFor(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return slog.Default()
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes into a buffer first so a failed encode does not leave a
// half-written 200 behind.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		loggerFor(r).Error("failed to encode response", "path", r.URL.Path, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		loggerFor(r).Warn("failed to write response", "path", r.URL.Path, "error", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrStateConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidTerm),
		errors.Is(err, service.ErrUnknownField),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrInvalidRate),
		errors.Is(err, service.ErrInvalidTermLength):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		loggerFor(r).Error("request failed", "path", r.URL.Path, "error", err)
		msg = "internal server error"
	}
	writeJSON(w, r, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		loggerFor(r).Debug("invalid request body", "path", r.URL.Path, "error", err)
		writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
