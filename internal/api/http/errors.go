package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matrixmedia/matrix/internal/api/media"
	"github.com/matrixmedia/matrix/internal/api/service"
	"github.com/matrixmedia/matrix/pkg/httpx"
	"github.com/matrixmedia/matrix/pkg/matrixsdk"
	"github.com/matrixmedia/matrix/pkg/slogx"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

const msgServerError = "Something went wrong. Please try again later."

// statusFor maps a service error kind to its HTTP status.
func statusFor(kind error) int {
	switch {
	case errors.Is(kind, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(kind, service.ErrValidation),
		errors.Is(kind, service.ErrConflict),
		errors.Is(kind, service.ErrAuth),
		errors.Is(kind, service.ErrRateLimited):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// writeServiceError writes err as an error response. Errors that are not a
// *service.Error are logged and reported as a generic server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var serr *service.Error
	if errors.As(err, &serr) {
		httpx.WriteError(w, statusFor(serr.Kind), matrixsdk.ErrorResponse{
			Error:      serr.Kind.Error(),
			Message:    serr.Message,
			Details:    serr.Details,
			RetryAfter: serr.RetryAfter,
		})
		return
	}

	if errors.Is(err, media.ErrNotConfigured) {
		log.Warn("object storage not configured", "err", err)
		httpx.WriteError(w, http.StatusServiceUnavailable, matrixsdk.ErrorResponse{
			Error:   matrixsdk.ErrorCodeServerError,
			Message: "Image uploads are not available right now.",
		})
		return
	}

	log.Error("request failed", "err", err)
	httpx.WriteError(w, http.StatusInternalServerError, matrixsdk.ErrorResponse{
		Error:   matrixsdk.ErrorCodeServerError,
		Message: msgServerError,
	})
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	httpx.WriteError(w, http.StatusBadRequest, matrixsdk.ErrorResponse{
		Error:   matrixsdk.ErrorCodeValidation,
		Message: msg,
	})
}

// decodeJSON reads a bounded JSON body into v, answering 400 itself on
// failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		slogx.FromContext(r.Context()).Debug("invalid json body", "err", err)
		writeBadRequest(w, "Invalid JSON body")
		return false
	}
	return true
}

// userID returns the caller's id set by the cookie middleware. It writes a
// 401 and reports false if it is missing.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := httpx.UserIDFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, matrixsdk.ErrorResponse{
			Error:   matrixsdk.ErrorCodeUnauthenticated,
			Message: "Unauthorized: please log in",
		})
	}
	return id, ok
}
