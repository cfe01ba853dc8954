package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/catalog-api/internal/apperr"
	"github.com/rogerio-castellano/catalog-api/internal/logger"
)

// HandlerFunc is an http handler that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Handle adapts h to http.HandlerFunc, sending any returned error to the
// central responder.
func Handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			respondError(w, r, err)
		}
	}
}

// respondError writes {message, statusCode}. Errors that are not application
// errors become 500s and are logged with the request id; their detail never
// reaches the client.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperr.From(err)

	log := logger.FromContext(r.Context())
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "status", appErr.StatusCode, "message", appErr.Message)
	}

	if werr := writeJSON(w, appErr.StatusCode, appErr); werr != nil {
		log.Error("failed to write error response", "error", werr)
	}
}
