package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fleetops/fms/backend/internal/domain"
)

// writeJSON serializes v with the given status. Encoding failures are logged
// and otherwise swallowed — by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps domain sentinel errors onto HTTP statuses and renders the
// error body. Field-level validation failures become a field-keyed object,
// e.g. {"truck": "A truck must be assigned to the trip."}; everything else
// uses {"detail": "..."}.
func writeError(w http.ResponseWriter, err error) {
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		writeJSON(w, http.StatusBadRequest, map[string]string{fe.Field: fe.Message})
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, detailBody(unwrapMessage(err)))
	case errors.Is(err, domain.ErrForbidden):
		writeJSON(w, http.StatusForbidden, detailBody(unwrapMessage(err)))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, detailBody("Not found."))
	default:
		slog.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, detailBody("Internal server error."))
	}
}

// badRequest rejects a request before it reaches the service layer
// (e.g. malformed body or path parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, detailBody(message))
}

func detailBody(message string) map[string]string {
	return map[string]string{"detail": message}
}

// unwrapMessage strips the layer-qualified prefixes and the sentinel text
// from a wrapped error, leaving the human-readable part.
// e.g. "service.TripService.SetStatus: validation error: Invalid status. ..."
// → "Invalid status. ...".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{"validation error: ", "forbidden: "} {
		if i := strings.Index(msg, sentinel); i >= 0 {
			return msg[i+len(sentinel):]
		}
	}
	return msg
}
