package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/orio/internal/common"
)

const msgServerError = "Error en el servidor"

type statusResponse struct {
	OK      bool   `json:"ok"`
	Mensaje string `json:"mensaje,omitempty"`
}

type errorResponse struct {
	OK      bool   `json:"ok"`
	Mensaje string `json:"mensaje"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorConflict),
		errors.Is(err, common.ErrorDuplicate),
		errors.Is(err, common.ErrorState):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as JSON. Client errors carry their own message.
// Anything else is logged and answered with a generic 500; the internal
// text is only included outside production.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ue *common.UserError
	if errors.As(err, &ue) {
		if status := statusFor(ue.Kind); status != http.StatusInternalServerError {
			writeJSON(w, status, errorResponse{Mensaje: ue.Message})
			return
		}
	}

	status := statusFor(err)
	if status != http.StatusInternalServerError {
		writeJSON(w, status, errorResponse{Mensaje: http.StatusText(status)})
		return
	}

	s.logger.Error(r.Context(), "request failed",
		"path", r.URL.Path, "http.req.id", RequestID(r.Context()), "error", err)

	body := errorResponse{Mensaje: msgServerError}
	if !s.production {
		body.Error = err.Error()
	}
	writeJSON(w, status, body)
}
