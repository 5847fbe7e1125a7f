package httpserver

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/gorilla/mux"
)

const msgFileNotFound = "Archivo no encontrado"

// uploadedFile streams a stored report image.
func (s *Server) uploadedFile(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]

	rc, err := s.images.Open(r.Context(), name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.writeError(w, r, common.NewUserError(common.ErrorNotFound, msgFileNotFound))
			return
		}
		s.writeError(w, r, err)
		return
	}
	defer rc.Close()

	ctype := mime.TypeByExtension(filepath.Ext(name))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ctype)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn(r.Context(), "stream image", "image", name, "error", err)
	}
}
