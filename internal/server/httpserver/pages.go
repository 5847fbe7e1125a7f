package httpserver

import (
	"html/template"
	"net/http"

	"github.com/dmitrijs2005/orio/internal/server/session"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>O.R.I.O · {{.Title}}</title></head>
<body>
<h1>{{.Title}}</h1>
{{if .UserID}}<p>Sesión: {{.UserID}} · <a href="/logout">Cerrar sesión</a></p>{{end}}
</body>
</html>
`))

type pageData struct {
	Title  string
	UserID string
}

// page serves a placeholder page; the real front end is served separately.
func (s *Server) page(title string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{Title: title, UserID: session.FromContext(r.Context()).UserID}
		if err := pageTemplate.Execute(w, data); err != nil {
			s.logger.Error(r.Context(), "render page", "title", title, "error", err)
		}
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.ping != nil {
		if err := s.ping(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, statusResponse{OK: false, Mensaje: "database unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, statusResponse{OK: true})
}
