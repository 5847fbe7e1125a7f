package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/gorilla/mux"
)

const msgNoResults = "No se encontraron resultados"

// search takes optional texto, categoria, color and tipo query parameters.
func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s.writeSearch(w, r, services.SearchQuery{
		Text:     q.Get("texto"),
		Category: q.Get("categoria"),
		Color:    q.Get("color"),
		Kind:     q.Get("tipo"),
	})
}

// searchText is the path-parameter form: /busquedas/{busca}.
func (s *Server) searchText(w http.ResponseWriter, r *http.Request) {
	s.writeSearch(w, r, services.SearchQuery{Text: mux.Vars(r)["busca"]})
}

func (s *Server) writeSearch(w http.ResponseWriter, r *http.Request, q services.SearchQuery) {
	result, err := s.services.Search.Search(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeResults(w, result)
}

// writeResults answers {"datos": [...]} or, for no match,
// {"datos": false, "mensaje": ...}.
func writeResults(w http.ResponseWriter, result []models.ObjectSummary) {
	if len(result) == 0 {
		writeJSON(w, http.StatusOK, dataResponse{Datos: false, Mensaje: msgNoResults})
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Datos: result})
}

func (s *Server) categories(w http.ResponseWriter, r *http.Request) {
	values, err := s.services.Catalogs.Categories(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Datos: values})
}

func (s *Server) states(w http.ResponseWriter, r *http.Request) {
	values, err := s.services.Catalogs.States(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Datos: values})
}
