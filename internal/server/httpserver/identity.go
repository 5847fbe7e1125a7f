package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/dmitrijs2005/orio/internal/server/session"
)

const (
	msgUserCreated     = "Usuario creado correctamente"
	msgLoggedIn        = "Inicio de sesión exitoso"
	msgPasswordUpdated = "Contraseña actualizada correctamente"
)

type recoveryResponse struct {
	OK        bool   `json:"ok"`
	Pregunta1 string `json:"pregunta1"`
	Pregunta2 string `json:"pregunta2"`
}

// register creates the account and logs the new user in.
func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	in := services.RegisterInput{
		UserID:         r.FormValue("id_usuario"),
		Name:           r.FormValue("nombre"),
		Password:       r.FormValue("contrasena"),
		PasswordRepeat: r.FormValue("contrasena_repetida"),
		Question1:      r.FormValue("pregunta1"),
		Answer1:        r.FormValue("respuesta1"),
		Question2:      r.FormValue("pregunta2"),
		Answer2:        r.FormValue("respuesta2"),
	}

	userID, err := s.services.Identity.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.sessions.Save(w, session.LoggedIn(userID)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Mensaje: msgUserCreated})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("id_usuario")

	if err := s.services.Identity.Login(r.Context(), userID, r.FormValue("contrasena")); err != nil {
		s.writeError(w, r, err)
		return
	}

	// a fresh session also drops any pending recovery
	if err := s.sessions.Save(w, session.LoggedIn(userID)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Mensaje: msgLoggedIn})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, "/inicio", http.StatusFound)
}

// beginRecovery hands out the questions and remembers the target in the session.
func (s *Server) beginRecovery(w http.ResponseWriter, r *http.Request) {
	userID := r.FormValue("id_usuario")

	q, err := s.services.Identity.BeginRecovery(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.sessions.Save(w, session.Recovering(userID)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recoveryResponse{OK: true, Pregunta1: q.Question1, Pregunta2: q.Question2})
}

func (s *Server) completeRecovery(w http.ResponseWriter, r *http.Request) {
	target := session.FromContext(r.Context()).RecoveryTarget

	err := s.services.Identity.CompleteRecovery(r.Context(), target,
		r.FormValue("respuesta1"), r.FormValue("respuesta2"), r.FormValue("nueva_contrasena"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.sessions.Clear(w)
	writeJSON(w, http.StatusOK, statusResponse{OK: true, Mensaje: msgPasswordUpdated})
}
