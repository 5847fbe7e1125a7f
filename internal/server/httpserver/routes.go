package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/gorilla/mux"
)

func (s *Server) routes() http.Handler {
	r := mux.NewRouter()

	guest := s.guestRequired
	login := s.loginRequired

	r.Handle("/", s.page("Inicio")).Methods(http.MethodGet)
	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	// identity
	r.Handle("/registro", guest(s.page("Registro"))).Methods(http.MethodGet)
	r.Handle("/guardar_usuario", guest(http.HandlerFunc(s.register))).Methods(http.MethodPost)
	r.Handle("/inicio", guest(s.page("Iniciar sesión"))).Methods(http.MethodGet)
	r.Handle("/inicio", guest(http.HandlerFunc(s.login))).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodGet)
	r.Handle("/recuperar", guest(s.page("Recuperar contraseña"))).Methods(http.MethodGet)
	r.Handle("/recuperar", guest(http.HandlerFunc(s.beginRecovery))).Methods(http.MethodPost)
	r.Handle("/recuperar_respuestas", guest(http.HandlerFunc(s.completeRecovery))).Methods(http.MethodPost)

	// pages behind login
	r.Handle("/menu", login(s.page("Menú"))).Methods(http.MethodGet)
	r.Handle("/perfil", login(s.page("Perfil"))).Methods(http.MethodGet)
	r.Handle("/dashboard", login(s.page("Panel"))).Methods(http.MethodGet)
	r.Handle("/formulario_perdido", login(s.page("Reportar objeto perdido"))).Methods(http.MethodGet)
	r.Handle("/formulario_perdido", login(redirectTo("/buscar_objetos"))).Methods(http.MethodPost)
	r.Handle("/formulario_objeto_encontrado", login(s.page("Reportar objeto encontrado"))).Methods(http.MethodGet)
	r.Handle("/formulario_objeto_encontrado", login(redirectTo("/buscar_objetos"))).Methods(http.MethodPost)
	r.Handle("/buscar_objetos", login(s.page("Buscar objetos"))).Methods(http.MethodGet)

	// reports
	r.Handle("/submit_per", login(s.submit(models.ReportLost))).Methods(http.MethodPost)
	r.Handle("/submit_enc", login(s.submit(models.ReportFound))).Methods(http.MethodPost)
	r.Handle("/mis_reportes", login(http.HandlerFunc(s.myReports))).Methods(http.MethodGet)

	// search and catalogs
	r.Handle("/busquedas", login(http.HandlerFunc(s.search))).Methods(http.MethodGet)
	r.Handle("/busquedas/{busca}", login(http.HandlerFunc(s.searchText))).Methods(http.MethodGet)
	r.Handle("/catalogos/categorias", login(http.HandlerFunc(s.categories))).Methods(http.MethodGet)
	r.Handle("/catalogos/estados", login(http.HandlerFunc(s.states))).Methods(http.MethodGet)

	// files
	r.HandleFunc("/uploads/{filename}", s.uploadedFile).Methods(http.MethodGet)
	if s.staticImgDir != "" {
		r.PathPrefix("/static/img/").Handler(
			http.StripPrefix("/static/img/", http.FileServer(http.Dir(s.staticImgDir)))).Methods(http.MethodGet)
	}

	r.Use(s.loadSession)

	return &logHandler{log: s.logger, next: r}
}

func redirectTo(path string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, path, http.StatusFound)
	})
}
