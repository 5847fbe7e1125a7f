package httpserver

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/dmitrijs2005/orio/internal/server/session"
)

const (
	// maxImageBytes is the largest accepted upload.
	maxImageBytes = 10 << 20
	// maxFormBytes leaves room for the text fields around the image.
	maxFormBytes = maxImageBytes + 1<<20

	msgReportSent  = "Reporte enviado correctamente"
	msgInvalidForm = "Formulario inválido o imagen demasiado grande"
)

type submitResponse struct {
	Mensaje   string  `json:"mensaje"`
	Ruta      *string `json:"ruta"`
	IDObjeto  string  `json:"id_objeto"`
	IDReporte string  `json:"id_reporte"`
}

type dataResponse struct {
	Datos   any    `json:"datos"`
	Mensaje string `json:"mensaje,omitempty"`
}

// submit handles the multipart report forms. The reporting user is always
// the session user.
func (s *Server) submit(kind models.ReportKind) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
		if err := r.ParseMultipartForm(maxImageBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			s.writeError(w, r, common.NewUserError(common.ErrorValidation, msgInvalidForm))
			return
		}
		if r.MultipartForm != nil {
			defer func() { _ = r.MultipartForm.RemoveAll() }()
		}

		in := services.SubmitInput{
			Kind:        kind,
			UserID:      session.FromContext(r.Context()).UserID,
			Name:        r.FormValue("nombre_objeto"),
			Color:       r.FormValue("color_dominante"),
			State:       r.FormValue("estado"),
			Place:       r.FormValue("lugar"),
			Date:        r.FormValue("fecha"),
			Observation: r.FormValue("comentario"),
			FileNumber:  r.FormValue("ficha"),
			Category:    r.FormValue("categoria"),
		}

		file, header, err := r.FormFile("imagen")
		switch {
		case err == nil:
			defer func(f multipart.File) { _ = f.Close() }(file)
			in.Image = &services.Image{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			s.writeError(w, r, common.NewUserError(common.ErrorValidation, msgInvalidForm))
			return
		}

		res, err := s.services.Reports.Submit(r.Context(), in)
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		resp := submitResponse{Mensaje: msgReportSent, IDObjeto: res.ObjectID, IDReporte: res.ReportID}
		if res.ImagePath != "" {
			resp.Ruta = &res.ImagePath
		}
		writeJSON(w, http.StatusOK, resp)
	})
}

func (s *Server) myReports(w http.ResponseWriter, r *http.Request) {
	list, err := s.services.Reports.ListMine(r.Context(), session.FromContext(r.Context()).UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dataResponse{Datos: list})
}
