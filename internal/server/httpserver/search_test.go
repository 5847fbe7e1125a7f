package httpserver

import (
	"net/http"
	"testing"

	"github.com/dmitrijs2005/orio/internal/common"
	"github.com/dmitrijs2005/orio/internal/server/models"
	"github.com/dmitrijs2005/orio/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_QueryParameters(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs(t, "ana1")
	env.search.out = []models.ObjectSummary{
		{ID: "111111", Name: "Documento azul", Color: "azul", Category: "Documentos", Image: "/uploads/a.png"},
	}

	resp := env.get(t, "/busquedas?texto=DOC&categoria=Documentos&color=azul&tipo=encontrado")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, services.SearchQuery{Text: "DOC", Category: "Documentos", Color: "azul", Kind: "encontrado"}, env.search.last)

	datos, ok := decode(t, resp)["datos"].([]any)
	require.True(t, ok)
	require.Len(t, datos, 1)
	item := datos[0].(map[string]any)
	assert.Equal(t, "Documento azul", item["NOMBRE"])
	assert.Equal(t, "111111", item["ID_OBJETO"])
	assert.Equal(t, "Documentos", item["ID_CATEGORIA"])
	assert.Equal(t, "/uploads/a.png", item["IMAGEN"])
}

func TestSearch_PathParameter(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs(t, "ana1")

	resp := env.get(t, "/busquedas/llave%20roja")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, services.SearchQuery{Text: "llave roja"}, env.search.last)
}

func TestSearch_NoResultsSignal(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs(t, "ana1")

	resp := env.get(t, "/busquedas/zzz-not-present")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, false, body["datos"])
	assert.Equal(t, "No se encontraron resultados", body["mensaje"])
}

func TestSearch_InvalidKind(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs(t, "ana1")
	env.search.err = common.NewUserError(common.ErrorValidation, services.MsgInvalidReportKind)

	resp := env.get(t, "/busquedas?tipo=robado")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCatalogs(t *testing.T) {
	env := newTestEnv(t, false)
	env.loginAs(t, "ana1")

	resp := env.get(t, "/catalogos/categorias")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["datos"], len(models.DefaultCategories))

	resp = env.get(t, "/catalogos/estados")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{"Bueno", "Regular", "Malo"}, decode(t, resp)["datos"])
}
