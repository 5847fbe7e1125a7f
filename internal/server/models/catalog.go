package models

// CatalogKind names a self-healing lookup table.
type CatalogKind string

const (
	CatalogCategories CatalogKind = "categorias"
	CatalogStates     CatalogKind = "estados"
)

// DefaultCategories are inserted the first time the category catalog is found empty.
var DefaultCategories = []string{
	"Documentos",
	"Tecnología",
	"Accesorios",
	"Ropa",
	"Llaves",
	"Otros",
}

// DefaultStates are inserted the first time the state catalog is found empty.
var DefaultStates = []string{
	"Bueno",
	"Regular",
	"Malo",
}
