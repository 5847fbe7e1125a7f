package objects

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/orio/internal/server/models"
)

// reportTables maps a report kind to its table. Only these constants are
// ever spliced into SQL text; user input always travels as arguments.
var reportTables = map[models.ReportKind]string{
	models.ReportLost:  `public."Reportes_perdidos"`,
	models.ReportFound: `public."Reportes_encontrados"`,
}

const searchSelect = `SELECT o."ID_OBJETO", o."NOMBRE", o."COLOR", COALESCE(o."IMAGEN", ''), o."ID_CATEGORIA"
FROM public."Objetos" o`

const searchOrder = `ORDER BY o."NOMBRE" COLLATE "C", o."ID_OBJETO"`

// queryBuilder accumulates WHERE conditions and their positional arguments.
type queryBuilder struct {
	conds []string
	args  []any
}

// arg registers v and returns its placeholder.
func (b *queryBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *queryBuilder) where(cond string) {
	b.conds = append(b.conds, cond)
}

// buildSearchQuery turns filter into a parameterized statement.
//
//   - Text:     name ILIKE %text% OR category ILIKE %text%
//   - Category: category = value
//   - Color:    color ILIKE %value%
//   - Kind:     EXISTS a report of that kind for the object
//
// Conditions are AND-combined; an empty filter selects every object.
func buildSearchQuery(filter models.SearchFilter) (string, []any, error) {
	b := &queryBuilder{}

	if filter.Text != "" {
		p := b.arg(containsPattern(filter.Text))
		b.where(fmt.Sprintf(`(o."NOMBRE" ILIKE %s ESCAPE '\' OR o."ID_CATEGORIA" ILIKE %s ESCAPE '\')`, p, p))
	}
	if filter.Category != "" {
		b.where(fmt.Sprintf(`o."ID_CATEGORIA" = %s`, b.arg(filter.Category)))
	}
	if filter.Color != "" {
		b.where(fmt.Sprintf(`o."COLOR" ILIKE %s ESCAPE '\'`, b.arg(containsPattern(filter.Color))))
	}
	if filter.Kind != "" {
		table, ok := reportTables[filter.Kind]
		if !ok {
			return "", nil, fmt.Errorf("unknown report kind %q", filter.Kind)
		}
		b.where(fmt.Sprintf(`EXISTS (SELECT 1 FROM %s r WHERE r."ID_OBJETO" = o."ID_OBJETO")`, table))
	}

	var sb strings.Builder
	sb.WriteString(searchSelect)
	if len(b.conds) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(b.conds, "\n  AND "))
	}
	sb.WriteString("\n")
	sb.WriteString(searchOrder)

	return sb.String(), b.args, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern escapes LIKE metacharacters in s and wraps it in %...%.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
