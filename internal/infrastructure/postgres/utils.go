package postgres

import (
	"fmt"
	"strings"
)

// whereBuilder arma cláusulas WHERE con placeholders posicionales ($1, $2, ...).
type whereBuilder struct {
	conds []string
	args  []any
}

// add agrega una condición; cada "?" en cond se reemplaza por el siguiente placeholder.
func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

// arg registra un argumento fuera del WHERE (LIMIT, OFFSET) y devuelve su placeholder.
func (w *whereBuilder) arg(a any) string {
	w.args = append(w.args, a)
	return fmt.Sprintf("$%d", len(w.args))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// likePattern escapa los comodines de ILIKE y envuelve el texto en %...%.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// pageBounds traduce el rango inclusivo [from, to] a LIMIT/OFFSET.
func pageBounds(from, to int) (limit, offset int, err error) {
	if from < 0 || to < from {
		return 0, 0, fmt.Errorf("rango inválido [%d-%d]", from, to)
	}
	return to - from + 1, from, nil
}
