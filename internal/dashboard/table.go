// Package dashboard contiene la lógica de presentación del dashboard: filtros por columna,
// orden, paginación, autocompletado del formulario de predicción y el estado de la vista.
// Todo es puro salvo Board y Client.
package dashboard

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"shelter-dashboard/internal/domain/animals"
)

const DefaultPageSize = 10

// ColumnFilterSet mapea columna => término. Los términos se guardan en minúsculas.
type ColumnFilterSet map[string]string

// With devuelve una copia con el término de la columna actualizado (vacío lo elimina).
func (f ColumnFilterSet) With(column, term string) ColumnFilterSet {
	out := make(ColumnFilterSet, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		delete(out, column)
	} else {
		out[column] = term
	}
	return out
}

// Matches: para cada columna con término no vacío, el valor como string debe contenerlo
// (case-insensitive). Si el registro no tiene la columna, no matchea.
func (f ColumnFilterSet) Matches(r animals.Record) bool {
	for col, term := range f {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		v, ok := r.Text(col)
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(v), term) {
			return false
		}
	}
	return true
}

func ApplyColumnFilters(records []animals.Record, filters ColumnFilterSet) []animals.Record {
	out := make([]animals.Record, 0, len(records))
	for _, r := range records {
		if filters.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

func ParseSortDirection(s string) SortDirection {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// SortBy ordena de forma estable por field. Números se comparan numéricamente y strings
// con collation de locale. Números van antes que strings; ausentes siempre al final.
func SortBy(records []animals.Record, field string, dir SortDirection) []animals.Record {
	out := append([]animals.Record(nil), records...)
	if strings.TrimSpace(field) == "" {
		return out
	}

	cmp := newComparer()
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := out[i].Lookup(field)
		b, bok := out[j].Lookup(field)
		if !aok || !bok {
			return aok && !bok
		}
		c := cmp.compare(a, b)
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

type comparer struct {
	col *collate.Collator
}

// El Collator no es seguro para uso concurrente: uno por llamada.
func newComparer() comparer {
	return comparer{col: collate.New(language.English, collate.IgnoreCase)}
}

func (c comparer) compare(a, b any) int {
	an, aNum := animals.AsNumber(a)
	bn, bNum := animals.AsNumber(b)
	switch {
	case aNum && bNum:
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	case aNum:
		return -1
	case bNum:
		return 1
	}
	return c.col.CompareString(animals.Stringify(a), animals.Stringify(b))
}

// Page es una ventana de registros.
type Page struct {
	Items      []animals.Record
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// TotalPages es ceil(total/pageSize); 0 si no hay registros.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

// ClampPage lleva page a [1, TotalPages]; sin registros queda en 1.
func ClampPage(page, total, pageSize int) int {
	last := TotalPages(total, pageSize)
	if page < 1 || last == 0 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

func Paginate(records []animals.Record, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	page = ClampPage(page, total, pageSize)

	// page ya está en [1, TotalPages], así que start < total salvo sin registros.
	start := 0
	if page > 1 {
		start = (page - 1) * pageSize
	}
	end := total
	if total-start > pageSize {
		end = start + pageSize
	}

	return Page{
		Items:      append([]animals.Record(nil), records[start:end]...),
		Number:     page,
		Size:       pageSize,
		Total:      total,
		TotalPages: TotalPages(total, pageSize),
	}
}
