package dashboard

import (
	"sort"
	"strings"

	"shelter-dashboard/internal/domain/animals"
)

type BreedSortField string

const (
	SortByBreed BreedSortField = "breed"
	SortByCount BreedSortField = "count"
)

// BreedTable es la tabla de detalle del gráfico de razas (modo all).
type BreedTable struct {
	rows   []animals.BreedCount
	filter string
	field  BreedSortField
	dir    SortDirection
}

// NewBreedTable arranca ordenada por count desc, igual que llega del endpoint.
func NewBreedTable(rows []animals.BreedCount) BreedTable {
	return BreedTable{
		rows:  append([]animals.BreedCount(nil), rows...),
		field: SortByCount,
		dir:   Desc,
	}
}

func (t BreedTable) WithFilter(text string) BreedTable {
	t.filter = strings.ToLower(strings.TrimSpace(text))
	return t
}

// ToggleSort: mismo campo en asc => desc; cualquier otro caso => asc sobre field.
func (t BreedTable) ToggleSort(field BreedSortField) BreedTable {
	if t.field == field && t.dir == Asc {
		t.dir = Desc
	} else {
		t.field = field
		t.dir = Asc
	}
	return t
}

func (t BreedTable) Sort() (BreedSortField, SortDirection) { return t.field, t.dir }

// Rows aplica filtro y orden.
func (t BreedTable) Rows() []animals.BreedCount {
	out := make([]animals.BreedCount, 0, len(t.rows))
	for _, r := range t.rows {
		if t.filter == "" || strings.Contains(strings.ToLower(r.Breed), t.filter) {
			out = append(out, r)
		}
	}

	cmp := newComparer()
	sort.SliceStable(out, func(i, j int) bool {
		var c int
		switch t.field {
		case SortByBreed:
			c = cmp.compare(out[i].Breed, out[j].Breed)
		default:
			c = out[i].Count - out[j].Count
		}
		if t.dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return out
}

// Total suma los counts visibles.
func (t BreedTable) Total() int {
	n := 0
	for _, r := range t.Rows() {
		n += r.Count
	}
	return n
}
