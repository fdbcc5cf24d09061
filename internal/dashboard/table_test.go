package dashboard

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shelter-dashboard/internal/domain/animals"
)

func sampleRecords() []animals.Record {
	return []animals.Record{
		{"animal_id": "A1", "breed": "labrador Retriever", "color": "Black", "age_upon_outcome_in_weeks": 52.0},
		{"animal_id": "A2", "breed": "Beagle", "color": "Tricolor", "age_upon_outcome_in_weeks": 8.0},
		{"animal_id": "A3", "breed": "Labrador Retriever Mix", "age_upon_outcome_in_weeks": 100.0},
		{"animal_id": "A4", "breed": "Ángel Terrier", "color": "Black/White", "age_upon_outcome_in_weeks": "unknown"},
		{"animal_id": "A5", "color": "black"},
	}
}

func ids(recs []animals.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, fmt.Sprint(r["animal_id"]))
	}
	return out
}

func TestApplyColumnFilters(t *testing.T) {
	recs := sampleRecords()

	f := ColumnFilterSet{}.With("breed", "LABRADOR")
	assert.Equal(t, []string{"A1", "A3"}, ids(ApplyColumnFilters(recs, f)))

	// AND entre columnas; A3 no tiene color => excluido.
	f = f.With("color", "black")
	assert.Equal(t, []string{"A1"}, ids(ApplyColumnFilters(recs, f)))

	// Término vacío elimina el filtro.
	f = f.With("breed", "  ")
	assert.Equal(t, []string{"A1", "A4", "A5"}, ids(ApplyColumnFilters(recs, f)))

	// Numéricos se comparan como string.
	f = ColumnFilterSet{}.With("age_upon_outcome_in_weeks", "10")
	assert.Equal(t, []string{"A3"}, ids(ApplyColumnFilters(recs, f)))
}

func TestApplyColumnFilters_Idempotent(t *testing.T) {
	f := ColumnFilterSet{}.With("color", "bl")
	once := ApplyColumnFilters(sampleRecords(), f)
	twice := ApplyColumnFilters(once, f)
	assert.Equal(t, once, twice)
}

func TestSortBy(t *testing.T) {
	recs := sampleRecords()

	byBreed := SortBy(recs, "breed", Asc)
	assert.Equal(t, []string{"A4", "A2", "A1", "A3", "A5"}, ids(byBreed), "locale-aware, case-insensitive, absent last")

	byAge := SortBy(recs, "age_upon_outcome_in_weeks", Asc)
	assert.Equal(t, []string{"A2", "A1", "A3", "A4", "A5"}, ids(byAge), "numbers first, then strings, absent last")

	byAgeDesc := SortBy(recs, "age_upon_outcome_in_weeks", Desc)
	assert.Equal(t, []string{"A4", "A3", "A1", "A2", "A5"}, ids(byAgeDesc))

	// No muta la entrada.
	assert.Equal(t, []string{"A1", "A2", "A3", "A4", "A5"}, ids(recs))
}

func TestSortBy_Stable(t *testing.T) {
	recs := []animals.Record{
		{"animal_id": "1", "k": "same"},
		{"animal_id": "2", "k": "same"},
		{"animal_id": "3", "k": "same"},
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids(SortBy(recs, "k", Desc)))
}

func TestPaginate(t *testing.T) {
	recs := make([]animals.Record, 23)
	for i := range recs {
		recs[i] = animals.Record{"animal_id": fmt.Sprint(i)}
	}

	p := Paginate(recs, 10, 3)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Items, 3)

	assert.Equal(t, 3, Paginate(recs, 10, 99).Number)
	assert.Equal(t, 1, Paginate(recs, 10, -4).Number)

	for page := -2; page < 6; page++ {
		got := Paginate(recs, 10, page)
		assert.LessOrEqual(t, len(got.Items), 10)
		assert.GreaterOrEqual(t, got.Number, 1)
		assert.LessOrEqual(t, got.Number, 3)
	}

	empty := Paginate(nil, 10, 5)
	assert.Equal(t, 1, empty.Number)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Empty(t, empty.Items)

	require.Equal(t, DefaultPageSize, Paginate(recs, 0, 1).Size)
}

func TestPaginate_HugePageSize(t *testing.T) {
	recs := sampleRecords()

	assert.Equal(t, 1, TotalPages(len(recs), math.MaxInt))
	assert.Equal(t, 1, ClampPage(2, len(recs), math.MaxInt))

	p := Paginate(recs, math.MaxInt, 2)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, ids(recs), ids(p.Items))

	assert.Equal(t, math.MaxInt, TotalPages(math.MaxInt, 1))
	assert.Equal(t, 1, TotalPages(math.MaxInt, math.MaxInt))
}
