package dashboard

import (
	"shelter-dashboard/internal/domain/animals"
)

// ViewState es el estado de la tabla principal. Es un valor inmutable: cada With*
// devuelve una copia. Cambiar preset, filtros u orden vuelve a la página 1.
type ViewState struct {
	rescueType animals.RescuePreset
	filters    ColumnFilterSet
	sortField  string
	sortDir    SortDirection
	page       int
	pageSize   int
}

func NewViewState() ViewState {
	return ViewState{
		rescueType: animals.PresetAll,
		filters:    ColumnFilterSet{},
		sortDir:    Asc,
		page:       1,
		pageSize:   DefaultPageSize,
	}
}

func (v ViewState) RescueType() animals.RescuePreset { return v.rescueType }
func (v ViewState) SortField() string                { return v.sortField }
func (v ViewState) SortDirection() SortDirection     { return v.sortDir }
func (v ViewState) Page() int                        { return v.page }
func (v ViewState) PageSize() int                    { return v.pageSize }

// Filters devuelve una copia.
func (v ViewState) Filters() ColumnFilterSet {
	out := make(ColumnFilterSet, len(v.filters))
	for k, t := range v.filters {
		out[k] = t
	}
	return out
}

func (v ViewState) WithRescueType(p animals.RescuePreset) ViewState {
	v.rescueType = p
	v.page = 1
	return v
}

func (v ViewState) WithColumnFilter(column, term string) ViewState {
	v.filters = v.filters.With(column, term)
	v.page = 1
	return v
}

func (v ViewState) WithSort(field string, dir SortDirection) ViewState {
	v.sortField = field
	v.sortDir = dir
	v.page = 1
	return v
}

// WithPage no clampea: el clamp depende del total y se hace en Apply.
func (v ViewState) WithPage(page int) ViewState {
	v.page = page
	return v
}

func (v ViewState) WithPageSize(size int) ViewState {
	if size <= 0 {
		size = DefaultPageSize
	}
	v.pageSize = size
	v.page = 1
	return v
}

// Apply filtra, ordena y pagina los registros cargados.
func (v ViewState) Apply(records []animals.Record) Page {
	rows := ApplyColumnFilters(records, v.filters)
	if v.sortField != "" {
		rows = SortBy(rows, v.sortField, v.sortDir)
	}
	return Paginate(rows, v.pageSize, v.page)
}
