package dashboard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"shelter-dashboard/internal/domain/animals"
)

func TestViewState_ResetsPage(t *testing.T) {
	v := NewViewState().WithPage(4)
	assert.Equal(t, 4, v.Page())

	assert.Equal(t, 1, v.WithColumnFilter("breed", "lab").Page())
	assert.Equal(t, 1, v.WithSort("breed", Desc).Page())
	assert.Equal(t, 1, v.WithRescueType(animals.PresetWaterRescue).Page())
	assert.Equal(t, 4, v.Page(), "original value is untouched")
}

func TestViewState_FiltersAreCopies(t *testing.T) {
	v := NewViewState().WithColumnFilter("breed", "Lab")
	f := v.Filters()
	f["breed"] = "zzz"
	assert.Equal(t, "lab", v.Filters()["breed"])
}

func TestViewState_Apply(t *testing.T) {
	recs := make([]animals.Record, 0, 30)
	for i := 0; i < 30; i++ {
		recs = append(recs, animals.Record{"animal_id": fmt.Sprintf("A%02d", i), "n": float64(i % 7)})
	}

	v := NewViewState().WithSort("n", Desc).WithPage(2)
	p := v.Apply(recs)
	assert.Equal(t, 2, p.Number)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 30, p.Total)

	p = v.WithColumnFilter("animal_id", "a2").Apply(recs)
	assert.Equal(t, 1, p.Number)
	assert.Equal(t, 10, p.Total)
}
