package dashboard

import (
	"strings"
	"time"

	"shelter-dashboard/internal/domain/animals"
	"shelter-dashboard/internal/domain/predictions"
)

// LatLng es un punto del mapa.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Centro inicial del mapa (Austin Animal Center).
var DefaultMapCenter = LatLng{Lat: 30.6525984560228, Lng: -97.7419963476444}

// DefaultForm son los valores iniciales del formulario de predicción.
func DefaultForm() predictions.Request {
	return predictions.Request{
		AnimalType:     "Dog",
		SexUponOutcome: "Neutered Male",
		PrimaryBreed:   "Labrador Retriever",
		AgeWeeks:       52,
		OutcomeMonth:   6,
	}
}

// Selection es el resultado de seleccionar una fila.
type Selection struct {
	AnimalID string
	Form     predictions.Request
	// Location es nil si el registro no trae lat y lng numéricos; el mapa queda donde estaba.
	Location *LatLng
}

// SelectRecord autocompleta el formulario desde el registro. Lo que falta o no parsea
// conserva el valor previo (nunca se resetea a vacío/cero).
func SelectRecord(r animals.Record, prior predictions.Request) Selection {
	form := prior

	if v, ok := r.Text(animals.FieldAnimalType); ok {
		form.AnimalType = v
	}
	if v, ok := r.Text(animals.FieldSexUponOutcome); ok {
		form.SexUponOutcome = v
	}
	if v, ok := r.Text(animals.FieldBreed); ok {
		form.PrimaryBreed = v
	}

	if v, ok := r.Lookup(animals.FieldAgeInWeeks); ok {
		if weeks, ok := animals.ParseNumber(v); ok && weeks >= 0 {
			form.AgeWeeks = weeks
		}
	}

	if v, ok := r.Text(animals.FieldDatetime); ok {
		if m, ok := monthOf(v); ok {
			form.OutcomeMonth = m
		}
	}

	sel := Selection{Form: form}
	if id, ok := r.Text(animals.FieldAnimalID); ok {
		sel.AnimalID = id
	}

	lat, latOK := lookupNumber(r, animals.FieldLocationLat)
	lng, lngOK := lookupNumber(r, animals.FieldLocationLong)
	if latOK && lngOK {
		sel.Location = &LatLng{Lat: lat, Lng: lng}
	}
	return sel
}

func lookupNumber(r animals.Record, field string) (float64, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return 0, false
	}
	return animals.ParseNumber(v)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006 15:04",
	"01/02/2006",
}

// monthOf devuelve el mes 1..12 si s parsea como fecha.
func monthOf(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return int(t.Month()), true
		}
	}
	return 0, false
}
