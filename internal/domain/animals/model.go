package animals

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Campos del registro de salida del shelter que usa el pipeline.
const (
	FieldAnimalID        = "animal_id"
	FieldAnimalType      = "animal_type"
	FieldBreed           = "breed"
	FieldSexUponOutcome  = "sex_upon_outcome"
	FieldAgeInWeeks      = "age_upon_outcome_in_weeks"
	FieldDatetime        = "datetime"
	FieldLocationLat     = "location_lat"
	FieldLocationLong    = "location_long"
	FieldAgeUponOutcome  = "age_upon_outcome"
	FieldColor           = "color"
	FieldDateOfBirth     = "date_of_birth"
	FieldOutcomeSubtype  = "outcome_subtype"
	FieldOutcomeType     = "outcome_type"
	FieldName            = "name"
	FieldMongoInternalID = "_id"
)

// Record es un documento sin schema fijo (la colección no impone estructura).
// Un campo ausente y un campo presente-pero-vacío son distintos: usar Lookup.
type Record map[string]any

// Lookup devuelve el valor y si el campo está presente. Un valor nil cuenta como ausente.
func (r Record) Lookup(field string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Text devuelve el valor coercionado a string si el campo está presente.
func (r Record) Text(field string) (string, bool) {
	v, ok := r.Lookup(field)
	if !ok {
		return "", false
	}
	return Stringify(v), true
}

// Clone copia superficial; los registros se pasan por valor entre capas.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneAll copia una lista de registros.
func CloneAll(in []Record) []Record {
	out := make([]Record, 0, len(in))
	for _, r := range in {
		out = append(out, r.Clone())
	}
	return out
}

// Stringify convierte un valor arbitrario a texto (equivalente a String(v) del front).
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// AsNumber acepta solo valores numéricos nativos (como hace Mongo con $gte/$lt).
func AsNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ParseNumber es la versión permisiva: además acepta strings numéricos ("52", " 3.5 ").
func ParseNumber(v any) (float64, bool) {
	if f, ok := AsNumber(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// BreedCount es una fila de la agregación por raza.
type BreedCount struct {
	Breed string `json:"breed"`
	Count int    `json:"count"`
}
