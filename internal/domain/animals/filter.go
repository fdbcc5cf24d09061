package animals

import "strings"

// RescuePreset es uno de los filtros fijos del dashboard.
type RescuePreset string

const (
	PresetAll                        RescuePreset = "All"
	PresetWaterRescue                RescuePreset = "water_rescue"
	PresetMountainWildernessRescue   RescuePreset = "mountain_wilderness_rescue"
	PresetDisasterIndividualTracking RescuePreset = "disaster_individual_tracking"
)

// ParsePreset nunca falla: nombres desconocidos o vacíos equivalen a All.
func ParsePreset(s string) RescuePreset {
	switch p := RescuePreset(strings.TrimSpace(s)); p {
	case PresetWaterRescue, PresetMountainWildernessRescue, PresetDisasterIndividualTracking:
		return p
	default:
		return PresetAll
	}
}

// Presets lista los presets en el orden en que los muestra el dashboard.
func Presets() []RescuePreset {
	return []RescuePreset{
		PresetAll,
		PresetWaterRescue,
		PresetMountainWildernessRescue,
		PresetDisasterIndividualTracking,
	}
}

type ConstraintKind string

const (
	KindEquals ConstraintKind = "eq"
	KindIn     ConstraintKind = "in"
	KindRange  ConstraintKind = "range"
)

// Constraint es una condición sobre un campo.
// - eq/in: el valor debe ser string y coincidir exacto con alguno de Values.
// - range: el valor debe ser numérico y cumplir Gte <= v < Lt.
type Constraint struct {
	Field  string
	Kind   ConstraintKind
	Values []string
	Gte    float64
	Lt     float64
}

func Equals(field, value string) Constraint {
	return Constraint{Field: field, Kind: KindEquals, Values: []string{value}}
}

func In(field string, values ...string) Constraint {
	return Constraint{Field: field, Kind: KindIn, Values: append([]string(nil), values...)}
}

func Range(field string, gte, lt float64) Constraint {
	return Constraint{Field: field, Kind: KindRange, Gte: gte, Lt: lt}
}

// Matches evalúa la condición. Campo ausente => no match (nunca error).
func (c Constraint) Matches(r Record) bool {
	v, ok := r.Lookup(c.Field)
	if !ok {
		return false
	}
	switch c.Kind {
	case KindEquals, KindIn:
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, want := range c.Values {
			if s == want {
				return true
			}
		}
		return false
	case KindRange:
		n, ok := AsNumber(v)
		if !ok {
			return false
		}
		return n >= c.Gte && n < c.Lt
	default:
		return false
	}
}

// Filter es una conjunción inmutable de constraints. El zero value matchea todo.
type Filter struct {
	constraints []Constraint
}

func NewFilter(cs ...Constraint) Filter {
	return Filter{constraints: append([]Constraint(nil), cs...)}
}

// Constraints devuelve una copia (los adapters la traducen a su query nativa).
func (f Filter) Constraints() []Constraint {
	out := make([]Constraint, 0, len(f.constraints))
	for _, c := range f.constraints {
		c.Values = append([]string(nil), c.Values...)
		out = append(out, c)
	}
	return out
}

func (f Filter) IsEmpty() bool {
	return len(f.constraints) == 0
}

func (f Filter) Matches(r Record) bool {
	for _, c := range f.constraints {
		if !c.Matches(r) {
			return false
		}
	}
	return true
}

var (
	waterRescueFilter = NewFilter(
		Equals(FieldAnimalType, "Dog"),
		In(FieldBreed, "Labrador Retriever", "Newfoundland"),
		Range(FieldAgeInWeeks, 26, 156),
		Equals(FieldSexUponOutcome, "Intact Female"),
	)

	mountainWildernessFilter = NewFilter(
		Equals(FieldAnimalType, "Dog"),
		In(FieldBreed,
			"German Shepherd",
			"Alaskan Malamute",
			"Old English Sheepdog",
			"Siberian Husky",
			"Rottweiler",
		),
		Range(FieldAgeInWeeks, 26, 156),
		Equals(FieldSexUponOutcome, "Intact Male"),
	)

	disasterTrackingFilter = NewFilter(
		Equals(FieldAnimalType, "Dog"),
		In(FieldBreed,
			"Doberman Pinscher",
			"German Shepherd",
			"Golden Retriever",
			"Bloodhound",
			"Rottweiler",
		),
		Range(FieldAgeInWeeks, 20, 300),
		Equals(FieldSexUponOutcome, "Intact Male"),
	)
)

// Filter devuelve la conjunción del preset. All (y cualquier desconocido) => filtro vacío.
func (p RescuePreset) Filter() Filter {
	switch p {
	case PresetWaterRescue:
		return waterRescueFilter
	case PresetMountainWildernessRescue:
		return mountainWildernessFilter
	case PresetDisasterIndividualTracking:
		return disasterTrackingFilter
	default:
		return Filter{}
	}
}
