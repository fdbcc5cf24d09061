package animals

import (
	"sort"
	"strings"
)

// AggregationMode define si se devuelven todas las razas o top-N + "Other".
type AggregationMode string

const (
	ModeAll  AggregationMode = "all"
	ModeTopN AggregationMode = "top"
)

const (
	// OtherBreed es la fila sintética que agrupa todo lo que queda fuera del top-N.
	OtherBreed = "Other"

	DefaultTopN = 10
)

// ParseMode: "all" => ModeAll; cualquier otra cosa (incluido vacío) => ModeTopN.
func ParseMode(s string) AggregationMode {
	if strings.EqualFold(strings.TrimSpace(s), string(ModeAll)) {
		return ModeAll
	}
	return ModeTopN
}

// GroupByBreed cuenta registros por valor exacto de breed, en orden de primera aparición.
// Registros sin breed (o con breed vacío / no-string) quedan fuera: ni se cuentan ni van a "Other".
func GroupByBreed(records []Record) []BreedCount {
	idx := make(map[string]int)
	out := make([]BreedCount, 0)

	for _, r := range records {
		v, ok := r.Lookup(FieldBreed)
		if !ok {
			continue
		}
		breed, ok := v.(string)
		if !ok || breed == "" {
			continue
		}
		if i, seen := idx[breed]; seen {
			out[i].Count++
			continue
		}
		idx[breed] = len(out)
		out = append(out, BreedCount{Breed: breed, Count: 1})
	}
	return out
}

// RankBreeds ordena grupos desc por count. El sort es estable, así que los empates
// respetan el orden de entrada (primera aparición).
// En ModeTopN conserva los primeros n y agrega "Other" con la suma del resto, solo si > 0.
func RankBreeds(groups []BreedCount, mode AggregationMode, n int) []BreedCount {
	ranked := make([]BreedCount, 0, len(groups))
	for _, g := range groups {
		if g.Count <= 0 {
			continue
		}
		ranked = append(ranked, g)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if mode == ModeAll {
		return ranked
	}

	if n < 0 {
		n = 0
	}
	if n >= len(ranked) {
		return ranked
	}

	other := 0
	for _, g := range ranked[n:] {
		other += g.Count
	}

	out := append(make([]BreedCount, 0, n+1), ranked[:n]...)
	if other > 0 {
		out = append(out, BreedCount{Breed: OtherBreed, Count: other})
	}
	return out
}

// AggregateByBreed = GroupByBreed + RankBreeds.
func AggregateByBreed(records []Record, mode AggregationMode, n int) []BreedCount {
	return RankBreeds(GroupByBreed(records), mode, n)
}
