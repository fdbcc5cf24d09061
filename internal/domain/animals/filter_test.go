package animals

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func waterDog() Record {
	return Record{
		FieldAnimalType:     "Dog",
		FieldBreed:          "Labrador Retriever",
		FieldAgeInWeeks:     52.0,
		FieldSexUponOutcome: "Intact Female",
	}
}

func TestParsePreset_UnknownDegradesToAll(t *testing.T) {
	assert.Equal(t, PresetWaterRescue, ParsePreset("water_rescue"))
	assert.Equal(t, PresetAll, ParsePreset(""))
	assert.Equal(t, PresetAll, ParsePreset("lava_rescue"))
	assert.True(t, ParsePreset("lava_rescue").Filter().IsEmpty())
}

func TestPresetFilter_WaterRescue(t *testing.T) {
	f := PresetWaterRescue.Filter()

	assert.True(t, f.Matches(waterDog()))

	cases := map[string]func(Record){
		"wrong sex":        func(r Record) { r[FieldSexUponOutcome] = "Intact Male" },
		"wrong breed":      func(r Record) { r[FieldBreed] = "Beagle" },
		"too young":        func(r Record) { r[FieldAgeInWeeks] = 25.9 },
		"upper bound open": func(r Record) { r[FieldAgeInWeeks] = 156 },
		"age as string":    func(r Record) { r[FieldAgeInWeeks] = "52" },
		"missing type":     func(r Record) { delete(r, FieldAnimalType) },
		"nil breed":        func(r Record) { r[FieldBreed] = nil },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := waterDog()
			mutate(r)
			assert.False(t, f.Matches(r))
		})
	}
}

func TestPresetFilter_LowerBoundInclusive(t *testing.T) {
	r := Record{
		FieldAnimalType:     "Dog",
		FieldBreed:          "Rottweiler",
		FieldAgeInWeeks:     int32(20),
		FieldSexUponOutcome: "Intact Male",
	}
	assert.True(t, PresetDisasterIndividualTracking.Filter().Matches(r))
	assert.False(t, PresetMountainWildernessRescue.Filter().Matches(r))
}

func TestFilter_ZeroValueMatchesAll(t *testing.T) {
	var f Filter
	assert.True(t, f.Matches(Record{}))
	assert.True(t, PresetAll.Filter().Matches(Record{"x": 1}))
}

func TestFilter_ConstraintsIsACopy(t *testing.T) {
	f := PresetWaterRescue.Filter()
	cs := f.Constraints()
	cs[1].Values[0] = "Poodle"

	assert.True(t, f.Matches(waterDog()))
}

func TestRecord_LookupDistinguishesAbsentFromEmpty(t *testing.T) {
	r := Record{FieldBreed: "", FieldColor: nil}

	_, ok := r.Lookup(FieldBreed)
	assert.True(t, ok)
	_, ok = r.Lookup(FieldColor)
	assert.False(t, ok)
	_, ok = r.Lookup(FieldName)
	assert.False(t, ok)
}

func TestParseNumber(t *testing.T) {
	n, ok := ParseNumber(" 52.5 ")
	assert.True(t, ok)
	assert.Equal(t, 52.5, n)

	n, ok = ParseNumber(json.Number("3"))
	assert.True(t, ok)
	assert.Equal(t, 3.0, n)

	_, ok = ParseNumber("abc")
	assert.False(t, ok)
	_, ok = ParseNumber("")
	assert.False(t, ok)
	_, ok = AsNumber("52")
	assert.False(t, ok)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "52", Stringify(52.0))
	assert.Equal(t, "30.75", Stringify(30.75))
	assert.Equal(t, "7", Stringify(int64(7)))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "", Stringify(nil))
}
