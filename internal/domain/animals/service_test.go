package animals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	records []Record
	err     error
}

func (r *testRepo) Find(ctx context.Context, f Filter) ([]Record, error) {
	if r.err != nil {
		return nil, r.err
	}
	out := make([]Record, 0)
	for _, rec := range r.records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *testRepo) BreedGroups(ctx context.Context) ([]BreedCount, error) {
	if r.err != nil {
		return nil, r.err
	}
	return GroupByBreed(r.records), nil
}

func (r *testRepo) Ping(ctx context.Context) error { return r.err }

// -------------------------
// Tests
// -------------------------

func TestService_FetchRecords_EveryResultSatisfiesPreset(t *testing.T) {
	repo := &testRepo{records: []Record{
		waterDog(),
		{FieldAnimalType: "Cat", FieldBreed: "Domestic Shorthair"},
		{FieldAnimalType: "Dog", FieldBreed: "Newfoundland", FieldAgeInWeeks: 100.0, FieldSexUponOutcome: "Intact Female"},
		{FieldAnimalType: "Dog", FieldBreed: "Rottweiler", FieldAgeInWeeks: 30.0, FieldSexUponOutcome: "Intact Male"},
	}}
	svc := NewService(repo, nil)

	for _, p := range Presets() {
		got, err := svc.FetchRecords(context.Background(), p)
		require.NoError(t, err)
		for _, rec := range got {
			assert.True(t, p.Filter().Matches(rec), "preset %s returned non-matching record %v", p, rec)
		}
	}

	all, err := svc.FetchRecords(context.Background(), PresetAll)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	water, err := svc.FetchRecords(context.Background(), PresetWaterRescue)
	require.NoError(t, err)
	assert.Len(t, water, 2)
}

func TestService_FetchRecords_ReturnsCopies(t *testing.T) {
	repo := &testRepo{records: []Record{waterDog()}}
	svc := NewService(repo, nil)

	got, err := svc.FetchRecords(context.Background(), PresetAll)
	require.NoError(t, err)
	got[0][FieldBreed] = "mutated"

	assert.Equal(t, "Labrador Retriever", repo.records[0][FieldBreed])
}

func TestService_FetchRecords_StoreUnavailable(t *testing.T) {
	svc := NewService(&testRepo{err: errors.New("connection refused")}, nil)

	_, err := svc.FetchRecords(context.Background(), PresetAll)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	_, err = NewService(nil, nil).FetchRecords(context.Background(), PresetAll)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestService_BreedPie(t *testing.T) {
	repo := &testRepo{records: recordsWithBreeds([]BreedCount{{"A", 1}, {"B", 3}, {"C", 2}})}
	svc := NewService(repo, nil)

	top, err := svc.BreedPie(context.Background(), ModeTopN, 1)
	require.NoError(t, err)
	assert.Equal(t, []BreedCount{{"B", 3}, {OtherBreed, 3}}, top)

	all, err := svc.BreedPie(context.Background(), ModeAll, 0)
	require.NoError(t, err)
	assert.Equal(t, []BreedCount{{"B", 3}, {"C", 2}, {"A", 1}}, all)

	_, err = svc.BreedPie(context.Background(), ModeTopN, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
