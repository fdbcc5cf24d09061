package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shelter-dashboard/internal/domain/animals"
)

func TestToQuery_All(t *testing.T) {
	assert.Equal(t, bson.D{}, toQuery(animals.PresetAll.Filter()))
}

func TestToQuery_SingleConstraint(t *testing.T) {
	q := toQuery(animals.NewFilter(animals.Equals(animals.FieldAnimalType, "Dog")))
	assert.Equal(t, bson.D{{Key: "animal_type", Value: bson.D{{Key: "$eq", Value: "Dog"}}}}, q)
}

func TestToQuery_WaterRescue(t *testing.T) {
	q := toQuery(animals.PresetWaterRescue.Filter())

	require.Len(t, q, 1)
	assert.Equal(t, "$and", q[0].Key)

	conds, ok := q[0].Value.(bson.A)
	require.True(t, ok)
	require.Len(t, conds, 4)

	assert.Equal(t, bson.D{{Key: "breed", Value: bson.D{{Key: "$in", Value: bson.A{"Labrador Retriever", "Newfoundland"}}}}}, conds[1])
	assert.Equal(t, bson.D{{Key: "age_upon_outcome_in_weeks", Value: bson.D{
		{Key: "$gte", Value: 26.0},
		{Key: "$lt", Value: 156.0},
	}}}, conds[2])
	assert.Equal(t, bson.D{{Key: "sex_upon_outcome", Value: bson.D{{Key: "$eq", Value: "Intact Female"}}}}, conds[3])

	// Debe serializar sin error.
	_, err := bson.Marshal(q)
	require.NoError(t, err)
}

func TestBreedGroupsPipeline(t *testing.T) {
	p := breedGroupsPipeline()
	require.Len(t, p, 3)
	assert.Equal(t, "$match", p[0][0].Key)
	assert.Equal(t, "$group", p[1][0].Key)
	assert.Equal(t, "$sort", p[2][0].Key)
}

func TestToRecord_Normalizes(t *testing.T) {
	oid := primitive.NewObjectID()
	when := time.Date(2016, 6, 1, 10, 0, 0, 0, time.UTC)

	rec := toRecord(bson.M{
		"_id":                       oid,
		"age_upon_outcome_in_weeks": int32(52),
		"rec_num":                   int64(7),
		"datetime":                  primitive.NewDateTimeFromTime(when),
		"tags":                      bson.A{"a", int32(1)},
		"nested":                    bson.M{"x": int64(2)},
		"breed":                     "Beagle",
	})

	assert.Equal(t, oid.Hex(), rec["_id"])
	assert.Equal(t, 52.0, rec["age_upon_outcome_in_weeks"])
	assert.Equal(t, 7.0, rec["rec_num"])
	assert.Equal(t, "2016-06-01T10:00:00Z", rec["datetime"])
	assert.Equal(t, []any{"a", 1.0}, rec["tags"])
	assert.Equal(t, map[string]any{"x": 2.0}, rec["nested"])
	assert.Equal(t, "Beagle", rec["breed"])

	assert.True(t, animals.NewFilter(animals.Range(animals.FieldAgeInWeeks, 26, 156)).Matches(rec))
}

func TestOpen_UnreachableServerIsNotFatal(t *testing.T) {
	repo, err := Open(context.Background(), Config{
		URI:        "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200",
		Database:   "aac_shelter_outcomes",
		Collection: "ACC",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close(context.Background()) })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	assert.Error(t, repo.Ping(ctx))
	_, err = repo.Find(ctx, animals.PresetAll.Filter())
	assert.Error(t, err)
}

func TestOpen_InvalidURI(t *testing.T) {
	_, err := Open(context.Background(), Config{URI: "not-a-uri"})
	assert.Error(t, err)
}
