// Package mongo implementa el record store sobre la colección de outcomes del shelter.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"shelter-dashboard/internal/domain/animals"
)

const connectTimeout = 5 * time.Second

type Config struct {
	URI        string
	Database   string
	Collection string
}

type AnimalsRepo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// Open arma el cliente sin esperar al servidor: el driver conecta en segundo plano, así que
// un Mongo caído al arrancar no es error. Solo falla con una URI/config inválida.
// El caller cierra con Close.
func Open(ctx context.Context, cfg Config) (*AnimalsRepo, error) {
	// Los timeouts van antes de ApplyURI para que la URI pueda pisarlos.
	opts := options.Client().
		SetConnectTimeout(connectTimeout).
		SetServerSelectionTimeout(connectTimeout).
		ApplyURI(cfg.URI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	return &AnimalsRepo{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (r *AnimalsRepo) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}

func (r *AnimalsRepo) Find(ctx context.Context, f animals.Filter) ([]animals.Record, error) {
	cur, err := r.coll.Find(ctx, toQuery(f))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]animals.Record, 0)
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, toRecord(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnimalsRepo) BreedGroups(ctx context.Context) ([]animals.BreedCount, error) {
	cur, err := r.coll.Aggregate(ctx, breedGroupsPipeline())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]animals.BreedCount, 0)
	for cur.Next(ctx) {
		var row struct {
			Breed string `bson:"_id"`
			Count int    `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out = append(out, animals.BreedCount{Breed: row.Breed, Count: row.Count})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnimalsRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

// toQuery traduce el Filter a un documento de query.
// $eq/$in sobre strings y $gte/$lt sobre números ya respetan el tipo en Mongo,
// así que la semántica coincide con Filter.Matches.
func toQuery(f animals.Filter) bson.D {
	cs := f.Constraints()
	conds := make(bson.A, 0, len(cs))
	for _, c := range cs {
		switch c.Kind {
		case animals.KindEquals:
			if len(c.Values) == 1 {
				conds = append(conds, bson.D{{Key: c.Field, Value: bson.D{{Key: "$eq", Value: c.Values[0]}}}})
				continue
			}
			fallthrough
		case animals.KindIn:
			vals := make(bson.A, 0, len(c.Values))
			for _, v := range c.Values {
				vals = append(vals, v)
			}
			conds = append(conds, bson.D{{Key: c.Field, Value: bson.D{{Key: "$in", Value: vals}}}})
		case animals.KindRange:
			conds = append(conds, bson.D{{Key: c.Field, Value: bson.D{
				{Key: "$gte", Value: c.Gte},
				{Key: "$lt", Value: c.Lt},
			}}})
		}
	}

	switch len(conds) {
	case 0:
		return bson.D{}
	case 1:
		return conds[0].(bson.D)
	default:
		return bson.D{{Key: "$and", Value: conds}}
	}
}

// breedGroupsPipeline agrupa por raza no vacía, ordenando por primera aparición (_id mínimo).
func breedGroupsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: animals.FieldBreed, Value: bson.D{
			{Key: "$type", Value: "string"},
			{Key: "$ne", Value: ""},
		}}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + animals.FieldBreed},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "first", Value: bson.D{{Key: "$min", Value: "$_id"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "first", Value: 1}}}},
	}
}

// toRecord normaliza tipos BSON a tipos JSON-friendly.
func toRecord(doc bson.M) animals.Record {
	out := make(animals.Record, len(doc))
	for k, v := range doc {
		out[k] = normalize(v)
	}
	return out
}

func normalize(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case primitive.Decimal128:
		return t.String()
	case bson.M:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = normalize(vv)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = normalize(e.Value)
		}
		return m
	case bson.A:
		a := make([]any, 0, len(t))
		for _, vv := range t {
			a = append(a, normalize(vv))
		}
		return a
	default:
		return v
	}
}
