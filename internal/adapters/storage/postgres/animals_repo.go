package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"shelter-dashboard/internal/domain/animals"
)

// Los documentos se guardan tal cual en una columna jsonb; el orden de id es el orden de inserción.
const animalsSchema = `
	CREATE TABLE IF NOT EXISTS animals (
		id  BIGSERIAL PRIMARY KEY,
		doc JSONB NOT NULL
	)
`

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, animalsSchema)
	return err
}

// Insert agrega documentos en el orden recibido.
func (r *AnimalsRepo) Insert(ctx context.Context, recs ...animals.Record) error {
	for _, rec := range recs {
		b, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal animal doc: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, `INSERT INTO animals (doc) VALUES ($1)`, string(b)); err != nil {
			return err
		}
	}
	return nil
}

func (r *AnimalsRepo) Find(ctx context.Context, f animals.Filter) ([]animals.Record, error) {
	where, args := whereClause(f)

	rows, err := r.db.QueryContext(ctx, `SELECT id, doc FROM animals`+where+` ORDER BY id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Record, 0)
	for rows.Next() {
		var id int64
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, err
		}

		rec := animals.Record{}
		if err := json.Unmarshal(doc, &rec); err != nil {
			return nil, fmt.Errorf("decode animal %d: %w", id, err)
		}
		if _, ok := rec[animals.FieldMongoInternalID]; !ok {
			rec[animals.FieldMongoInternalID] = strconv.FormatInt(id, 10)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BreedGroups agrupa en la base y ordena por primera aparición; el ranking se hace en el dominio.
func (r *AnimalsRepo) BreedGroups(ctx context.Context) ([]animals.BreedCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT doc->>'breed' AS breed, count(*) AS n
		FROM animals
		WHERE jsonb_typeof(doc->'breed') = 'string' AND doc->>'breed' <> ''
		GROUP BY doc->>'breed'
		ORDER BY min(id) ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.BreedCount, 0)
	for rows.Next() {
		var bc animals.BreedCount
		if err := rows.Scan(&bc.Breed, &bc.Count); err != nil {
			return nil, err
		}
		out = append(out, bc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AnimalsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// whereClause traduce un Filter a SQL sobre la columna jsonb.
// Los nombres de campo también van como parámetros. eq/in solo matchean valores string
// y range solo valores numéricos, igual que Filter.Matches.
func whereClause(f animals.Filter) (string, []any) {
	cs := f.Constraints()
	if len(cs) == 0 {
		return "", nil
	}

	args := make([]any, 0)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	conds := make([]string, 0, len(cs))
	for _, c := range cs {
		key := next(c.Field) + "::text"
		switch c.Kind {
		case animals.KindEquals, animals.KindIn:
			if len(c.Values) == 0 {
				conds = append(conds, "FALSE")
				continue
			}
			ph := make([]string, 0, len(c.Values))
			for _, v := range c.Values {
				ph = append(ph, next(v))
			}
			conds = append(conds, fmt.Sprintf(
				"(jsonb_typeof(doc->%s) = 'string' AND doc->>%s IN (%s))",
				key, key, strings.Join(ph, ", "),
			))
		case animals.KindRange:
			num := fmt.Sprintf("(CASE WHEN jsonb_typeof(doc->%s) = 'number' THEN (doc->>%s)::numeric END)", key, key)
			conds = append(conds, fmt.Sprintf("(%s >= %s AND %s < %s)", num, next(c.Gte), num, next(c.Lt)))
		default:
			conds = append(conds, "FALSE")
		}
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
