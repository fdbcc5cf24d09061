package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"shelter-dashboard/internal/domain/animals"
)

// AnimalsRepo guarda los registros en orden de inserción; ese orden define el
// "primero encontrado" de los grupos por raza.
type AnimalsRepo struct {
	mu      sync.RWMutex
	records []animals.Record
}

func NewAnimalsRepo(seed ...animals.Record) *AnimalsRepo {
	return &AnimalsRepo{records: animals.CloneAll(seed)}
}

// LoadAnimalsJSON lee un array JSON de documentos (p.ej. export de mongoexport --jsonArray).
// Los números se mantienen como float64, igual que al leer del driver.
func LoadAnimalsJSON(r io.Reader) ([]animals.Record, error) {
	var docs []map[string]any
	if err := json.NewDecoder(r).Decode(&docs); err != nil {
		return nil, fmt.Errorf("decode animals seed: %w", err)
	}
	out := make([]animals.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, animals.Record(d))
	}
	return out, nil
}

// LoadAnimalsFile es LoadAnimalsJSON sobre un path.
func LoadAnimalsFile(path string) ([]animals.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadAnimalsJSON(f)
}

func (r *AnimalsRepo) Add(recs ...animals.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, animals.CloneAll(recs)...)
}

func (r *AnimalsRepo) Find(ctx context.Context, f animals.Filter) ([]animals.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]animals.Record, 0)
	for _, rec := range r.records {
		if f.Matches(rec) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

func (r *AnimalsRepo) BreedGroups(ctx context.Context) ([]animals.BreedCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return animals.GroupByBreed(r.records), nil
}

func (r *AnimalsRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}
