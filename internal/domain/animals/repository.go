package animals

import "context"

// Repository es el puerto hacia el record store (Mongo, Postgres jsonb o memoria).
type Repository interface {
	// Find devuelve todos los registros que cumplen el filtro, sin paginar.
	Find(ctx context.Context, f Filter) ([]Record, error)

	// BreedGroups devuelve el conteo por raza (solo breeds no vacíos),
	// en orden de primera aparición y sin rankear.
	BreedGroups(ctx context.Context) ([]BreedCount, error)

	Ping(ctx context.Context) error
}
