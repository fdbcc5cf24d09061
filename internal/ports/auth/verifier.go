package auth

import "context"

// AuthVerifier verifica credenciales y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, username, password string) (Claims, error)
}
