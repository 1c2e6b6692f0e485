// Package session persists per-user navigation state between requests.
package session

import (
	"context"

	"sunray/navigator/internal/navigation"
)

// Store keeps one navigation state per session id. Get returns
// domain.ErrSessionNotFound for an id that was never put or was deleted.
type Store interface {
	Get(ctx context.Context, id string) (*navigation.State, error)
	Put(ctx context.Context, id string, st *navigation.State) error
	Delete(ctx context.Context, id string) error
}
