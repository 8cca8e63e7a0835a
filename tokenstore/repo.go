package tokenstore

import (
	"context"
	"errors"
	"time"
)

var ErrSlotNotFound = errors.New("token slot not found")

// Repo keeps tokens server-side, keyed by the slot id carried in the cookie
type Repo interface {
	Upsert(ctx context.Context, slotID, token string, ttl time.Duration) error
	Get(ctx context.Context, slotID string) (string, error)
	Delete(ctx context.Context, slotID string) error
}
