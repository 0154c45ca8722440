package interfaces

import (
	"context"
	"time"
)

// ICounterStore is the shared cache used by velocity filters. Entries expire
// after the ttl given on Set.
type ICounterStore interface {
	Get(ctx context.Context, key string) (stamps []int64, found bool, err error)
	Set(ctx context.Context, key string, stamps []int64, ttl time.Duration) error
}
