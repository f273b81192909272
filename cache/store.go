package cache

import (
	"context"
	"time"
)

// Store holds encoded images by key. Implementations must be safe for
// concurrent use. A missing or expired key is reported with ok == false
// and a nil error; err is reserved for backend failures.
type Store interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	// Set stores val under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
