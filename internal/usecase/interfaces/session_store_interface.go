package interfaces

import "context"

// ISessionStore is the only way donor session state is read or written.
// Keys live inside a namespace (one per donor session). Clear without keys
// drops the whole namespace.
type ISessionStore interface {
	Get(ctx context.Context, namespace, key string) (value string, found bool, err error)
	Set(ctx context.Context, namespace, key, value string) error
	Clear(ctx context.Context, namespace string, keys ...string) error
}
