package snapshot

import (
	"context"
	"errors"
)

// Keys of the blobs the client persists. The identity blob and the
// credential token are separate entries on purpose: they are written
// together at login and erased together at logout, but nothing in the
// storage layer ties them to each other.
const (
	KeyCart  = "cart"
	KeyUser  = "user"
	KeyToken = "token"
)

var ErrNotFound = errors.New("snapshot: key not found")

// Store persists named blobs across runs. Last write wins; there is a
// single writer and no transaction spanning multiple keys.
type Store interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Close() error
}
