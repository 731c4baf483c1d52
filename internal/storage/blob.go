package storage

import (
	"errors"
	"io"
)

var ErrBadKey = errors.New("storage: invalid key")

// BlobStore keeps raw uploads (catalog CSV snapshots) by key.
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}
