package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid storage key")

// Storage persists uploaded files under flat keys and knows the public URL
// each key is served from.
type Storage interface {
	Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// validKey rejects anything that could escape the upload root.
func validKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}

	return filepath.Base(key) == key && !strings.ContainsAny(key, `/\`)
}
