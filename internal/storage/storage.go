// Package storage provides the object store used for binary assets.
// Assets are create-once, read-many blobs keyed by an opaque identifier;
// no update or delete path is exposed.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no object exists under the requested key.
var ErrNotFound = errors.New("object not found")

// Object is the result of a Get. Size is the length of Body, which for a
// partial read is the requested slice, not the whole object. ContentRange is
// set only for partial reads, in "bytes start-end/total" form.
type Object struct {
	Body         io.ReadCloser
	ContentType  string
	Size         int64
	ContentRange string
}

// ObjectStore exposes put/get by key. rangeHeader, when non-empty, is a raw
// HTTP Range header value ("bytes=0-99"); implementations that cannot satisfy
// it return the full object.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) error
	Get(ctx context.Context, key, rangeHeader string) (*Object, error)
}
