// Package media stores uploaded profile and cover images in object storage.
package media

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured is returned by Disabled when no bucket is set up.
var ErrNotConfigured = errors.New("media: object storage not configured")

// Object is one file to store.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStorage persists an object and returns the public URL it can be
// fetched from.
type ObjectStorage interface {
	Put(ctx context.Context, obj Object) (string, error)
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Put(context.Context, Object) (string, error) { return "", ErrNotConfigured }
