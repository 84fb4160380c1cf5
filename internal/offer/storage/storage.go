// Package storage keeps the bytes of files uploaded to projects.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrObjectNotFound is returned by Get for an unknown key.
var ErrObjectNotFound = errors.New("object not found")

// BlobStore writes and reads opaque objects by key.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// ProjectFileKey builds the object key of a file uploaded to a project.
func ProjectFileKey(projectID, fileName string) string {
	return fmt.Sprintf("projects/%s/%s%s", projectID, uuid.New().String()[:8], strings.ToLower(filepath.Ext(fileName)))
}
