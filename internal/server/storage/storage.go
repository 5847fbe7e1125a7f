// Package storage keeps uploaded report images, either on the local
// filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/orio/internal/common"
)

// ImageStore saves and serves images by their unique base name.
type ImageStore interface {
	Save(ctx context.Context, name, contentType string, body io.Reader) error
	// Open returns common.ErrorNotFound when name is not stored.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
}

// PublicPath is the URL path under which name is served.
func PublicPath(name string) string {
	return common.UploadsURLPrefix + name
}

// NameFromPublicPath is the inverse of PublicPath. ok is false for paths
// outside the uploads prefix.
func NameFromPublicPath(path string) (string, bool) {
	name, ok := strings.CutPrefix(path, common.UploadsURLPrefix)
	if !ok || checkName(name) != nil {
		return "", false
	}
	return name, true
}

// checkName rejects anything that is not a plain file name.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid image name %q", common.ErrorValidation, name)
	}
	return nil
}
