// internal/imagestore/store.go
package imagestore

import (
	"context"
	"path"
	"strings"

	"salapi-backend/internal/util"
)

// File is an image file handed to the store by a caller: raw bytes plus the
// original file name the extension is validated from.
type File struct {
	Name string
	Data []byte
}

// Store is the image hosting collaborator contract: persist an image and
// return an address the app can fetch it from.
type Store interface {
	Upload(ctx context.Context, file File, folder string) (string, error)
}

// Allowed image extensions for security.
var allowedExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// Extension returns the lower-cased extension of name, without the dot.
func Extension(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	return ext
}

// ValidateExtension rejects files whose extension is not allow-listed.
// It runs before any upload is attempted.
func ValidateExtension(name string) error {
	if !allowedExtensions[Extension(name)] {
		return util.ErrInvalidImageType
	}
	return nil
}
