// internal/imagestore/disk.go
package imagestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"salapi-backend/internal/util"

	"github.com/google/uuid"
)

// DiskStore persists images under a local root directory and returns
// addresses below a configured base URL.
type DiskStore struct {
	root    string
	baseURL string
}

// NewDiskStore creates a DiskStore rooted at root. Addresses it returns are
// prefixed with baseURL.
func NewDiskStore(root, baseURL string) *DiskStore {
	return &DiskStore{root: root, baseURL: baseURL}
}

// Upload validates the file's extension, writes it under <root>/<folder>
// and returns its address.
func (s *DiskStore) Upload(ctx context.Context, file File, folder string) (string, error) {
	if len(file.Data) == 0 {
		return "", fmt.Errorf("%w: no file provided", util.ErrInvalidInput)
	}
	if err := ValidateExtension(file.Name); err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrImageUpload, err)
	}

	name := fmt.Sprintf("%s_%s.%s", folder, uuid.NewString(), Extension(file.Name))
	if err := os.WriteFile(filepath.Join(dir, name), file.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", util.ErrImageUpload, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.baseURL, folder, name), nil
}

var _ Store = (*DiskStore)(nil)
