// internal/api/handler/form.go
package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"salapi-backend/internal/imagestore"
	"salapi-backend/internal/util"
)

// maxUploadSize caps in-memory multipart parsing.
const maxUploadSize = 10 << 20

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// formImage pulls the optional "image" part out of a multipart form. A
// missing part is not an error.
func formImage(r *http.Request) (*imagestore.File, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: malformed image upload", util.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrImageUpload, err)
	}
	return &imagestore.File{Name: header.Filename, Data: data}, nil
}

// parseDate accepts either a full RFC 3339 timestamp or a bare date.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", util.ErrInvalidInput, value)
	}
	return t, nil
}
