package catalog

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/vitrin/backend/internal/domain"
)

// FileSource serves the catalog from a JSON file, either a bare array of
// products or an object with a "products" array.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed catalog source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchProducts reads and maps the file on every call
func (s *FileSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	records, err := decodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}

	products, _ := MapRecords(records)
	return products, nil
}

func decodeRecords(data []byte) ([]feedRecord, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []feedRecord
		err := json.Unmarshal(trimmed, &records)
		return records, err
	}

	var resp feedResponse
	err := json.Unmarshal(trimmed, &resp)
	return resp.Products, err
}
