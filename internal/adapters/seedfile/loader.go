// Package seedfile loads the JSON seed document from disk.
package seedfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"dialoq/internal/domain"
)

type Loader struct {
	Path string
}

func New(path string) *Loader { return &Loader{Path: path} }

func (l *Loader) Load(ctx context.Context) (*domain.Document, error) {
	b, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", l.Path, err)
	}
	return &doc, nil
}
