package ports

import (
	"context"

	"dialoq/internal/domain"
)

// SourceLoader supplies the parsed seed document.
type SourceLoader interface {
	Load(ctx context.Context) (*domain.Document, error)
}
