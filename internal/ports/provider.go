package ports

import "context"

// Provider is a machine-translation backend.
type Provider interface {
	// Translate returns the target-language rendering of text. It is
	// network-bound and must never be called while holding a store
	// transaction.
	Translate(ctx context.Context, text, from, to string) (string, error)
	// Test checks that the backend is reachable.
	Test(ctx context.Context) error
}
