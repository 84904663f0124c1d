package persistence

import (
	"context"
	"io"
)

// DocumentStore abstracts storage of NGO verification documents uploaded at
// signup
type DocumentStore interface {
	// Save stores a document for the given owner and returns its storage path
	Save(ctx context.Context, ownerPublicID, filename string, content io.Reader) (string, error)
}
