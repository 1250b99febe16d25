// Package docstore provides the key→JSON-blob document store backing the
// resolver registry. Keys are canonical object paths such as
// "/gs1/01/09506000134352/10/ABC123.json"; values are opaque JSON documents.
package docstore

import "context"

// Store is the persistence contract of the registry. Implementations must
// return common.ErrNotFound from One when the key is absent.
type Store interface {
	// Save writes doc under key, replacing any previous value.
	Save(ctx context.Context, key string, doc []byte) error

	// One reads the document stored under key.
	One(ctx context.Context, key string) ([]byte, error)

	// All returns every document whose key starts with prefix.
	All(ctx context.Context, prefix string) ([][]byte, error)

	// Delete removes the document under key. Deleting an absent key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
