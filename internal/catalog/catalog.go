package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/untpkit/resolver/internal/common"
	"github.com/untpkit/resolver/internal/docstore"
)

// Catalog resolves a namespace to its application identifier set.
type Catalog interface {
	GetIdentifier(ctx context.Context, namespace string) (*Identifier, error)
}

const keyPrefix = "_catalog/"

// StoreCatalog persists namespace catalogs in the document store at
// "_catalog/{namespace}.json" and keeps a TTL cache in front of reads:
// catalogs change rarely and every resolution hits them.
type StoreCatalog struct {
	store docstore.Store
	cache *gocache.Cache
}

func NewStoreCatalog(store docstore.Store, ttl time.Duration) *StoreCatalog {
	return &StoreCatalog{
		store: store,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func storeKey(namespace string) string {
	return keyPrefix + namespace + ".json"
}

func (c *StoreCatalog) GetIdentifier(ctx context.Context, namespace string) (*Identifier, error) {
	if cached, ok := c.cache.Get(namespace); ok {
		return cached.(*Identifier), nil
	}

	doc, err := c.store.One(ctx, storeKey(namespace))
	if err != nil {
		return nil, err
	}

	var ident Identifier
	if err := json.Unmarshal(doc, &ident); err != nil {
		return nil, fmt.Errorf("decoding catalog for %q: %w", namespace, err)
	}

	c.cache.SetDefault(namespace, &ident)
	return &ident, nil
}

// Put validates and persists a namespace's identifier set, replacing any
// previous catalog for that namespace.
func (c *StoreCatalog) Put(ctx context.Context, ident *Identifier) error {
	if strings.TrimSpace(ident.Namespace) == "" {
		return common.NewValidationError([]common.FieldError{
			{Key: "invalid_namespace_prefix", Args: []any{ident.Namespace}},
		})
	}
	if errs := ValidateSet(ident.ApplicationIdentifiers); len(errs) > 0 {
		return common.NewValidationError(errs)
	}

	doc, err := json.Marshal(ident)
	if err != nil {
		return err
	}
	if err := c.store.Save(ctx, storeKey(ident.Namespace), doc); err != nil {
		return err
	}

	c.cache.Delete(ident.Namespace)
	return nil
}

// Delete removes a namespace's catalog.
func (c *StoreCatalog) Delete(ctx context.Context, namespace string) error {
	if err := c.store.Delete(ctx, storeKey(namespace)); err != nil {
		return err
	}
	c.cache.Delete(namespace)
	return nil
}

// List returns every registered namespace catalog.
func (c *StoreCatalog) List(ctx context.Context) ([]*Identifier, error) {
	docs, err := c.store.All(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}

	result := make([]*Identifier, 0, len(docs))
	for _, doc := range docs {
		var ident Identifier
		if err := json.Unmarshal(doc, &ident); err != nil {
			return nil, fmt.Errorf("decoding catalog: %w", err)
		}
		result = append(result, &ident)
	}
	return result, nil
}
