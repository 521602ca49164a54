package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sokoni-cloud/sokoni/internal/db"
	"github.com/sokoni-cloud/sokoni/internal/domain"
)

// store is the consumer interface for the product catalog (ISP).
type store interface {
	HReplace(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	Refresh(ctx context.Context, name string) error
}

// HNSWConfig tunes the vector index build parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo owns the product index lifecycle and the indexed documents.
// It implements usecase/catalog.Repository and keeps the index consistent
// with the authoritative product hashes.
type Repo struct {
	store          store
	indexName      string
	keyPrefix      string
	vectorDim      int
	hnsw           HNSWConfig
	refreshTimeout time.Duration
}

// New creates a catalog repository for the named index.
func New(s store, name string, vectorDim int) *Repo {
	return &Repo{
		store:     s,
		indexName: domain.KeyPrefix + name + ":idx",
		keyPrefix: domain.KeyPrefix + name + ":",
		vectorDim: vectorDim,
	}
}

// WithHNSW overrides the HNSW build parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// WithRefreshTimeout bounds how long a write waits for index visibility.
func (r *Repo) WithRefreshTimeout(d time.Duration) *Repo {
	r.refreshTimeout = d
	return r
}

// IndexName returns the FT index name this repository writes to.
func (r *Repo) IndexName() string { return r.indexName }

// KeyPrefix returns the document key prefix this repository writes under.
func (r *Repo) KeyPrefix() string { return r.keyPrefix }

// EnsureIndex creates the product index if it does not exist. Idempotent:
// a concurrent racer winning the FT.CREATE is treated as success.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("%w: probe index %s: %w", domain.ErrIndexUnavailable, r.indexName, err)
	}
	if exists {
		return nil
	}

	def := r.indexDefinition()
	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("%w: create index %s: %w", domain.ErrIndexUnavailable, r.indexName, err)
	}
	return nil
}

// Upsert fully replaces the indexed document and blocks until the index has
// absorbed the write, so a search issued after Upsert returns sees it.
// The replace is a single transaction: a removed optional attribute cannot
// linger in the hash, and a failed write leaves the previous document intact.
func (r *Repo) Upsert(ctx context.Context, doc *domain.Document) error {
	key := r.keyPrefix + doc.ID

	if err := r.store.HReplace(ctx, key, buildHashFields(doc)); err != nil {
		return fmt.Errorf("%w: replace %s: %w", domain.ErrIndexUnavailable, key, err)
	}
	if err := r.refresh(ctx); err != nil {
		return fmt.Errorf("%w: refresh %s: %w", domain.ErrIndexUnavailable, r.indexName, err)
	}
	return nil
}

// Delete removes a document. Deleting an absent id is a no-op success.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.keyPrefix + id
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("%w: del %s: %w", domain.ErrIndexUnavailable, key, err)
	}
	if err := r.refresh(ctx); err != nil {
		return fmt.Errorf("%w: refresh %s: %w", domain.ErrIndexUnavailable, r.indexName, err)
	}
	return nil
}

// refresh blocks until the index has absorbed preceding writes.
func (r *Repo) refresh(ctx context.Context) error {
	if r.refreshTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.refreshTimeout)
		defer cancel()
	}
	return r.store.Refresh(ctx, r.indexName)
}

// Get returns the stored document by product id.
func (r *Repo) Get(ctx context.Context, id string) (domain.Document, error) {
	key := r.keyPrefix + id
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domain.Document{}, fmt.Errorf("%w: hgetall %s: %w", domain.ErrIndexUnavailable, key, err)
	}
	if len(fields) == 0 {
		return domain.Document{}, domain.ErrNotFound
	}
	return parseHashFields(id, fields), nil
}

func (r *Repo) indexDefinition() *db.IndexDefinition {
	return &db.IndexDefinition{
		Name:     r.indexName,
		Prefixes: []string{r.keyPrefix},
		Fields: []db.IndexField{
			{Name: fieldOwnerID, Type: db.IndexFieldTag},
			{Name: fieldCurrency, Type: db.IndexFieldTag},
			{Name: fieldColor, Type: db.IndexFieldTag},
			{Name: fieldSize, Type: db.IndexFieldTag},
			{Name: fieldBrand, Type: db.IndexFieldTag},
			{Name: fieldCategory, Type: db.IndexFieldTag},
			{Name: fieldImageURLs, Type: db.IndexFieldTag, TagSeparator: urlSeparator},
			{Name: fieldVideoURLs, Type: db.IndexFieldTag, TagSeparator: urlSeparator},
			{Name: fieldName, Type: db.IndexFieldText},
			{Name: fieldDescription, Type: db.IndexFieldText},
			{Name: fieldPrice, Type: db.IndexFieldNumeric},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.vectorDim,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.hnsw.M,
				VectorEFConstruct: r.hnsw.EFConstruct,
			},
		},
	}
}
