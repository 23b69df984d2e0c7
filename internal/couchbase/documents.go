package couchbase

import (
	"context"
	"errors"
	"fmt"

	"github.com/couchbase/gocb/v2"

	"github.com/maeesh-asiff1787/medicare-cms/internal/kv"
)

// Documents implements kv.Store over the bucket's default collection.
// Each record collection lives in one document keyed by its storage key.
type Documents struct {
	bucket *gocb.Bucket
}

// NewDocuments creates a document store over the connection's bucket.
func NewDocuments(conn *Connection) *Documents {
	return &Documents{bucket: conn.Bucket()}
}

// Get retrieves the document at key and unmarshals it into result.
func (d *Documents) Get(ctx context.Context, key string, result interface{}) error {
	col := d.bucket.DefaultCollection()

	doc, err := col.Get(key, &gocb.GetOptions{Context: ctx})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			return kv.ErrNotFound
		}
		return fmt.Errorf("failed to get document %s: %w", key, err)
	}

	if err := doc.Content(result); err != nil {
		return fmt.Errorf("failed to parse document %s: %w", key, err)
	}
	return nil
}

// Put stores or replaces the document at key.
func (d *Documents) Put(ctx context.Context, key string, value interface{}) error {
	col := d.bucket.DefaultCollection()

	_, err := col.Upsert(key, value, &gocb.UpsertOptions{Context: ctx})
	if err != nil {
		return fmt.Errorf("failed to upsert document %s: %w", key, err)
	}
	return nil
}

// Delete removes the document at key.
func (d *Documents) Delete(ctx context.Context, key string) error {
	col := d.bucket.DefaultCollection()

	_, err := col.Remove(key, &gocb.RemoveOptions{Context: ctx})
	if err != nil {
		if errors.Is(err, gocb.ErrDocumentNotFound) {
			return kv.ErrNotFound
		}
		return fmt.Errorf("failed to delete document %s: %w", key, err)
	}
	return nil
}
