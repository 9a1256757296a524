// Package store provides access to the external document database.
//
// Documents live in named collections and are addressed by a string id. The
// service keeps no authoritative copy in memory; every request reads from or
// writes to the store directly.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Store is the document-store adapter.
type Store interface {
	// Get loads the document with the given id into out.
	// Returns ErrNotFound when the document does not exist.
	Get(ctx context.Context, collection, id string, out any) error

	// Set writes the full document under the given id, creating or
	// replacing it.
	Set(ctx context.Context, collection, id string, doc any) error

	// Update applies a partial field update to an existing document.
	// Returns ErrNotFound when the document does not exist.
	Update(ctx context.Context, collection, id string, fields map[string]any) error

	// Query loads every document whose field equals value into out, a
	// pointer to a slice, ordered by orderBy descending.
	Query(ctx context.Context, collection, field string, value any, orderBy string, out any) error
}
