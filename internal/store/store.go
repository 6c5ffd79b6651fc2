// Package store persists page trees. Documents are written and read
// whole, with no field-level persistence contract, and the backing
// store provides last-write-wins semantics for concurrent saves.
package store

import (
	"context"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// PageStore reads and writes whole PageTree documents keyed by an opaque
// project id plus the page name.
type PageStore interface {
	// Save upserts the page. The last writer wins.
	Save(ctx context.Context, projectID string, page model.PageTree) error

	// Get returns the page, or a NOT_FOUND envelope when it does not
	// exist. Not-found is a soft condition; callers treat it as empty
	// state, never as a crash.
	Get(ctx context.Context, projectID, pageName string) (model.PageTree, error)

	// List returns all pages of a project in name order.
	List(ctx context.Context, projectID string) ([]model.PageTree, error)

	// Delete removes a page. Deleting a missing page is a no-op.
	Delete(ctx context.Context, projectID, pageName string) error
}
