package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// PgPageStore is a PostgreSQL-backed PageStore using pgx/v5. Trees are
// stored as whole JSONB documents; the upsert gives last-write-wins.
//
// Schema:
//
//	CREATE TABLE pages (
//	    project_id TEXT NOT NULL,
//	    page_name  TEXT NOT NULL,
//	    folder     TEXT NOT NULL DEFAULT '',
//	    tree       JSONB NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    PRIMARY KEY (project_id, page_name)
//	);
type PgPageStore struct {
	pool *pgxpool.Pool
}

// NewPgPageStore creates a new PostgreSQL page store.
func NewPgPageStore(pool *pgxpool.Pool) *PgPageStore {
	return &PgPageStore{pool: pool}
}

// Save upserts the page document.
func (s *PgPageStore) Save(ctx context.Context, projectID string, page model.PageTree) error {
	treeJSON, err := json.Marshal(page.Tree)
	if err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO pages (project_id, page_name, folder, tree, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (project_id, page_name)
		DO UPDATE SET folder = EXCLUDED.folder, tree = EXCLUDED.tree, updated_at = now()`,
		projectID, page.Name, page.Folder, treeJSON,
	)
	if err != nil {
		return fmt.Errorf("upsert page: %w", err)
	}
	return nil
}

// Get returns the page or NOT_FOUND.
func (s *PgPageStore) Get(ctx context.Context, projectID, pageName string) (model.PageTree, error) {
	var (
		page     model.PageTree
		treeJSON []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT page_name, folder, tree
		FROM pages
		WHERE project_id = $1 AND page_name = $2`,
		projectID, pageName,
	).Scan(&page.Name, &page.Folder, &treeJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.PageTree{}, model.NewNotFoundError(
			fmt.Sprintf("page %q not found in project %q", pageName, projectID),
		)
	}
	if err != nil {
		return model.PageTree{}, fmt.Errorf("query page: %w", err)
	}

	if err := json.Unmarshal(treeJSON, &page.Tree); err != nil {
		return model.PageTree{}, fmt.Errorf("unmarshal tree: %w", err)
	}
	return page, nil
}

// List returns all pages of a project in name order.
func (s *PgPageStore) List(ctx context.Context, projectID string) ([]model.PageTree, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT page_name, folder, tree
		FROM pages
		WHERE project_id = $1
		ORDER BY page_name`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var pages []model.PageTree
	for rows.Next() {
		var (
			page     model.PageTree
			treeJSON []byte
		)
		if err := rows.Scan(&page.Name, &page.Folder, &treeJSON); err != nil {
			return nil, fmt.Errorf("scan page: %w", err)
		}
		if err := json.Unmarshal(treeJSON, &page.Tree); err != nil {
			return nil, fmt.Errorf("unmarshal tree: %w", err)
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// Delete removes a page; missing pages are a no-op.
func (s *PgPageStore) Delete(ctx context.Context, projectID, pageName string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM pages WHERE project_id = $1 AND page_name = $2`,
		projectID, pageName,
	)
	if err != nil {
		return fmt.Errorf("delete page: %w", err)
	}
	return nil
}

// HealthCheck pings the pool for the readiness endpoint.
func (s *PgPageStore) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
