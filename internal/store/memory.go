package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/Ramon1710/appschmiede-v2-sub000/model"
)

// MemoryPageStore is an in-memory PageStore for testing and single-
// instance development setups.
type MemoryPageStore struct {
	mu    sync.RWMutex
	pages map[string]map[string][]byte // projectID → pageName → serialized tree
}

// NewMemoryPageStore creates a new in-memory page store.
func NewMemoryPageStore() *MemoryPageStore {
	return &MemoryPageStore{
		pages: make(map[string]map[string][]byte),
	}
}

// Save upserts the page. Documents are stored serialized so readers get
// their own copy; a caller mutating a returned tree never leaks into the
// store.
func (s *MemoryPageStore) Save(_ context.Context, projectID string, page model.PageTree) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal page: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	project, ok := s.pages[projectID]
	if !ok {
		project = make(map[string][]byte)
		s.pages[projectID] = project
	}
	project[page.Name] = raw
	return nil
}

// Get returns the page or NOT_FOUND.
func (s *MemoryPageStore) Get(_ context.Context, projectID, pageName string) (model.PageTree, error) {
	s.mu.RLock()
	raw, ok := s.pages[projectID][pageName]
	s.mu.RUnlock()

	if !ok {
		return model.PageTree{}, model.NewNotFoundError(
			fmt.Sprintf("page %q not found in project %q", pageName, projectID),
		)
	}

	var page model.PageTree
	if err := json.Unmarshal(raw, &page); err != nil {
		return model.PageTree{}, fmt.Errorf("unmarshal page: %w", err)
	}
	return page, nil
}

// List returns all pages of a project in name order.
func (s *MemoryPageStore) List(_ context.Context, projectID string) ([]model.PageTree, error) {
	s.mu.RLock()
	project := s.pages[projectID]
	raws := make([][]byte, 0, len(project))
	for _, raw := range project {
		raws = append(raws, raw)
	}
	s.mu.RUnlock()

	pages := make([]model.PageTree, 0, len(raws))
	for _, raw := range raws {
		var page model.PageTree
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil, fmt.Errorf("unmarshal page: %w", err)
		}
		pages = append(pages, page)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Name < pages[j].Name })
	return pages, nil
}

// Delete removes a page; missing pages are a no-op.
func (s *MemoryPageStore) Delete(_ context.Context, projectID, pageName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pages[projectID], pageName)
	return nil
}
