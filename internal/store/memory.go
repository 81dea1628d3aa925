// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/curioswitch/recipebox/internal/recipedb"
)

var _ Store = (*Memory)(nil)

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		recipes: map[string]*recipedb.Recipe{},
	}
}

// Memory is a Store keeping recipes in memory. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	recipes map[string]*recipedb.Recipe
	// order is the IDs in insertion order.
	order []string
}

func (m *Memory) Insert(_ context.Context, r *recipedb.Recipe) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r.ID = uuid.NewString()
	m.recipes[r.ID] = clone(r)
	m.order = append(m.order, r.ID)
	return r.ID, nil
}

func (m *Memory) Patch(_ context.Context, r *recipedb.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.recipes[r.ID]
	if !ok {
		return ErrNotFound
	}
	updated := clone(r)
	updated.UserID = existing.UserID
	updated.CreatedAt = existing.CreatedAt
	m.recipes[r.ID] = updated
	return nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.recipes[id]; !ok {
		return nil
	}
	delete(m.recipes, id)
	m.order = slices.DeleteFunc(m.order, func(o string) bool {
		return o == id
	})
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (*recipedb.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(r), nil
}

func (m *Memory) FindBySlug(_ context.Context, slug string) (*recipedb.Recipe, error) {
	if slug == "" {
		return nil, ErrNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.order {
		if r := m.recipes[id]; r.Slug == slug {
			return clone(r), nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) ListByUser(_ context.Context, userID string, order Order) ([]*recipedb.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*recipedb.Recipe
	for _, id := range m.order {
		if r := m.recipes[id]; r.UserID == userID {
			out = append(out, clone(r))
		}
	}
	slices.SortStableFunc(out, func(a, b *recipedb.Recipe) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	if order == NewestFirst {
		slices.Reverse(out)
	}
	return out, nil
}

func (m *Memory) ListAll(_ context.Context) ([]*recipedb.Recipe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*recipedb.Recipe, len(m.order))
	for i, id := range m.order {
		out[i] = clone(m.recipes[id])
	}
	return out, nil
}

func clone(r *recipedb.Recipe) *recipedb.Recipe {
	c := *r
	c.Tags = slices.Clone(r.Tags)
	return &c
}
