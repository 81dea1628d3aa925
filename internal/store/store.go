// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package store persists recipes.
package store

import (
	"context"
	"errors"

	"github.com/curioswitch/recipebox/internal/recipedb"
)

// ErrNotFound is returned when a recipe does not exist.
var ErrNotFound = errors.New("store: recipe not found")

// Order is the order of recipes in a listing by creation time.
type Order int

const (
	// OldestFirst lists recipes in ascending creation time.
	OldestFirst Order = iota
	// NewestFirst lists recipes in descending creation time.
	NewestFirst
)

// Store persists recipes. Recipes are passed and returned by pointer, implementations never
// retain them.
type Store interface {
	// Insert saves a new recipe, returning its assigned ID. The ID of r is also set.
	Insert(ctx context.Context, r *recipedb.Recipe) (string, error)

	// Patch overwrites the mutable fields of an existing recipe. ID, UserID and CreatedAt
	// are never changed.
	Patch(ctx context.Context, r *recipedb.Recipe) error

	// Delete removes a recipe.
	Delete(ctx context.Context, id string) error

	// Get returns the recipe with id.
	Get(ctx context.Context, id string) (*recipedb.Recipe, error)

	// FindBySlug returns the recipe holding slug.
	FindBySlug(ctx context.Context, slug string) (*recipedb.Recipe, error)

	// ListByUser returns the recipes owned by userID.
	ListByUser(ctx context.Context, userID string, order Order) ([]*recipedb.Recipe, error)

	// ListAll returns every recipe of every user.
	ListAll(ctx context.Context) ([]*recipedb.Recipe, error)
}
