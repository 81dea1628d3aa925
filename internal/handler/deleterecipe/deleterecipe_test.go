// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deleterecipe

import (
	"context"
	"errors"
	"testing"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipedb"
	"github.com/curioswitch/recipebox/internal/recipes"
	"github.com/curioswitch/recipebox/internal/store"
)

func TestDeleteRecipe(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	h := NewHandler(recipes.NewService(st, nil))

	id, err := st.Insert(ctx, &recipedb.Recipe{UserID: "u1", Name: "Chili", Slug: "chili"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = h.DeleteRecipe(auth.WithUserID(ctx, "u2"), &Request{ID: id})
	if !errors.Is(err, recipes.ErrNotFoundOrForbidden) {
		t.Errorf("expected ErrNotFoundOrForbidden for another user, got %v", err)
	}
	if _, err := st.Get(ctx, id); err != nil {
		t.Errorf("expected recipe to be kept, got %v", err)
	}

	if _, err := h.DeleteRecipe(auth.WithUserID(ctx, "u1"), &Request{ID: id}); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Get(ctx, id); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected recipe to be deleted, got %v", err)
	}

	_, err = h.DeleteRecipe(auth.WithUserID(ctx, "u1"), &Request{})
	if !errors.Is(err, recipes.ErrNotFoundOrForbidden) {
		t.Errorf("expected ErrNotFoundOrForbidden without id, got %v", err)
	}
}
