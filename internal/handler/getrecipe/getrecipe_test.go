// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"context"
	"errors"
	"testing"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipedb"
	"github.com/curioswitch/recipebox/internal/recipes"
	"github.com/curioswitch/recipebox/internal/store"
)

func TestGetRecipe(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	h := NewHandler(recipes.NewService(st, nil))

	id, err := st.Insert(ctx, &recipedb.Recipe{UserID: "u1", Name: "Chili", Slug: "chili"})
	if err != nil {
		t.Fatal(err)
	}

	res, err := h.GetRecipe(auth.WithUserID(ctx, "u1"), &Request{ID: id})
	if err != nil {
		t.Fatal(err)
	}
	if res.Recipe.ID != id || res.Recipe.Name != "Chili" {
		t.Errorf("unexpected recipe %+v", res.Recipe)
	}

	for _, tc := range []struct {
		user string
		id   string
	}{
		{user: "u2", id: id},
		{user: "u1", id: ""},
		{user: "u1", id: "missing"},
	} {
		_, err := h.GetRecipe(auth.WithUserID(ctx, tc.user), &Request{ID: tc.id})
		if !errors.Is(err, recipes.ErrNotFoundOrForbidden) {
			t.Errorf("GetRecipe(%s, %q): expected ErrNotFoundOrForbidden, got %v", tc.user, tc.id, err)
		}
	}
}
