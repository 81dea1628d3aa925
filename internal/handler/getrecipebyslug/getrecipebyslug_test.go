// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipebyslug

import (
	"context"
	"errors"
	"testing"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/file"
	"github.com/curioswitch/recipebox/internal/recipes"
	"github.com/curioswitch/recipebox/internal/store"
)

func TestGetRecipeBySlug(t *testing.T) {
	blobs := file.NewMemory()
	svc := recipes.NewService(store.NewMemory(), blobs)
	h := NewHandler(svc)
	ctx := auth.WithUserID(context.Background(), "u1")

	image, err := blobs.Store(ctx, "users/u1/imports/chili.jpeg", "image/jpeg", []byte("img"))
	if err != nil {
		t.Fatal(err)
	}
	created, err := svc.Create(ctx, "u1", recipes.Input{
		Name:         "Chili",
		Description:  "Hot.",
		Ingredients:  "- beans",
		Instructions: "1. Simmer.",
		ImageRef:     image,
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := h.GetRecipeBySlug(ctx, &Request{Slug: "chili"})
	if err != nil {
		t.Fatal(err)
	}
	if res.Recipe.ID != created.ID || res.Recipe.ImageURL != blobs.URL(image) {
		t.Errorf("unexpected recipe %+v", res.Recipe)
	}

	other := auth.WithUserID(context.Background(), "u2")
	if _, err := h.GetRecipeBySlug(other, &Request{Slug: "chili"}); !errors.Is(err, recipes.ErrNotFoundOrForbidden) {
		t.Errorf("expected ErrNotFoundOrForbidden, got %v", err)
	}
}
