// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updaterecipe

import (
	"context"
	"errors"
	"testing"

	"connectrpc.com/connect"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
	"github.com/curioswitch/recipebox/internal/store"
)

func chili() recipes.Input {
	return recipes.Input{
		Name:         "Chili",
		Description:  "Hot.",
		Ingredients:  "- beans",
		Instructions: "1. Simmer.",
	}
}

func TestUpdateRecipe(t *testing.T) {
	svc := recipes.NewService(store.NewMemory(), nil)
	h := NewHandler(svc)
	ctx := auth.WithUserID(context.Background(), "u1")

	created, err := svc.Create(ctx, "u1", chili())
	if err != nil {
		t.Fatal(err)
	}

	in := chili()
	in.Name = "Green Chili"
	res, err := h.UpdateRecipe(ctx, &Request{ID: created.ID, Recipe: in})
	if err != nil {
		t.Fatal(err)
	}
	if res.Slug != "green-chili" {
		t.Errorf("expected green-chili, got %s", res.Slug)
	}

	_, err = h.UpdateRecipe(auth.WithUserID(context.Background(), "u2"), &Request{ID: created.ID, Recipe: chili()})
	if !errors.Is(err, recipes.ErrNotFoundOrForbidden) {
		t.Errorf("expected ErrNotFoundOrForbidden for another user, got %v", err)
	}

	_, err = h.UpdateRecipe(ctx, &Request{Recipe: chili()})
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument without id, got %v", err)
	}
}
