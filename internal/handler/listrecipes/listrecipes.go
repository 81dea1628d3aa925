// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package listrecipes

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct{}

type Response struct {
	// Recipes are the recipes of the user, newest first.
	Recipes []*recipes.View `json:"recipes"`
}

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *recipes.Service
}

func (h *Handler) ListRecipes(ctx context.Context, _ *Request) (*Response, error) {
	rs, err := h.recipes.List(ctx, auth.UserID(ctx))
	if err != nil {
		return nil, fmt.Errorf("listrecipes: %w", err)
	}
	if rs == nil {
		rs = []*recipes.View{}
	}
	return &Response{Recipes: rs}, nil
}
