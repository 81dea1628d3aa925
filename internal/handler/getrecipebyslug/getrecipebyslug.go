// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipebyslug

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct {
	// Slug is the slug of the recipe, or its ID for recipes linked before they had slugs.
	Slug string `json:"slug"`
}

type Response struct {
	Recipe *recipes.View `json:"recipe"`
}

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *recipes.Service
}

func (h *Handler) GetRecipeBySlug(ctx context.Context, req *Request) (*Response, error) {
	r, err := h.recipes.GetBySlug(ctx, auth.UserID(ctx), req.Slug)
	if err != nil {
		return nil, fmt.Errorf("getrecipebyslug: %w", err)
	}
	return &Response{Recipe: r}, nil
}
