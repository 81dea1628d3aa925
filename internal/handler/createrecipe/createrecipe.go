// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package createrecipe

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct {
	Recipe recipes.Input `json:"recipe"`
}

type Response struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
}

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *recipes.Service
}

func (h *Handler) CreateRecipe(ctx context.Context, req *Request) (*Response, error) {
	r, err := h.recipes.Create(ctx, auth.UserID(ctx), req.Recipe)
	if err != nil {
		return nil, fmt.Errorf("createrecipe: %w", err)
	}
	return &Response{
		ID:   r.ID,
		Slug: r.Slug,
	}, nil
}
