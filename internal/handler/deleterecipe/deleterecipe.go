// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package deleterecipe

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct {
	ID string `json:"id"`
}

type Response struct{}

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *recipes.Service
}

func (h *Handler) DeleteRecipe(ctx context.Context, req *Request) (*Response, error) {
	if err := h.recipes.Remove(ctx, auth.UserID(ctx), req.ID); err != nil {
		return nil, fmt.Errorf("deleterecipe: %w", err)
	}
	return &Response{}, nil
}
