// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package getrecipe

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct {
	ID string `json:"id"`
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

func (h *Handler) GetRecipe(ctx context.Context, req *Request) (*Response, error) {
	r, err := h.recipes.Get(ctx, auth.UserID(ctx), req.ID)
	if err != nil {
		return nil, fmt.Errorf("getrecipe: %w", err)
	}
	return &Response{Recipe: r}, nil
}
