// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package updaterecipe

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct {
	ID     string        `json:"id"`
	Recipe recipes.Input `json:"recipe"`
}

type Response struct {
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

func (h *Handler) UpdateRecipe(ctx context.Context, req *Request) (*Response, error) {
	if req.ID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}

	r, err := h.recipes.Update(ctx, auth.UserID(ctx), req.ID, req.Recipe)
	if err != nil {
		return nil, fmt.Errorf("updaterecipe: %w", err)
	}
	return &Response{
		Slug: r.Slug,
	}, nil
}
