// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package backfillslugs

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct{}

type Response struct {
	// Backfilled is the number of recipes given a slug.
	Backfilled int `json:"backfilled"`
}

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *recipes.Service
}

func (h *Handler) BackfillSlugs(ctx context.Context, _ *Request) (*Response, error) {
	n, err := h.recipes.BackfillSlugs(ctx)
	if err != nil {
		return nil, fmt.Errorf("backfillslugs: %w", err)
	}
	return &Response{Backfilled: n}, nil
}
