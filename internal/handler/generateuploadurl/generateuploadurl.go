// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package generateuploadurl

import (
	"context"
	"fmt"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/recipes"
)

type Request struct{}

type Response struct {
	// UploadURL is the URL to PUT the photo to.
	UploadURL string `json:"uploadUrl"`

	// ImageRef is the handle of the photo once uploaded.
	ImageRef string `json:"imageRef"`
}

func NewHandler(recipes *recipes.Service) *Handler {
	return &Handler{
		recipes: recipes,
	}
}

type Handler struct {
	recipes *recipes.Service
}

func (h *Handler) GenerateUploadURL(ctx context.Context, _ *Request) (*Response, error) {
	url, ref, err := h.recipes.GenerateUploadURL(ctx, auth.UserID(ctx))
	if err != nil {
		return nil, fmt.Errorf("generateuploadurl: %w", err)
	}
	return &Response{
		UploadURL: url,
		ImageRef:  ref,
	}, nil
}
