// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package importfromphoto

import (
	"context"
	"errors"
	"fmt"

	"connectrpc.com/connect"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/importer"
	"github.com/curioswitch/recipebox/internal/recipedb"
)

type Request struct {
	// ImageRef is the handle returned with the upload URL the photo was uploaded to.
	ImageRef string `json:"imageRef"`
}

type Response struct {
	Draft *recipedb.Draft `json:"draft"`
}

func NewHandler(importer *importer.Importer) *Handler {
	return &Handler{
		importer: importer,
	}
}

type Handler struct {
	importer *importer.Importer
}

func (h *Handler) ImportFromPhoto(ctx context.Context, req *Request) (*Response, error) {
	if req.ImageRef == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("imageRef is required"))
	}

	draft, err := h.importer.ImportFromPhoto(ctx, auth.UserID(ctx), req.ImageRef)
	if err != nil {
		return nil, fmt.Errorf("importfromphoto: %w", err)
	}
	return &Response{Draft: draft}, nil
}
