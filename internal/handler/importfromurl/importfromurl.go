// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package importfromurl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"connectrpc.com/connect"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/importer"
	"github.com/curioswitch/recipebox/internal/recipedb"
)

type Request struct {
	// URL is the page to import.
	URL string `json:"url"`
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

func (h *Handler) ImportFromURL(ctx context.Context, req *Request) (*Response, error) {
	pageURL := strings.TrimSpace(req.URL)
	if pageURL == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("url is required"))
	}

	draft, err := h.importer.ImportFromURL(ctx, auth.UserID(ctx), pageURL)
	if err != nil {
		return nil, fmt.Errorf("importfromurl: %w", err)
	}
	return &Response{Draft: draft}, nil
}
