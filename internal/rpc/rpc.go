// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package rpc serves handlers as Connect unary procedures with JSON messages.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/recipebox/internal/extract"
	"github.com/curioswitch/recipebox/internal/fetch"
	"github.com/curioswitch/recipebox/internal/importer"
	"github.com/curioswitch/recipebox/internal/recipes"
)

// ServiceName is the name of the recipe service.
const ServiceName = "recipebox.RecipeService"

// Procedure returns the procedure path of method.
func Procedure(method string) string {
	return "/" + ServiceName + "/" + method
}

// jsonCodec marshals plain Go structs, the default Connect JSON codec only supports
// protobuf messages.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// HandleUnary serves target as the procedure for method on mux.
func HandleUnary[Req, Resp any](mux chi.Router, method string, target func(context.Context, *Req) (*Resp, error)) {
	procedure := Procedure(method)
	mux.Handle(procedure, connect.NewUnaryHandler(procedure,
		func(ctx context.Context, req *connect.Request[Req]) (*connect.Response[Resp], error) {
			res, err := target(ctx, req.Msg)
			if err != nil {
				return nil, Error(ctx, err)
			}
			return connect.NewResponse(res), nil
		},
		connect.WithCodec(jsonCodec{}),
	))
}

// Error converts an error from a handler to a Connect error. The message of a known error
// is returned to the client as is.
func Error(ctx context.Context, err error) error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	var fetchErr *fetch.FetchError
	var noRecipe *extract.NoRecipeFoundError
	var callErr *extract.AICallError
	var validationErr *recipes.ValidationError
	switch {
	case errors.As(err, &fetchErr):
		return connect.NewError(connect.CodeUnavailable, fetchErr)
	case errors.As(err, &noRecipe):
		return connect.NewError(connect.CodeNotFound, noRecipe)
	case errors.Is(err, extract.ErrUnparseableResponse):
		return connect.NewError(connect.CodeInternal, extract.ErrUnparseableResponse)
	case errors.As(err, &callErr):
		return connect.NewError(connect.CodeUnavailable, callErr)
	case errors.Is(err, recipes.ErrNotFoundOrForbidden):
		return connect.NewError(connect.CodeNotFound, recipes.ErrNotFoundOrForbidden)
	case errors.Is(err, importer.ErrPhotoNotFound):
		return connect.NewError(connect.CodeNotFound, importer.ErrPhotoNotFound)
	case errors.As(err, &validationErr):
		return connect.NewError(connect.CodeInvalidArgument, validationErr)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	}

	slog.ErrorContext(ctx, "rpc: unexpected error", "error", err)
	return connect.NewError(connect.CodeInternal, errors.New("internal error"))
}
