// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"github.com/curioswitch/go-curiostack/server"
	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/curioswitch/recipebox/internal/auth"
	"github.com/curioswitch/recipebox/internal/config"
	"github.com/curioswitch/recipebox/internal/extract"
	"github.com/curioswitch/recipebox/internal/fetch"
	"github.com/curioswitch/recipebox/internal/file"
	"github.com/curioswitch/recipebox/internal/handler/backfillslugs"
	"github.com/curioswitch/recipebox/internal/handler/createrecipe"
	"github.com/curioswitch/recipebox/internal/handler/deleterecipe"
	"github.com/curioswitch/recipebox/internal/handler/generateuploadurl"
	"github.com/curioswitch/recipebox/internal/handler/getrecipe"
	"github.com/curioswitch/recipebox/internal/handler/getrecipebyslug"
	"github.com/curioswitch/recipebox/internal/handler/importfromphoto"
	"github.com/curioswitch/recipebox/internal/handler/importfromurl"
	"github.com/curioswitch/recipebox/internal/handler/listrecipes"
	"github.com/curioswitch/recipebox/internal/handler/updaterecipe"
	"github.com/curioswitch/recipebox/internal/importer"
	"github.com/curioswitch/recipebox/internal/recipes"
	"github.com/curioswitch/recipebox/internal/rpc"
	"github.com/curioswitch/recipebox/internal/store"
)

//go:embed conf/*.yaml
var confFiles embed.FS

func main() {
	conf, _ := fs.Sub(confFiles, "conf")
	os.Exit(server.Main(&config.Config{}, conf, setupServer))
}

func setupServer(ctx context.Context, conf *config.Config, s *server.Server) error {
	mux := server.Mux(s)

	fbApp, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Google.Project})
	if err != nil {
		return fmt.Errorf("main: create firebase app: %w", err)
	}

	firestore, err := fbApp.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("main: create firestore client: %w", err)
	}
	defer func() {
		if err := firestore.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close firestore client", "error", err)
		}
	}()

	storage, err := storage.NewGRPCClient(ctx)
	if err != nil {
		return fmt.Errorf("main: create storage client: %w", err)
	}
	defer func() {
		if err := storage.Close(); err != nil {
			slog.ErrorContext(ctx, "main: close storage client", "error", err)
		}
	}()

	model, err := extract.NewModel(ctx, conf.AI.Provider, conf.AI.Model, conf.Google.Project)
	if err != nil {
		return fmt.Errorf("main: create model: %w", err)
	}

	isRPC := func(r *http.Request) bool {
		return strings.HasPrefix(r.URL.Path, "/"+rpc.ServiceName+"/")
	}
	if conf.Identity.Firebase {
		fbAuth, err := fbApp.Auth(ctx)
		if err != nil {
			return fmt.Errorf("main: create firebase auth client: %w", err)
		}
		mux.Use(middleware.Maybe(firebaseauth.NewMiddleware(fbAuth), isRPC))
	}
	mux.Use(middleware.Maybe(auth.NewMiddleware(conf.Identity.Firebase, conf.Identity.DefaultUserID), isRPC))

	blobs := file.NewIO(storage, conf.ImageBucket())
	fetcher := fetch.New(conf.Fetch.UserAgent, &http.Client{Timeout: conf.Fetch.Timeout})
	imp := importer.New(fetcher, extract.New(model), blobs)
	svc := recipes.NewService(store.NewFirestore(firestore), blobs)

	rpc.HandleUnary(mux, "ImportFromUrl", importfromurl.NewHandler(imp).ImportFromURL)
	rpc.HandleUnary(mux, "ImportFromPhoto", importfromphoto.NewHandler(imp).ImportFromPhoto)
	rpc.HandleUnary(mux, "CreateRecipe", createrecipe.NewHandler(svc).CreateRecipe)
	rpc.HandleUnary(mux, "UpdateRecipe", updaterecipe.NewHandler(svc).UpdateRecipe)
	rpc.HandleUnary(mux, "DeleteRecipe", deleterecipe.NewHandler(svc).DeleteRecipe)
	rpc.HandleUnary(mux, "GetRecipe", getrecipe.NewHandler(svc).GetRecipe)
	rpc.HandleUnary(mux, "GetRecipeBySlug", getrecipebyslug.NewHandler(svc).GetRecipeBySlug)
	rpc.HandleUnary(mux, "ListRecipes", listrecipes.NewHandler(svc).ListRecipes)
	rpc.HandleUnary(mux, "GenerateUploadUrl", generateuploadurl.NewHandler(svc).GenerateUploadURL)
	rpc.HandleUnary(mux, "BackfillSlugs", backfillslugs.NewHandler(svc).BackfillSlugs)

	if err := server.Start(ctx, s); err != nil {
		return fmt.Errorf("main: starting server: %w", err)
	}
	return nil
}
