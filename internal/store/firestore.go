// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/curioswitch/recipebox/internal/recipedb"
)

const recipesCollection = "recipes"

var _ Store = (*Firestore)(nil)

// NewFirestore returns a Store saving recipes in the recipes collection.
func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{
		client: client,
	}
}

// Firestore stores recipes in Firestore, with the document ID matching the recipe ID.
type Firestore struct {
	client *firestore.Client
}

func (f *Firestore) Insert(ctx context.Context, r *recipedb.Recipe) (string, error) {
	doc := f.client.Collection(recipesCollection).NewDoc()
	r.ID = doc.ID
	if _, err := doc.Create(ctx, r); err != nil {
		return "", fmt.Errorf("store: creating recipe in firestore: %w", err)
	}
	return doc.ID, nil
}

func (f *Firestore) Patch(ctx context.Context, r *recipedb.Recipe) error {
	if !validDocID(r.ID) {
		return ErrNotFound
	}
	_, err := f.client.Collection(recipesCollection).Doc(r.ID).Update(ctx, []firestore.Update{
		{Path: "slug", Value: r.Slug},
		{Path: "name", Value: r.Name},
		{Path: "source", Value: r.Source},
		{Path: "description", Value: r.Description},
		{Path: "ingredients", Value: r.Ingredients},
		{Path: "instructions", Value: r.Instructions},
		{Path: "category", Value: orDelete(string(r.Category))},
		{Path: "tags", Value: tagsOrDelete(r.Tags)},
		{Path: "imageRef", Value: orDelete(r.ImageRef)},
		{Path: "updatedAt", Value: r.UpdatedAt},
	})
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: updating recipe %s in firestore: %w", r.ID, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, id string) error {
	if !validDocID(id) {
		return nil
	}
	if _, err := f.client.Collection(recipesCollection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("store: deleting recipe %s from firestore: %w", id, err)
	}
	return nil
}

func (f *Firestore) Get(ctx context.Context, id string) (*recipedb.Recipe, error) {
	if !validDocID(id) {
		return nil, ErrNotFound
	}
	doc, err := f.client.Collection(recipesCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: getting recipe %s from firestore: %w", id, err)
	}
	return toRecipe(doc)
}

func (f *Firestore) FindBySlug(ctx context.Context, slug string) (*recipedb.Recipe, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	doc, err := f.client.Collection(recipesCollection).Where("slug", "==", slug).Limit(1).Documents(ctx).Next()
	if errors.Is(err, iterator.Done) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: finding recipe by slug in firestore: %w", err)
	}
	return toRecipe(doc)
}

func (f *Firestore) ListByUser(ctx context.Context, userID string, order Order) ([]*recipedb.Recipe, error) {
	dir := firestore.Asc
	if order == NewestFirst {
		dir = firestore.Desc
	}
	docs, err := f.client.Collection(recipesCollection).
		Where("userId", "==", userID).
		OrderBy("createdAt", dir).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("store: listing recipes from firestore: %w", err)
	}
	return toRecipes(docs)
}

func (f *Firestore) ListAll(ctx context.Context) ([]*recipedb.Recipe, error) {
	docs, err := f.client.Collection(recipesCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("store: listing all recipes from firestore: %w", err)
	}
	return toRecipes(docs)
}

// validDocID returns whether id can name a document in the recipes collection. IDs come from
// users, e.g. in links, and cannot be assumed to have been generated by Firestore.
func validDocID(id string) bool {
	if id == "" || id == "." || id == ".." || len(id) > 1500 || strings.Contains(id, "/") {
		return false
	}
	return !(strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__"))
}

func toRecipe(doc *firestore.DocumentSnapshot) (*recipedb.Recipe, error) {
	var r recipedb.Recipe
	if err := doc.DataTo(&r); err != nil {
		return nil, fmt.Errorf("store: unmarshalling recipe: %w", err)
	}
	r.ID = doc.Ref.ID
	return &r, nil
}

func toRecipes(docs []*firestore.DocumentSnapshot) ([]*recipedb.Recipe, error) {
	recipes := make([]*recipedb.Recipe, len(docs))
	for i, doc := range docs {
		r, err := toRecipe(doc)
		if err != nil {
			return nil, err
		}
		recipes[i] = r
	}
	return recipes, nil
}

// orDelete removes optional fields instead of storing empty values, matching omitempty.
func orDelete(v string) any {
	if v == "" {
		return firestore.Delete
	}
	return v
}

func tagsOrDelete(tags []string) any {
	if len(tags) == 0 {
		return firestore.Delete
	}
	return tags
}
