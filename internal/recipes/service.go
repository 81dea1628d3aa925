// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package recipes manages the saved recipes of users.
package recipes

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/curioswitch/recipebox/internal/file"
	"github.com/curioswitch/recipebox/internal/recipedb"
	"github.com/curioswitch/recipebox/internal/slug"
	"github.com/curioswitch/recipebox/internal/store"
)

// ErrNotFoundOrForbidden is returned for recipes that do not exist or belong to another user.
// The two cases are not distinguished so recipe IDs of other users are not revealed.
var ErrNotFoundOrForbidden = errors.New("recipe not found or access denied")

// View is a recipe as returned to its owner.
type View struct {
	recipedb.Recipe

	// ImageURL is the display URL of the image, if any.
	ImageURL string `json:"imageUrl,omitempty"`
}

// NewService returns a Service. blobs may be nil when recipes have no stored images.
func NewService(store store.Store, blobs file.Blobs) *Service {
	return &Service{
		store: store,
		blobs: blobs,
		slugs: slug.NewAllocator(store),
		now:   time.Now,
	}
}

// Service creates, edits and reads recipes on behalf of a user.
type Service struct {
	store store.Store
	blobs file.Blobs
	slugs *slug.Allocator
	now   func() time.Time
}

// Create saves a new recipe owned by userID.
func (s *Service) Create(ctx context.Context, userID string, in Input) (*View, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if in.ImageRef != "" && !file.OwnedBy(in.ImageRef, userID) {
		return nil, &ValidationError{Field: "imageRef", Reason: "image was not uploaded by this user"}
	}

	now := s.now()
	r := &recipedb.Recipe{
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.apply(r)

	if _, err := s.slugs.Assign(ctx, r.Name, "", func(ctx context.Context, sl string) error {
		r.Slug = sl
		if _, err := s.store.Insert(ctx, r); err != nil {
			return fmt.Errorf("recipes: inserting recipe: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.view(r), nil
}

// Update replaces the content of a recipe owned by userID. The slug is kept unless the
// name changed meaningfully. The image is kept unless in has a new one or RemoveImage is set,
// and replacing or removing it deletes the previous one.
func (s *Service) Update(ctx context.Context, userID string, id string, in Input) (*View, error) {
	existing, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.normalize(); err != nil {
		return nil, err
	}
	if in.ImageRef == "" && !in.RemoveImage {
		in.ImageRef = existing.ImageRef
	}
	if in.ImageRef != "" && in.ImageRef != existing.ImageRef && !file.OwnedBy(in.ImageRef, userID) {
		return nil, &ValidationError{Field: "imageRef", Reason: "image was not uploaded by this user"}
	}

	r := *existing
	in.apply(&r)
	r.UpdatedAt = s.now()

	patch := func(ctx context.Context) error {
		if err := s.store.Patch(ctx, &r); err != nil {
			return fmt.Errorf("recipes: updating recipe: %w", err)
		}
		return nil
	}
	if slug.NameChanged(existing.Name, r.Name) || existing.Slug == "" {
		if _, err := s.slugs.Assign(ctx, r.Name, r.ID, func(ctx context.Context, sl string) error {
			r.Slug = sl
			return patch(ctx)
		}); err != nil {
			return nil, err
		}
	} else if err := patch(ctx); err != nil {
		return nil, err
	}

	if existing.ImageRef != "" && existing.ImageRef != r.ImageRef {
		s.deleteReplacedImage(ctx, existing.ImageRef)
	}
	return s.view(&r), nil
}

// Remove deletes a recipe owned by userID along with its image.
func (s *Service) Remove(ctx context.Context, userID string, id string) error {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return err
	}
	if r.ImageRef != "" && s.blobs != nil {
		if err := s.blobs.Delete(ctx, r.ImageRef); err != nil {
			return fmt.Errorf("recipes: deleting image: %w", err)
		}
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("recipes: deleting recipe: %w", err)
	}
	return nil
}

// Get returns the recipe with id owned by userID.
func (s *Service) Get(ctx context.Context, userID string, id string) (*View, error) {
	r, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return s.view(r), nil
}

// GetBySlug returns the recipe with slug owned by userID. Recipes that have not been given
// a slug are linked by their ID, so an ID is also accepted.
func (s *Service) GetBySlug(ctx context.Context, userID string, sl string) (*View, error) {
	if sl == "" {
		return nil, ErrNotFoundOrForbidden
	}
	r, err := s.store.FindBySlug(ctx, sl)
	if errors.Is(err, store.ErrNotFound) {
		r, err = s.store.Get(ctx, sl)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("recipes: getting recipe by slug: %w", err)
	}
	if r.UserID != userID {
		return nil, ErrNotFoundOrForbidden
	}
	return s.view(r), nil
}

// List returns the recipes of userID, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]*View, error) {
	rs, err := s.store.ListByUser(ctx, userID, store.NewestFirst)
	if err != nil {
		return nil, fmt.Errorf("recipes: listing recipes: %w", err)
	}
	views := make([]*View, len(rs))
	for i, r := range rs {
		views[i] = s.view(r)
	}
	return views, nil
}

// BackfillSlugs gives a slug to every recipe without one, returning how many were updated.
func (s *Service) BackfillSlugs(ctx context.Context) (int, error) {
	rs, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("recipes: listing recipes: %w", err)
	}

	count := 0
	for _, r := range rs {
		if r.Slug != "" {
			continue
		}
		sl, err := s.slugs.Assign(ctx, r.Name, r.ID, func(ctx context.Context, sl string) error {
			r.Slug = sl
			if err := s.store.Patch(ctx, r); err != nil {
				return fmt.Errorf("recipes: updating recipe %s: %w", r.ID, err)
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		slog.DebugContext(ctx, "recipes: backfilled slug", "id", r.ID, "slug", sl)
		count++
	}
	return count, nil
}

// GenerateUploadURL returns a URL userID can upload a photo to, and the handle of the photo
// for importing it or attaching it to a recipe.
func (s *Service) GenerateUploadURL(ctx context.Context, userID string) (string, string, error) {
	if s.blobs == nil {
		return "", "", errors.New("recipes: uploads require blob storage")
	}
	url, handle, err := s.blobs.UploadURL(ctx, userID)
	if err != nil {
		return "", "", fmt.Errorf("recipes: generating upload URL: %w", err)
	}
	return url, handle, nil
}

func (s *Service) owned(ctx context.Context, userID string, id string) (*recipedb.Recipe, error) {
	r, err := s.store.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFoundOrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("recipes: getting recipe: %w", err)
	}
	if r.UserID != userID {
		return nil, ErrNotFoundOrForbidden
	}
	return r, nil
}

func (s *Service) view(r *recipedb.Recipe) *View {
	v := &View{Recipe: *r}
	if v.Slug == "" {
		v.Slug = v.ID
	}
	if r.ImageRef != "" && s.blobs != nil {
		v.ImageURL = s.blobs.URL(r.ImageRef)
	}
	return v
}

func (s *Service) deleteReplacedImage(ctx context.Context, handle string) {
	if s.blobs == nil {
		return
	}
	if err := s.blobs.Delete(ctx, handle); err != nil {
		slog.WarnContext(ctx, "recipes: deleting replaced image", "handle", handle, "error", err)
	}
}
