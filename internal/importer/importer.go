// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package importer turns a recipe web page or photo into a draft recipe.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/curioswitch/recipebox/internal/extract"
	"github.com/curioswitch/recipebox/internal/fetch"
	"github.com/curioswitch/recipebox/internal/file"
	"github.com/curioswitch/recipebox/internal/htmltext"
	"github.com/curioswitch/recipebox/internal/imagelocate"
	"github.com/curioswitch/recipebox/internal/prompts"
	"github.com/curioswitch/recipebox/internal/recipedb"
)

// ErrPhotoNotFound is returned when importing a photo that does not exist or was not uploaded
// by the importing user.
var ErrPhotoNotFound = errors.New("photo not found")

var errUnsupportedURL = errors.New("only http and https URLs are supported")

// PhotoSource is the source of a photo import when none was read from the photo.
const PhotoSource = "Photo scan"

// New returns an Importer. blobs may be nil, in which case images are located but never
// stored and photos cannot be imported.
func New(fetcher *fetch.Fetcher, extractor *extract.Extractor, blobs file.Blobs) *Importer {
	return &Importer{
		fetcher:   fetcher,
		extractor: extractor,
		blobs:     blobs,
	}
}

// Importer produces drafts from web pages and photos. Drafts are not saved, though the
// image of a draft may already be stored.
type Importer struct {
	fetcher   *fetch.Fetcher
	extractor *extract.Extractor
	blobs     file.Blobs
}

// ImportFromURL imports the recipe on the page at pageURL for userID.
//
// The page is fetched, then reduced to text and searched for an image concurrently. The
// image is stored while the text is extracted. Failing to get the image never fails the
// import.
func (i *Importer) ImportFromURL(ctx context.Context, userID string, pageURL string) (*recipedb.Draft, error) {
	if u, err := url.Parse(pageURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		err = &fetch.FetchError{URL: pageURL, Err: errUnsupportedURL}
		slog.InfoContext(ctx, "importer: import failed", "url", pageURL, "state", "fetching", "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "importer: fetching page", "url", pageURL)
	raw, err := i.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		slog.InfoContext(ctx, "importer: import failed", "url", pageURL, "state", "fetching", "error", err)
		return nil, err
	}

	slog.DebugContext(ctx, "importer: sanitizing page and locating image", "url", pageURL, "size", len(raw))
	var text, imageURL string
	var prep errgroup.Group
	prep.Go(func() error {
		text = htmltext.Sanitize(raw)
		return nil
	})
	prep.Go(func() error {
		imageURL = imagelocate.Locate(raw, pageURL)
		return nil
	})
	_ = prep.Wait()

	slog.DebugContext(ctx, "importer: extracting recipe", "url", pageURL,
		"textLength", len(text), "imageUrl", imageURL, "promptVersion", prompts.VerExtractRecipeFromPage)
	var res extract.Result
	var imageRef string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := i.extractor.FromText(gctx, text)
		if err != nil {
			return err
		}
		res = r
		if err := res.Err(); err != nil {
			return err
		}
		return requireComplete(ctx, res.Fields, prompts.NoRecipeFound)
	})
	if imageURL != "" {
		g.Go(func() error {
			imageRef = i.persistImage(gctx, userID, imageURL)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if imageRef != "" {
			i.discardImage(ctx, imageRef)
		}
		slog.InfoContext(ctx, "importer: import failed", "url", pageURL, "state", "extracting", "error", err)
		if res.Kind == extract.KindMalformed {
			slog.DebugContext(ctx, "importer: unparseable model response", "url", pageURL, "response", res.Raw)
		}
		return nil, err
	}

	fields := res.Fields
	draft := &recipedb.Draft{
		Name:         fields.Name,
		Source:       extract.LinkSource(fields.Source, pageURL),
		Description:  fields.Description,
		Ingredients:  fields.Ingredients,
		Instructions: fields.Instructions,
		ImageRef:     imageRef,
		ImageURL:     imageURL,
	}
	slog.DebugContext(ctx, "importer: import done", "url", pageURL, "name", draft.Name, "imageRef", imageRef)
	return draft, nil
}

// ImportFromPhoto imports the recipe in a photo previously uploaded by userID to handle.
// The photo becomes the image of the draft.
func (i *Importer) ImportFromPhoto(ctx context.Context, userID string, handle string) (*recipedb.Draft, error) {
	if i.blobs == nil {
		return nil, errors.New("importer: photo import requires blob storage")
	}
	if !file.OwnedBy(handle, userID) {
		slog.InfoContext(ctx, "importer: photo import failed", "handle", handle, "state", "reading", "error", "not owned by user")
		return nil, ErrPhotoNotFound
	}

	slog.DebugContext(ctx, "importer: reading photo", "handle", handle)
	data, contentType, err := i.blobs.Read(ctx, handle)
	if errors.Is(err, file.ErrNotFound) {
		slog.InfoContext(ctx, "importer: photo import failed", "handle", handle, "state", "reading", "error", err)
		return nil, ErrPhotoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("importer: reading photo: %w", err)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	slog.DebugContext(ctx, "importer: extracting recipe from photo", "handle", handle,
		"size", len(data), "promptVersion", prompts.VerExtractRecipeFromPhoto)
	res, err := i.extractor.FromImage(ctx, data, contentType)
	if err == nil {
		err = res.Err()
	}
	if err == nil {
		err = requireComplete(ctx, res.Fields, prompts.NoRecipeFoundInPhoto)
	}
	if err != nil {
		slog.InfoContext(ctx, "importer: photo import failed", "handle", handle, "state", "extracting", "error", err)
		return nil, err
	}

	fields := res.Fields
	if fields.Source == "" {
		fields.Source = PhotoSource
	}
	draft := &recipedb.Draft{
		Name:         fields.Name,
		Source:       fields.Source,
		Description:  fields.Description,
		Ingredients:  fields.Ingredients,
		Instructions: fields.Instructions,
		ImageRef:     handle,
		ImageURL:     i.blobs.URL(handle),
	}
	slog.DebugContext(ctx, "importer: photo import done", "handle", handle, "name", draft.Name)
	return draft, nil
}

// requireComplete fails an extraction missing any part of a recipe, a draft is never partial.
func requireComplete(ctx context.Context, fields recipedb.DraftFields, reason string) error {
	if fields.Complete() {
		return nil
	}
	slog.DebugContext(ctx, "importer: incomplete extraction", "name", fields.Name != "",
		"description", fields.Description != "", "ingredients", fields.Ingredients != "",
		"instructions", fields.Instructions != "")
	return &extract.NoRecipeFoundError{Reason: reason}
}

// persistImage downloads and stores the image at imageURL, returning its handle or "" if
// it could not be stored.
func (i *Importer) persistImage(ctx context.Context, userID string, imageURL string) string {
	if i.blobs == nil {
		return ""
	}

	img := i.fetcher.FetchImage(ctx, imageURL)
	if img == nil {
		slog.WarnContext(ctx, "importer: could not download image, continuing without", "imageUrl", imageURL)
		return ""
	}

	path := file.UserPrefix(userID) + "imports/" + uuid.NewString()
	if ext, ok := strings.CutPrefix(img.ContentType, "image/"); ok && ext != "" {
		path += "." + ext
	}
	handle, err := i.blobs.Store(ctx, path, img.ContentType, img.Data)
	if err != nil {
		slog.WarnContext(ctx, "importer: could not store image, continuing without", "imageUrl", imageURL, "error", err)
		return ""
	}
	return handle
}

// discardImage deletes an image stored for an import that failed.
func (i *Importer) discardImage(ctx context.Context, handle string) {
	if err := i.blobs.Delete(context.WithoutCancel(ctx), handle); err != nil {
		slog.WarnContext(ctx, "importer: deleting image of failed import", "handle", handle, "error", err)
	}
}
