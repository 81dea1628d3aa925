// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package recipes

import (
	"strings"

	"github.com/curioswitch/recipebox/internal/recipedb"
	"github.com/curioswitch/recipebox/internal/slug"
)

// ValidationError is returned when the content of a recipe is invalid.
type ValidationError struct {
	// Field is the JSON name of the invalid field.
	Field string

	// Reason describes what is wrong with the field.
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Reason
}

// Input is the editable content of a recipe.
type Input struct {
	Name         string            `json:"name"`
	Source       string            `json:"source"`
	Description  string            `json:"description"`
	Ingredients  string            `json:"ingredients"`
	Instructions string            `json:"instructions"`
	Category     recipedb.Category `json:"category,omitempty"`
	Tags         []string          `json:"tags,omitempty"`
	ImageRef     string            `json:"imageRef,omitempty"`

	// RemoveImage clears the image on update. Without it, an empty ImageRef keeps the
	// current image.
	RemoveImage bool `json:"removeImage,omitempty"`
}

// FromDraft returns the Input for saving a draft as is.
func FromDraft(d *recipedb.Draft) Input {
	return Input{
		Name:         d.Name,
		Source:       d.Source,
		Description:  d.Description,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		ImageRef:     d.ImageRef,
	}
}

func (in *Input) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Source = strings.TrimSpace(in.Source)
	in.Description = strings.TrimSpace(in.Description)
	in.Ingredients = strings.TrimSpace(in.Ingredients)
	in.Instructions = strings.TrimSpace(in.Instructions)
	in.ImageRef = strings.TrimSpace(in.ImageRef)

	for _, f := range []struct {
		name  string
		value string
	}{
		{"name", in.Name},
		{"description", in.Description},
		{"ingredients", in.Ingredients},
		{"instructions", in.Instructions},
	} {
		if slug.StripMarkup(f.value) == "" {
			return &ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	if !in.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "unknown category " + string(in.Category)}
	}

	var tags []string
	seen := map[string]bool{}
	for _, t := range in.Tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		tags = append(tags, t)
	}
	in.Tags = tags

	return nil
}

func (in *Input) apply(r *recipedb.Recipe) {
	r.Name = in.Name
	r.Source = in.Source
	r.Description = in.Description
	r.Ingredients = in.Ingredients
	r.Instructions = in.Instructions
	r.Category = in.Category
	r.Tags = in.Tags
	r.ImageRef = in.ImageRef
}
