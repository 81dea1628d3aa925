// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package slug derives unique, URL-safe identifiers for recipes from their names.
package slug

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/curioswitch/recipebox/internal/recipedb"
	"github.com/curioswitch/recipebox/internal/store"
)

// Placeholder is the base used for names without any usable characters.
const Placeholder = "recipe"

var (
	markupRe     = regexp.MustCompile(`<[^>]*>`)
	apostrophes  = strings.NewReplacer("'", "", "’", "", "‘", "")
	separatorsRe = regexp.MustCompile(`[^a-z0-9]+`)
)

// StripMarkup removes tags from a name and trims it.
func StripMarkup(name string) string {
	return strings.TrimSpace(markupRe.ReplaceAllString(name, ""))
}

// Base derives the slug base for a recipe name. Markup and diacritics are removed and
// any run of other characters becomes a single hyphen, so "Grandma's Apple Pié!"
// becomes "grandmas-apple-pie".
func Base(name string) string {
	s := strings.ToLower(markupRe.ReplaceAllString(name, ""))
	s, _, _ = transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn))), s)
	s = apostrophes.Replace(s)
	s = separatorsRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return Placeholder
	}
	return s
}

// NameChanged returns whether an edit from oldName to newName should re-derive the slug.
// Cosmetic edits to markup or surrounding whitespace keep the existing slug.
func NameChanged(oldName string, newName string) bool {
	return StripMarkup(oldName) != StripMarkup(newName)
}

// Finder looks up the recipe holding a slug, returning store.ErrNotFound when there is none.
type Finder interface {
	FindBySlug(ctx context.Context, slug string) (*recipedb.Recipe, error)
}

// NewAllocator returns an Allocator probing slugs with finder.
func NewAllocator(finder Finder) *Allocator {
	return &Allocator{
		finder: finder,
		locks:  map[string]*baseLock{},
	}
}

// Allocator allocates unique slugs. Slugs are unique across all users.
//
// Assign serializes allocations of the same base within this process. Separate processes
// sharing a store can still race between probing and writing and end up with duplicate
// slugs.
type Allocator struct {
	finder Finder

	mu    sync.Mutex
	locks map[string]*baseLock
}

type baseLock struct {
	mu   sync.Mutex
	refs int
}

// Allocate returns the first free slug among base, base-2, base-3, ... A slug held by the
// record excludeID counts as free.
func (a *Allocator) Allocate(ctx context.Context, base string, excludeID string) (string, error) {
	candidate := base
	for suffix := 2; ; suffix++ {
		existing, err := a.finder.FindBySlug(ctx, candidate)
		if errors.Is(err, store.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("slug: looking up %s: %w", candidate, err)
		}
		if excludeID != "" && existing.ID == excludeID {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(suffix)
	}
}

// Assign allocates a slug for name and passes it to write while no other Assign for the
// same base runs in this process. write is expected to persist the slug.
func (a *Allocator) Assign(ctx context.Context, name string, excludeID string, write func(ctx context.Context, slug string) error) (string, error) {
	base := Base(name)

	l := a.lock(base)
	defer a.unlock(base, l)

	s, err := a.Allocate(ctx, base, excludeID)
	if err != nil {
		return "", err
	}
	if err := write(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

func (a *Allocator) lock(base string) *baseLock {
	a.mu.Lock()
	l, ok := a.locks[base]
	if !ok {
		l = &baseLock{}
		a.locks[base] = l
	}
	l.refs++
	a.mu.Unlock()

	l.mu.Lock()
	return l
}

func (a *Allocator) unlock(base string, l *baseLock) {
	l.mu.Unlock()

	a.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(a.locks, base)
	}
	a.mu.Unlock()
}
