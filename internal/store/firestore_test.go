// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/curioswitch/recipebox/internal/recipedb"
)

func TestValidDocID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{id: "AbC123xyz", want: true},
		{id: "chili", want: true},
		{id: "", want: false},
		{id: ".", want: false},
		{id: "..", want: false},
		{id: "recipes/abc", want: false},
		{id: "../users", want: false},
		{id: "__reserved__", want: false},
		{id: "__half", want: true},
		{id: strings.Repeat("a", 1501), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			if got := validDocID(tc.id); got != tc.want {
				t.Errorf("validDocID(%q) = %v, want %v", tc.id, got, tc.want)
			}
		})
	}
}

// Invalid IDs are resolved without calling Firestore, so no client is needed.
func TestFirestoreInvalidID(t *testing.T) {
	ctx := context.Background()
	s := NewFirestore(nil)

	if _, err := s.Get(ctx, "a/b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get: expected ErrNotFound, got %v", err)
	}
	if err := s.Patch(ctx, &recipedb.Recipe{ID: "a/b"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Patch: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, ""); err != nil {
		t.Errorf("Delete: expected nil, got %v", err)
	}
	if _, err := s.FindBySlug(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindBySlug: expected ErrNotFound, got %v", err)
	}
}
