// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package file stores recipe images.
package file

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when reading a blob that does not exist.
var ErrNotFound = errors.New("file: blob not found")

// Blobs stores binary content such as recipe images. A handle identifies a stored blob.
type Blobs interface {
	// Store saves data at path, returning its handle.
	Store(ctx context.Context, path string, contentType string, data []byte) (string, error)

	// Read returns the content and content type of a blob.
	Read(ctx context.Context, handle string) ([]byte, string, error)

	// URL returns a URL for displaying the blob.
	URL(handle string) string

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, handle string) error

	// UploadURL returns a URL a client can PUT a new blob to for userID, and the handle the
	// blob will have.
	UploadURL(ctx context.Context, userID string) (string, string, error)
}

// UserPrefix is the prefix of all blobs belonging to userID.
func UserPrefix(userID string) string {
	return "users/" + userID + "/"
}

// OwnedBy returns whether handle is in the namespace of userID.
func OwnedBy(handle string, userID string) bool {
	if userID == "" || strings.Contains(handle, "..") {
		return false
	}
	return strings.HasPrefix(handle, UserPrefix(userID))
}
