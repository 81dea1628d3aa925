// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// UploadURLExpiry is how long an upload URL can be used.
const UploadURLExpiry = 15 * time.Minute

var _ Blobs = (*IO)(nil)

// IO stores blobs in a Cloud Storage bucket. The handle of a blob is its object path, and
// the bucket is expected to be publicly readable.
type IO struct {
	storage *storage.Client
	bucket  string
}

func NewIO(storage *storage.Client, bucket string) *IO {
	return &IO{
		storage: storage,
		bucket:  bucket,
	}
}

func (f *IO) Store(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := f.storage.Bucket(f.bucket).Object(path).NewWriter(ctx)
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("file: writing file: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("file: closing writer: %w", err)
	}
	return path, nil
}

func (f *IO) Read(ctx context.Context, handle string) ([]byte, string, error) {
	r, err := f.storage.Bucket(f.bucket).Object(handle).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("file: opening %s: %w", handle, err)
	}
	defer func() {
		_ = r.Close()
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("file: reading %s: %w", handle, err)
	}
	return data, r.Attrs.ContentType, nil
}

func (f *IO) URL(handle string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", f.bucket, handle)
}

func (f *IO) Delete(ctx context.Context, handle string) error {
	err := f.storage.Bucket(f.bucket).Object(handle).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("file: deleting %s: %w", handle, err)
	}
	return nil
}

// UploadURL returns a V4 signed URL for uploading a photo, valid for UploadURLExpiry.
func (f *IO) UploadURL(_ context.Context, userID string) (string, string, error) {
	handle := UserPrefix(userID) + "uploads/" + uuid.NewString()
	url, err := f.storage.Bucket(f.bucket).SignedURL(handle, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodPut,
		Expires: time.Now().Add(UploadURLExpiry),
	})
	if err != nil {
		return "", "", fmt.Errorf("file: signing upload URL: %w", err)
	}
	return url, handle, nil
}
