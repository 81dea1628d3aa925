// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package file

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var _ Blobs = (*Memory)(nil)

type blob struct {
	data        []byte
	contentType string
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		blobs: map[string]blob{},
	}
}

// Memory is Blobs kept in memory. It is safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string]blob
}

func (m *Memory) Store(_ context.Context, path string, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[path] = blob{data: slices.Clone(data), contentType: contentType}
	return path, nil
}

func (m *Memory) Read(_ context.Context, handle string) ([]byte, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[handle]
	if !ok {
		return nil, "", ErrNotFound
	}
	return slices.Clone(b.data), b.contentType, nil
}

func (m *Memory) URL(handle string) string {
	return "memory://blobs/" + handle
}

func (m *Memory) Delete(_ context.Context, handle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, handle)
	return nil
}

func (m *Memory) UploadURL(_ context.Context, userID string) (string, string, error) {
	handle := UserPrefix(userID) + "uploads/" + uuid.NewString()
	return "memory://upload/" + handle, handle, nil
}

// Handles returns the handles of all stored blobs, sorted.
func (m *Memory) Handles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	handles := make([]string, 0, len(m.blobs))
	for h := range m.blobs {
		handles = append(handles, h)
	}
	slices.Sort(handles)
	return handles
}
