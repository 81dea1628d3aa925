// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/recipe", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "TestAgent/1.0" {
			http.Error(w, "bad user agent "+got, http.StatusBadRequest)
			return
		}
		if !strings.HasPrefix(r.Header.Get("Accept"), "text/html") {
			http.Error(w, "bad accept", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><h1>Chili</h1></body></html>"))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "image/*" {
			http.Error(w, "bad accept", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpegdata"))
	})
	mux.HandleFunc("/untyped", func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write([]byte("rawdata"))
	})
	mux.HandleFunc("/page.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/broken.jpg", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	mux.HandleFunc("/huge.jpg", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(bytes.Repeat([]byte{'x'}, MaxImageSize))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchPage(t *testing.T) {
	srv := newTestServer(t)
	f := New("TestAgent/1.0", srv.Client())
	ctx := context.Background()

	body, err := f.FetchPage(ctx, srv.URL+"/recipe")
	if err != nil {
		t.Fatalf("fetch page: %v", err)
	}
	if !strings.Contains(body, "<h1>Chili</h1>") {
		t.Errorf("unexpected body %q", body)
	}

	_, err = f.FetchPage(ctx, srv.URL+"/missing")
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", fetchErr.StatusCode)
	}
	if !strings.HasPrefix(fetchErr.Error(), "could not fetch the recipe URL") {
		t.Errorf("unexpected message %q", fetchErr.Error())
	}

	_, err = f.FetchPage(ctx, "http://127.0.0.1:1/unreachable")
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError for unreachable host, got %v", err)
	}
}

func TestFetchImage(t *testing.T) {
	srv := newTestServer(t)
	f := New("TestAgent/1.0", srv.Client())
	ctx := context.Background()

	img := f.FetchImage(ctx, srv.URL+"/photo.jpg")
	if img == nil {
		t.Fatal("expected image")
	}
	if string(img.Data) != "jpegdata" || img.ContentType != "image/jpeg" {
		t.Errorf("unexpected image %q %q", img.Data, img.ContentType)
	}

	img = f.FetchImage(ctx, srv.URL+"/untyped")
	if img == nil || img.ContentType != "image/jpeg" {
		t.Errorf("expected untyped response to be treated as jpeg, got %+v", img)
	}

	tests := []string{
		"/page.jpg",
		"/broken.jpg",
		"/huge.jpg",
		"/missing",
	}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			if img := f.FetchImage(ctx, srv.URL+path); img != nil {
				t.Errorf("expected no image, got %d bytes of %s", len(img.Data), img.ContentType)
			}
		})
	}

	if img := f.FetchImage(ctx, "http://127.0.0.1:1/unreachable.jpg"); img != nil {
		t.Error("expected no image for unreachable host")
	}
	if img := f.FetchImage(ctx, "::not a url"); img != nil {
		t.Error("expected no image for invalid URL")
	}
}

func TestImageContentType(t *testing.T) {
	tests := map[string]string{
		"":                          "image/jpeg",
		"image/png":                 "image/png",
		"IMAGE/WebP; charset=utf-8": "image/webp",
		"text/html":                 "text/html",
	}
	for header, want := range tests {
		if got := imageContentType(header); got != want {
			t.Errorf("imageContentType(%q) = %q, want %q", header, got, want)
		}
	}
}
