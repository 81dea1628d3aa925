// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package fetch retrieves recipe pages and their images over HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	// DefaultUserAgent identifies the importer to recipe sites.
	DefaultUserAgent = "Mozilla/5.0 (compatible; RecipeImporter/1.0; +https://recipebox.curioswitch.org)"

	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	// MaxPageSize is the largest page body read. Longer pages are truncated, the text
	// given to models is much shorter anyway.
	MaxPageSize = 5 << 20

	// MaxImageSize is the size at which an image is considered too large to import.
	MaxImageSize = 10 << 20

	pageAccept  = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	imageAccept = "image/*"
)

// FetchError is returned when a recipe page cannot be fetched.
type FetchError struct {
	// URL is the page that was requested.
	URL string

	// StatusCode is the HTTP status of the response, 0 if there was none.
	StatusCode int

	// Err is the transport error, if any.
	Err error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("could not fetch the recipe URL: %v", e.Err)
	}
	return fmt.Sprintf("could not fetch the recipe URL: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Image is a downloaded image.
type Image struct {
	// Data is the content of the image.
	Data []byte

	// ContentType is the media type of the image, e.g. image/jpeg.
	ContentType string
}

// Fetcher fetches pages and images. It is safe for concurrent use.
type Fetcher struct {
	userAgent string
	client    *http.Client
}

// New returns a Fetcher identifying itself with userAgent. If client is nil, a client
// with DefaultTimeout is used.
func New(userAgent string, client *http.Client) *Fetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{
		userAgent: userAgent,
		client:    client,
	}
}

// FetchPage returns the HTML of the page at pageURL. Any failure, including a non-2xx
// response, is returned as a *FetchError.
func (f *Fetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	// A new collector per page, collectors remember visited URLs.
	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.StdlibContext(ctx),
		colly.MaxBodySize(MaxPageSize),
		colly.ParseHTTPErrorResponse(),
	)
	if f.client.Transport != nil {
		c.WithTransport(f.client.Transport)
	}
	if f.client.Timeout > 0 {
		c.SetRequestTimeout(f.client.Timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", pageAccept)
	})

	var body []byte
	status := 0
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	if err := c.Visit(pageURL); err != nil {
		return "", &FetchError{URL: pageURL, StatusCode: status, Err: err}
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return "", &FetchError{URL: pageURL, StatusCode: status}
	}
	return string(body), nil
}

// FetchImage downloads the image at imageURL. Images are optional for an import, so any
// problem, including a response that is not an image or is too large, returns nil.
func (f *Fetcher) FetchImage(ctx context.Context, imageURL string) *Image {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		slog.DebugContext(ctx, "fetch: invalid image URL", "url", imageURL, "error", err)
		return nil
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", imageAccept)

	res, err := f.client.Do(req)
	if err != nil {
		slog.DebugContext(ctx, "fetch: requesting image", "url", imageURL, "error", err)
		return nil
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		slog.DebugContext(ctx, "fetch: unexpected image response", "url", imageURL, "status", res.StatusCode)
		return nil
	}

	contentType := imageContentType(res.Header.Get("Content-Type"))
	if !strings.HasPrefix(contentType, "image/") {
		slog.DebugContext(ctx, "fetch: not an image", "url", imageURL, "contentType", contentType)
		return nil
	}
	if res.ContentLength >= MaxImageSize {
		slog.DebugContext(ctx, "fetch: image too large", "url", imageURL, "size", res.ContentLength)
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(res.Body, MaxImageSize))
	if err != nil {
		slog.DebugContext(ctx, "fetch: reading image body", "url", imageURL, "error", err)
		return nil
	}
	if len(data) >= MaxImageSize {
		slog.DebugContext(ctx, "fetch: image too large", "url", imageURL)
		return nil
	}

	return &Image{
		Data:        data,
		ContentType: contentType,
	}
}

// imageContentType normalizes a Content-Type header, assuming JPEG when it is missing.
func imageContentType(header string) string {
	if header == "" {
		return "image/jpeg"
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(header))
	}
	return mediaType
}
