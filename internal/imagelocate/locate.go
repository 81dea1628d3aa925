// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package imagelocate finds the photo that best represents the recipe on a web page.
package imagelocate

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MinContentImageWidth is the smallest declared width accepted for a content image.
const MinContentImageWidth = 200

// A strategy returns the raw URL of an image found in the page, or "" if it finds none.
type strategy func(doc *goquery.Document) string

// Tried in order, the first match wins.
var strategies = []strategy{
	openGraphImage,
	recipeSchemaImage,
	contentImage,
}

// Substrings of image URLs that indicate trackers, icons and other non-photos.
var excludedImageHints = []string{
	"1x1",
	"pixel",
	".svg",
	"icon",
	"logo",
	"avatar",
	"ad-",
	"data:image",
}

// Locate returns the absolute URL of the best recipe photo in raw, resolving relative URLs
// against baseURL, or "" if the page has no suitable image. The Open Graph image is preferred,
// then the image of a schema.org Recipe, then the first content image that does not look like
// an icon or tracker.
func Locate(raw string, baseURL string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return ""
	}
	for _, find := range strategies {
		if src := find(doc); src != "" {
			return resolve(src, baseURL)
		}
	}
	return ""
}

func openGraphImage(doc *goquery.Document) string {
	var src string
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("property", "")), "og:image") {
			return true
		}
		src = strings.TrimSpace(s.AttrOr("content", ""))
		return src == ""
	})
	return src
}

func recipeSchemaImage(doc *goquery.Document) string {
	var src string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "application/ld+json") {
			return true
		}
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			// Malformed blocks are common, keep looking in the others.
			return true
		}
		recipe := findRecipe(data)
		if recipe == nil {
			return true
		}
		src = strings.TrimSpace(schemaImageURL(recipe["image"]))
		return src == ""
	})
	return src
}

// findRecipe returns the schema.org Recipe object in a JSON-LD document, which may be the
// document itself, an element of a top-level array, or an element of an @graph.
func findRecipe(data any) map[string]any {
	switch data := data.(type) {
	case map[string]any:
		if isRecipe(data["@type"]) {
			return data
		}
		if graph, ok := data["@graph"]; ok {
			return findRecipe(graph)
		}
	case []any:
		for _, item := range data {
			if obj, ok := item.(map[string]any); ok && isRecipe(obj["@type"]) {
				return obj
			}
		}
	}
	return nil
}

func isRecipe(typ any) bool {
	switch typ := typ.(type) {
	case string:
		return typ == "Recipe"
	case []any:
		for _, t := range typ {
			if t == "Recipe" {
				return true
			}
		}
	}
	return false
}

// schemaImageURL reads a schema.org image property, which may be a URL, a list of images
// or an ImageObject.
func schemaImageURL(image any) string {
	switch image := image.(type) {
	case string:
		return image
	case []any:
		if len(image) > 0 {
			return schemaImageURL(image[0])
		}
	case map[string]any:
		if u, ok := image["url"].(string); ok {
			return u
		}
	}
	return ""
}

func contentImage(doc *goquery.Document) string {
	var src string
	doc.Find("img").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		candidate := strings.TrimSpace(s.AttrOr("src", ""))
		if candidate == "" || looksLikeNonPhoto(candidate) {
			return true
		}
		if width, ok := leadingInt(s.AttrOr("width", "")); ok && width < MinContentImageWidth {
			return true
		}
		src = candidate
		return false
	})
	return src
}

func looksLikeNonPhoto(src string) bool {
	src = strings.ToLower(src)
	for _, hint := range excludedImageHints {
		if strings.Contains(src, hint) {
			return true
		}
	}
	return false
}

// leadingInt parses the digits at the start of a dimension attribute such as "300" or "300px".
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// resolve makes ref absolute against base, returning ref unchanged if either does not parse.
func resolve(ref string, base string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
