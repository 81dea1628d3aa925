// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package htmltext reduces raw HTML pages to plain text suitable as model input.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// MaxTextLength is the maximum number of characters returned by Sanitize.
const MaxTextLength = 12000

// Elements whose content the tokenizer returns as raw text, dropped entirely.
var rawElements = map[string]bool{
	"script": true,
	"style":  true,
}

// Elements dropped along with their content once closed. The content of one left open is kept.
var sectionElements = map[string]bool{
	"nav":    true,
	"footer": true,
}

// Elements whose open and close tags separate lines.
var blockElements = map[string]bool{
	"br": true,
	"p":  true, "div": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "tr": true, "dt": true, "dd": true,
}

var entities = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
	"&#x27;", "'",
	"&#x2F;", "/",
)

var (
	horizontalSpaceRe = regexp.MustCompile(`[ \t]+`)
	blankLinesRe      = regexp.MustCompile(`\n\s*\n`)
)

// Sanitize converts raw HTML into readable plain text. Scripts, styles, navigation and
// footers are removed with their content, block-level tags become line breaks and all other
// markup is removed. The result never contains '<' and is at most MaxTextLength characters.
func Sanitize(raw string) string {
	var out strings.Builder
	var sections []*section

	write := func(s string) {
		if n := len(sections); n > 0 {
			sections[n-1].text.WriteString(s)
			return
		}
		out.WriteString(s)
	}

	z := html.NewTokenizer(strings.NewReader(raw))
	inRaw := false
tokens:
	for {
		tt := z.Next()
		if tt != html.TextToken {
			inRaw = false
		}
		switch tt {
		case html.ErrorToken:
			// Always io.EOF, the tokenizer accepts malformed markup.
			break tokens
		case html.TextToken:
			if !inRaw {
				write(entities.Replace(string(z.Raw())))
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			// Self-closing script and style still start raw text, and a self-closing nav
			// is still open, as in browsers.
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case rawElements[tag]:
				inRaw = true
			case sectionElements[tag]:
				sections = append(sections, &section{tag: tag})
			default:
				write(separator(tag))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			switch {
			case rawElements[tag]:
			case sectionElements[tag]:
				sections = closeSection(sections, tag)
			default:
				write(separator(tag))
			}
		case html.CommentToken, html.DoctypeToken:
			// Dropped.
		}
	}
	for _, sec := range sections {
		out.WriteString(sec.text.String())
	}

	text := strings.ReplaceAll(out.String(), "<", "")
	text = horizontalSpaceRe.ReplaceAllString(text, " ")
	text = blankLinesRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)
	return Truncate(text, MaxTextLength)
}

// section holds the text of an open nav or footer.
type section struct {
	tag  string
	text strings.Builder
}

// closeSection discards the innermost open section named tag along with any sections opened
// inside it. A close tag with no open section is ignored.
func closeSection(sections []*section, tag string) []*section {
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].tag == tag {
			return sections[:i]
		}
	}
	return sections
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func separator(tag string) string {
	if blockElements[tag] {
		return "\n"
	}
	return " "
}
