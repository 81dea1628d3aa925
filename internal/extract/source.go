// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package extract

import (
	"fmt"
	"html"
	"net/url"
	"strings"
)

// LinkSource renders the source of an imported page as a link to it. The link text is
// name, or the host of pageURL when name is empty.
func LinkSource(name string, pageURL string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		if u, err := url.Parse(pageURL); err == nil {
			name = u.Hostname()
		}
	}
	if name == "" {
		name = pageURL
	}
	return fmt.Sprintf(`<p><a href="%s" target="_blank" rel="noopener noreferrer">%s</a></p>`,
		html.EscapeString(pageURL), html.EscapeString(name))
}
