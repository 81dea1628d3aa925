// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package htmltext

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "plain text",
			raw:  "Just   some\ttext",
			want: "Just some text",
		},
		{
			name: "drops script and style content",
			raw:  `<p>Before</p><script>var x = "<b>secret</b>";</script><style>.a { color: red }</style><p>After</p>`,
			want: "Before\n\nAfter",
		},
		{
			name: "drops nav and footer content",
			raw:  `<nav><a href="/">Home</a><nav>Inner</nav> Still nav</nav><h1>Pancakes</h1><footer>Copyright</footer>`,
			want: "Pancakes",
		},
		{
			name: "drops self-closing script",
			raw:  `<p>Chili</p><script src="a.js"/>var trackingSecret = 1;</script><p>Beans</p>`,
			want: "Chili\n\nBeans",
		},
		{
			name: "drops self-closing style",
			raw:  `<p>Chili</p><style/>.ad { color: red }</style><p>Beans</p>`,
			want: "Chili\n\nBeans",
		},
		{
			name: "drops self-closing nav",
			raw:  `<nav/>Home Shop Login</nav><h1>Chili</h1>`,
			want: "Chili",
		},
		{
			name: "keeps content of unclosed nav",
			raw:  `<nav><a href="/">Home</a><h1>Chili</h1><p>Beans</p>`,
			want: "Home \nChili\n\nBeans",
		},
		{
			name: "keeps content of unclosed footer without closed nav inside",
			raw:  `<footer>Contact<nav>Menu</nav><p>Soup</p>`,
			want: "Contact\nSoup",
		},
		{
			name: "block tags become line breaks",
			raw:  `<h2>Ingredients</h2><ul><li>2 cups flour</li><li>1 tsp salt</li></ul>`,
			want: "Ingredients\n\n2 cups flour\n\n1 tsp salt",
		},
		{
			name: "inline tags become spaces",
			raw:  `Mix <b>well</b><i>now</i>`,
			want: "Mix well now",
		},
		{
			name: "br",
			raw:  `line one<br>line two<br/>line three`,
			want: "line one\nline two\nline three",
		},
		{
			name: "entities",
			raw:  `Salt &amp; pepper&nbsp;to taste, &quot;fresh&quot; &#39;herbs&#x27; 1&#x2F;2 cup`,
			want: `Salt & pepper to taste, "fresh" 'herbs' 1/2 cup`,
		},
		{
			name: "angle brackets never survive",
			raw:  `Bake at &lt;200 degrees, a < b &gt; c`,
			want: "Bake at 200 degrees, a b > c",
		},
		{
			name: "comments and doctype",
			raw:  `<!DOCTYPE html><!-- note --><div>Soup</div>`,
			want: "Soup",
		},
		{
			name: "blank line runs collapse",
			raw:  "<div>a</div>\n\n \n\n<div>b</div>",
			want: "a\n\nb",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Sanitize(tc.raw); got != tc.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSanitizeNeverLeaksMarkup(t *testing.T) {
	inputs := []string{
		`<script>alert("x")</script><style>p{}</style><nav>menu</nav><footer>foot</footer>`,
		`<div><script type="text/javascript">document.write("<p>hi</p>")</script>ok</div>`,
		`<<<>>> <a <b <c`,
		`&lt;script&gt;alert(1)&lt;/script&gt;`,
		`<p>unterminated <b`,
		`<script src="a.js"/>alert("x")</script><style/>p{}</style><nav/>menu</nav><footer/>foot</footer>`,
	}
	for _, raw := range inputs {
		got := Sanitize(raw)
		if strings.Contains(got, "<") {
			t.Errorf("Sanitize(%q) = %q, contains '<'", raw, got)
		}
		for _, leaked := range []string{"alert(\"x\")", "p{}", "menu", "foot", "document.write"} {
			if strings.Contains(got, leaked) {
				t.Errorf("Sanitize(%q) = %q, leaked %q", raw, got, leaked)
			}
		}
	}
}

func TestSanitizeTruncates(t *testing.T) {
	raw := "<p>" + strings.Repeat("é", MaxTextLength+500) + "</p>"
	got := Sanitize(raw)
	if n := utf8.RuneCountInString(got); n != MaxTextLength {
		t.Errorf("got %d characters, want %d", n, MaxTextLength)
	}
	if !utf8.ValidString(got) {
		t.Error("truncation split a multi-byte character")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abc", 5); got != "abc" {
		t.Errorf("Truncate short = %q", got)
	}
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("Truncate long = %q", got)
	}
	if got := Truncate("日本語です", 2); got != "日本" {
		t.Errorf("Truncate multibyte = %q", got)
	}
}
