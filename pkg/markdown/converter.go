// Package markdown renders the markdown used in message catalogs into the
// HTML subset Telegram accepts.
package markdown

import (
	"regexp"
	"strings"

	"github.com/russross/blackfriday/v2"
)

var (
	paragraphRe   = regexp.MustCompile(`<p>((?s).*?)</p>`)
	codeBlockRe   = regexp.MustCompile(`<pre><code(?: class="[^"]*")?>((?s).*?)</code></pre>`)
	anyTagRe      = regexp.MustCompile(`</?([a-zA-Z]+)(?:\s[^>]*)?>`)
	tagNameRe     = regexp.MustCompile(`</?([a-zA-Z]+)`)
	extraLinesRe  = regexp.MustCompile(`\n{3,}`)
	supportedTags = map[string]bool{
		"b": true, "i": true, "u": true, "s": true,
		"code": true, "pre": true, "a": true, "br": true,
	}
)

// ToTelegramHTML converts markdown text to Telegram-compatible HTML.
// Telegram supports only a handful of inline tags; everything else is
// stripped while keeping its content.
func ToTelegramHTML(src string) string {
	if src == "" {
		return ""
	}

	html := string(blackfriday.Run([]byte(src), blackfriday.WithExtensions(blackfriday.CommonExtensions)))

	html = paragraphRe.ReplaceAllString(html, "$1\n")
	html = codeBlockRe.ReplaceAllString(html, "<pre>$1</pre>")

	replacer := strings.NewReplacer(
		"<strong>", "<b>", "</strong>", "</b>",
		"<em>", "<i>", "</em>", "</i>",
		"<ul>", "", "</ul>", "",
		"<ol>", "", "</ol>", "",
		"<li>", "• ", "</li>", "\n",
	)
	html = replacer.Replace(html)

	html = anyTagRe.ReplaceAllStringFunc(html, func(match string) string {
		if m := tagNameRe.FindStringSubmatch(match); len(m) > 1 && supportedTags[strings.ToLower(m[1])] {
			return match
		}
		return ""
	})

	html = extraLinesRe.ReplaceAllString(html, "\n\n")
	return strings.TrimSpace(html)
}
