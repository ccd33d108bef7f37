package recipe

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// StripHTML drops markup from instructions, keeping text content with
// entities decoded. Block-level boundaries become line breaks.
func StripHTML(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				b.Write(z.Raw())
			}
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if blockTags[string(name)] && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
				b.WriteByte('\n')
			}
		}
	}
}

var blockTags = map[string]bool{
	"p": true, "li": true, "ol": true, "ul": true, "br": true, "div": true,
}

// MaxCloseMatches bounds the list shown when no recipe uses only the given ingredients.
const MaxCloseMatches = 10

// SelectMatches picks what the results view shows: recipes missing no
// ingredient when there are any, otherwise the first MaxCloseMatches results.
// Recipes for which hide returns true are dropped first. The second result is
// true when the returned recipes are all exact matches.
func SelectMatches(found []Summary, hide func(id int) bool) ([]Summary, bool) {
	visible := make([]Summary, 0, len(found))
	for _, r := range found {
		if hide != nil && hide(r.ID) {
			continue
		}
		visible = append(visible, r)
	}

	exact := make([]Summary, 0, len(visible))
	for _, r := range visible {
		if r.MissesNothing() {
			exact = append(exact, r)
		}
	}
	if len(exact) > 0 {
		return exact, true
	}

	if len(visible) > MaxCloseMatches {
		visible = visible[:MaxCloseMatches]
	}
	return visible, len(visible) == 0
}
