package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/wakostech/blog-backend/domain"
)

// MinContentLength is the minimum visible text length of a blog
// description once markup is stripped.
const MinContentLength = 10

var (
	richText = buildRichTextPolicy()
	strip    = bluemonday.StrictPolicy()
)

func buildRichTextPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "strong", "em", "u", "s", "blockquote", "code",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li", "span", "div", "pre",
	)
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowAttrs("src", "alt", "title", "width", "height", "class").OnElements("img")
	p.AllowStandardURLs()
	p.AllowImages()
	return p
}

// RichText strips disallowed markup from user-supplied HTML.
func RichText(html string) string {
	return richText.Sanitize(html)
}

// Description sanitizes a blog description. Returns ErrBadParamInput when
// the remaining visible text is too short to be a real post.
func Description(html string) (string, error) {
	clean := richText.Sanitize(html)
	text := strings.TrimSpace(strip.Sanitize(clean))
	if len([]rune(text)) < MinContentLength {
		return "", domain.ErrBadParamInput
	}
	return clean, nil
}
