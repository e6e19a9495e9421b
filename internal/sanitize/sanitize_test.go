package sanitize_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wakostech/blog-backend/domain"
	"github.com/wakostech/blog-backend/internal/sanitize"
)

func TestRichTextStripsScripts(t *testing.T) {
	in := `<p>hello</p><script>alert("xss")</script>`
	out := sanitize.RichText(in)

	assert.Contains(t, out, "<p>hello</p>")
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "alert")
}

func TestRichTextStripsEventHandlers(t *testing.T) {
	in := `<p onclick="steal()">click me</p><img src="x.png" onerror="steal()">`
	out := sanitize.RichText(in)

	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, "onerror")
	assert.Contains(t, out, "click me")
}

func TestRichTextKeepsFormatting(t *testing.T) {
	in := `<h2>Heading</h2><p><strong>bold</strong> and <em>italic</em></p><ul><li>item</li></ul>`
	out := sanitize.RichText(in)

	assert.Contains(t, out, "<h2>Heading</h2>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<em>italic</em>")
	assert.Contains(t, out, "<li>item</li>")
}

func TestDescriptionRejectsShortContent(t *testing.T) {
	_, err := sanitize.Description("<p>hi</p>")
	assert.ErrorIs(t, err, domain.ErrBadParamInput)

	// markup alone carries no visible text
	_, err = sanitize.Description(`<script>alert("padding padding padding")</script>`)
	assert.ErrorIs(t, err, domain.ErrBadParamInput)
}

func TestDescriptionAcceptsRealContent(t *testing.T) {
	clean, err := sanitize.Description("<p>" + strings.Repeat("real content ", 5) + "</p>")
	require.NoError(t, err)
	assert.Contains(t, clean, "real content")
}
