package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wakostech/blog-backend/domain"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World! 2024", "hello-world-2024"},
		{"Go   Concurrency Patterns", "go-concurrency-patterns"},
		{"ALL CAPS", "all-caps"},
		{"already-a-slug", "already-a-slug"},
		{"dashes --- everywhere", "dashes-everywhere"},
		{"café au lait", "caf-au-lait"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, domain.Slugify(c.title), "title %q", c.title)
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("word ", 50) // 250 chars before slugging
	got := domain.Slugify(long)
	assert.LessOrEqual(t, len(got), domain.SlugMaxLength)
}

func TestReadingTimeOf(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}

	assert.Equal(t, int64(2), domain.ReadingTimeOf(words(400)))
	assert.Equal(t, int64(1), domain.ReadingTimeOf(words(199)))
	assert.Equal(t, int64(1), domain.ReadingTimeOf(words(200)))
	assert.Equal(t, int64(2), domain.ReadingTimeOf(words(201)))
	assert.Equal(t, int64(1), domain.ReadingTimeOf(""), "empty description still reads as one minute")
}

func TestExcerptOf(t *testing.T) {
	short := "a short description"
	assert.Equal(t, short+"...", domain.ExcerptOf(short))

	long := strings.Repeat("x", 300)
	got := domain.ExcerptOf(long)
	assert.Equal(t, strings.Repeat("x", domain.ExcerptLength)+"...", got)
}

func TestCategoryValid(t *testing.T) {
	for _, c := range domain.Categories {
		assert.True(t, c.Valid())
	}
	assert.False(t, domain.Category("gardening").Valid())
	assert.False(t, domain.Category("").Valid())
}

func TestOwnership(t *testing.T) {
	b := domain.Blog{User: domain.User{ID: 7}}
	assert.True(t, b.OwnedBy(7))
	assert.False(t, b.OwnedBy(8))

	parent := int64(3)
	c := domain.Comment{UserID: 7, ParentID: &parent}
	assert.True(t, c.OwnedBy(7))
	assert.False(t, c.OwnedBy(8))
	assert.False(t, c.TopLevel())
	assert.True(t, domain.Comment{UserID: 7}.TopLevel())
}
