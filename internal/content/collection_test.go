package content

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollections(t *testing.T) {
	cols, err := Collections()
	require.NoError(t, err)
	require.Len(t, cols, 3)

	names := make([]string, 0, len(cols))
	for _, c := range cols {
		names = append(names, c.Name)
		assert.Equal(t, "src/content/"+c.Name, c.Base)
		assert.Equal(t, ".mdx", c.Ext)
	}
	assert.Equal(t, []string{"docs", "changelog", "blog"}, names)
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("pages")
	assert.Error(t, err)
}

func TestDocsValidate(t *testing.T) {
	docs, err := Lookup("docs")
	require.NoError(t, err)

	data, err := docs.Validate(map[string]any{
		"title":       "Install",
		"description": "Install QuickSay on Windows",
		"order":       1,
		"draft":       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Install", data["title"])
	assert.Equal(t, json.Number("1"), data["order"])
	assert.NotContains(t, data, "draft")
}

func TestDocsValidateRejectsMissingOrder(t *testing.T) {
	docs, err := Lookup("docs")
	require.NoError(t, err)

	_, err = docs.Validate(map[string]any{
		"title":       "Install",
		"description": "Install QuickSay on Windows",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "docs")
}

func TestDocsValidateRejectsWrongType(t *testing.T) {
	docs, err := Lookup("docs")
	require.NoError(t, err)

	_, err = docs.Validate(map[string]any{
		"title":       "Install",
		"description": "Install QuickSay on Windows",
		"order":       "first",
	})
	assert.Error(t, err)
}

func TestBlogValidateAppliesDefaultAuthor(t *testing.T) {
	blog, err := Lookup("blog")
	require.NoError(t, err)

	data, err := blog.Validate(map[string]any{
		"title":       "Launch",
		"description": "QuickSay beta is open",
		"date":        "2025-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultBlogAuthor, data["author"])
	assert.NotContains(t, data, "readingTime")
}

func TestBlogValidateKeepsAuthor(t *testing.T) {
	blog, err := Lookup("blog")
	require.NoError(t, err)

	data, err := blog.Validate(map[string]any{
		"title":       "Launch",
		"description": "QuickSay beta is open",
		"date":        "2025-01-15",
		"author":      "Ada",
		"readingTime": "3 min",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", data["author"])
	assert.Equal(t, "3 min", data["readingTime"])
}

func TestChangelogValidate(t *testing.T) {
	changelog, err := Lookup("changelog")
	require.NoError(t, err)

	_, err = changelog.Validate(map[string]any{
		"version": "0.3.0",
		"date":    "2025-02-01",
		"summary": "Faster dictation",
	})
	require.NoError(t, err)

	_, err = changelog.Validate(map[string]any{"version": "0.3.0"})
	assert.Error(t, err)
}

func TestValidateDoesNotMutateInput(t *testing.T) {
	blog, err := Lookup("blog")
	require.NoError(t, err)

	fm := map[string]any{"title": "t", "description": "d", "date": "2025-01-01"}
	_, err = blog.Validate(fm)
	require.NoError(t, err)
	assert.NotContains(t, fm, "author")
}
