package books

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBooks(t *testing.T) {
	t.Run("titles only keep input order", func(t *testing.T) {
		body := `{"items":[{"volumeInfo":{"title":"Dune"}},{"volumeInfo":{"title":"Emma"}},{"volumeInfo":{"title":"Ulysses"}}]}`

		books, err := ExtractBooks(body)
		require.NoError(t, err)
		require.Len(t, books, 3)
		assert.Equal(t, "Dune", books[0].Title)
		assert.Equal(t, "Emma", books[1].Title)
		assert.Equal(t, "Ulysses", books[2].Title)
		for _, b := range books {
			assert.Empty(t, b.Authors)
			assert.False(t, b.HasAuthors())
		}
	})

	t.Run("authors each followed by newline", func(t *testing.T) {
		body := `{"items":[{"volumeInfo":{"title":"Good Omens","authors":["A","B"]}}]}`

		books, err := ExtractBooks(body)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "A\nB\n", books[0].Authors)
		assert.Equal(t, []string{"A", "B"}, books[0].AuthorList())
	})

	t.Run("empty authors array is title only", func(t *testing.T) {
		books, err := ExtractBooks(`{"items":[{"volumeInfo":{"title":"Anon","authors":[]}}]}`)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.False(t, books[0].HasAuthors())
		assert.Nil(t, books[0].AuthorList())
	})

	t.Run("empty body is absent", func(t *testing.T) {
		books, err := ExtractBooks("")
		assert.NoError(t, err)
		assert.Nil(t, books)

		books, err = ExtractBooks("  \t ")
		assert.NoError(t, err)
		assert.Nil(t, books)
	})

	t.Run("zero items is empty not absent", func(t *testing.T) {
		books, err := ExtractBooks(`{"kind":"books#volumes","totalItems":0,"items":[]}`)
		assert.NoError(t, err)
		require.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("missing items is empty with parse error", func(t *testing.T) {
		books, err := ExtractBooks(`{"kind":"books#volumes","totalItems":0}`)
		assert.ErrorIs(t, err, ErrParse)
		require.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("top level array", func(t *testing.T) {
		books, err := ExtractBooks(`[{"volumeInfo":{"title":"Dune"}}]`)
		assert.ErrorIs(t, err, ErrParse)
		require.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("syntax error", func(t *testing.T) {
		books, err := ExtractBooks(`{"items":[{"volumeInfo":{"title":"Dune"}}`)
		assert.ErrorIs(t, err, ErrParse)
		require.NotNil(t, books)
		assert.Empty(t, books)
	})

	t.Run("items not an array", func(t *testing.T) {
		books, err := ExtractBooks(`{"items":{"volumeInfo":{"title":"Dune"}}}`)
		assert.ErrorIs(t, err, ErrParse)
		assert.Empty(t, books)
	})

	t.Run("missing title keeps earlier books", func(t *testing.T) {
		body := `{"items":[
			{"volumeInfo":{"title":"First","authors":["X"]}},
			{"volumeInfo":{"authors":["Y"]}},
			{"volumeInfo":{"title":"Third"}}
		]}`

		books, err := ExtractBooks(body)
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "item 1")
		require.Len(t, books, 1)
		assert.Equal(t, "First", books[0].Title)
		assert.Equal(t, "X\n", books[0].Authors)
	})

	t.Run("malformed entries abort", func(t *testing.T) {
		cases := map[string]string{
			"title not a string":    `{"items":[{"volumeInfo":{"title":42}}]}`,
			"missing volumeInfo":    `{"items":[{"id":"abc"}]}`,
			"item not an object":    `{"items":["Dune"]}`,
			"authors not an array":  `{"items":[{"volumeInfo":{"title":"Dune","authors":"Herbert"}}]}`,
			"author not a string":   `{"items":[{"volumeInfo":{"title":"Dune","authors":[1]}}]}`,
			"author null":           `{"items":[{"volumeInfo":{"title":"Dune","authors":[null]}}]}`,
			"volumeInfo not object": `{"items":[{"volumeInfo":[]}]}`,
			"volumeInfo null":       `{"items":[{"volumeInfo":null}]}`,
			"title null":            `{"items":[{"volumeInfo":{"title":null}}]}`,
			"authors null":          `{"items":[{"volumeInfo":{"title":"Dune","authors":null}}]}`,
			"title in other case":   `{"items":[{"volumeInfo":{"Title":"Dune"}}]}`,
			"volumeInfo other case": `{"items":[{"VolumeInfo":{"TITLE":"Dune"}}]}`,
		}
		for name, body := range cases {
			t.Run(name, func(t *testing.T) {
				books, err := ExtractBooks(body)
				assert.ErrorIs(t, err, ErrParse)
				require.NotNil(t, books)
				assert.Empty(t, books)
			})
		}
	})

	t.Run("keys match by exact name", func(t *testing.T) {
		for _, body := range []string{
			`{"Items":[{"volumeInfo":{"title":"Dune"}}]}`,
			`{"ITEMS":[{"volumeInfo":{"title":"Dune"}}]}`,
			`{"items":null}`,
		} {
			books, err := ExtractBooks(body)
			assert.ErrorIs(t, err, ErrParse, body)
			require.NotNil(t, books, body)
			assert.Empty(t, books, body)
		}
	})

	t.Run("differently cased keys are ignored", func(t *testing.T) {
		body := `{"items":[{"volumeInfo":{"title":"A","Title":"B","Authors":["Z"]}}],"Items":[]}`

		books, err := ExtractBooks(body)
		require.NoError(t, err)
		require.Len(t, books, 1)
		assert.Equal(t, "A", books[0].Title)
		assert.False(t, books[0].HasAuthors())
	})

	t.Run("null authors stops after earlier books", func(t *testing.T) {
		body := `{"items":[{"volumeInfo":{"title":"First"}},{"volumeInfo":{"title":"Dune","authors":null}}]}`

		books, err := ExtractBooks(body)
		assert.ErrorIs(t, err, ErrParse)
		assert.Contains(t, err.Error(), "item 1")
		require.Len(t, books, 1)
		assert.Equal(t, "First", books[0].Title)
	})
}
