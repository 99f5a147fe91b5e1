package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacnova/dashboard-server/internal/model"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{
			name: "valid object",
			data: `{"a": {"b": 1}}`,
		},
		{
			name: "empty object",
			data: `{}`,
		},
		{
			name:    "malformed json",
			data:    `{"a":`,
			wantErr: true,
		},
		{
			name:    "top-level array",
			data:    `[1, 2, 3]`,
			wantErr: true,
		},
		{
			name:    "top-level scalar",
			data:    `"hello"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse([]byte(tt.data))
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrInvalidDocument))
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, doc)
		})
	}
}

func TestSetPath_PreservesSiblings(t *testing.T) {
	doc, err := Parse([]byte(`{"a": {"b": "y", "c": "z"}}`))
	require.NoError(t, err)

	doc.SetPath("a.b", "x")

	b, ok := doc.Get("a.b")
	require.True(t, ok)
	assert.Equal(t, "x", b)

	c, ok := doc.Get("a.c")
	require.True(t, ok)
	assert.Equal(t, "z", c)
}

func TestSetPath_CreatesIntermediates(t *testing.T) {
	doc := Document{}

	doc.SetPath("content.hero.title", "New Title")

	v, ok := doc.Get("content.hero.title")
	require.True(t, ok)
	assert.Equal(t, "New Title", v)
}

func TestSetPath_ReplacesNonObjectIntermediate(t *testing.T) {
	doc, err := Parse([]byte(`{"a": "scalar"}`))
	require.NoError(t, err)

	doc.SetPath("a.b", 1)

	v, ok := doc.Get("a.b")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestApply(t *testing.T) {
	doc, err := Parse([]byte(`{"hero": {"title": "Old", "subtitle": "Keep"}, "footer": {"year": 2024}}`))
	require.NoError(t, err)

	doc.Apply(map[string]any{
		"hero.title":  "New",
		"footer.year": 2025,
	})

	title, _ := doc.Get("hero.title")
	assert.Equal(t, "New", title)
	subtitle, _ := doc.Get("hero.subtitle")
	assert.Equal(t, "Keep", subtitle)
	year, _ := doc.Get("footer.year")
	assert.Equal(t, 2025, year)
}

func TestGet_Missing(t *testing.T) {
	doc, err := Parse([]byte(`{"a": {"b": 1}}`))
	require.NoError(t, err)

	_, ok := doc.Get("a.x")
	assert.False(t, ok)

	_, ok = doc.Get("a.b.c")
	assert.False(t, ok)
}

func TestEncode_RoundTrip(t *testing.T) {
	doc, err := Parse([]byte(`{"a": {"b": "y", "c": "z"}}`))
	require.NoError(t, err)

	doc.SetPath("a.b", "x")

	data, err := doc.Encode()
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)

	b, _ := parsed.Get("a.b")
	assert.Equal(t, "x", b)
	c, _ := parsed.Get("a.c")
	assert.Equal(t, "z", c)
}
