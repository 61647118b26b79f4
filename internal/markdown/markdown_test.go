package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	r := New()

	t.Run("basic markdown", func(t *testing.T) {
		html, err := r.Render("Shipped **dark mode** and ~~light mode~~")
		require.NoError(t, err)
		assert.Contains(t, html, "<strong>dark mode</strong>")
		assert.Contains(t, html, "<del>light mode</del>")
	})

	t.Run("bare URLs linkified", func(t *testing.T) {
		html, err := r.Render("See https://example.com for details")
		require.NoError(t, err)
		assert.Contains(t, html, `<a href="https://example.com"`)
	})

	t.Run("script tags stripped", func(t *testing.T) {
		html, err := r.Render(`hello <script>alert(1)</script> world`)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, html, "hello")
	})

	t.Run("event handlers stripped", func(t *testing.T) {
		html, err := r.Render(`<img src=x onerror=alert(1)>text`)
		require.NoError(t, err)
		assert.NotContains(t, html, "onerror")
	})

	t.Run("empty input", func(t *testing.T) {
		html, err := r.Render("")
		require.NoError(t, err)
		assert.Empty(t, strings.TrimSpace(html))
	})
}
