package goquery_test

import (
	"testing"

	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers main over body", func(t *testing.T) {
		t.Parallel()

		html := `<html lang="it"><head><title>Ultime notizie | Il Post</title></head><body>
			<nav><a href="/">Home</a><a href="/politica">Politica</a></nav>
			<main>
				<h2><a href="/2025/01/10/governo">Il governo approva la manovra</a></h2>
				<h2><a href="/2025/01/10/meteo">Allerta meteo in Liguria</a></h2>
				<script>track()</script>
			</main>
			<footer>Copyright Il Post</footer>
		</body></html>`

		result, err := goquery.NewContentExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Ultime notizie | Il Post", result.Title)
		assert.Equal(t, "it", result.Language)
		assert.Contains(t, result.ContentHTML, "Il governo approva la manovra")
		assert.Contains(t, result.ContentHTML, "Allerta meteo in Liguria")
		assert.NotContains(t, result.ContentHTML, "track()")
		assert.NotContains(t, result.ContentHTML, "Politica")
		assert.NotContains(t, result.ContentHTML, "Copyright")
	})

	t.Run("uses og:title when present", func(t *testing.T) {
		t.Parallel()

		html := `<html><head>
			<title>Cronaca - ANSA.it</title>
			<meta property="og:title" content="Cronaca">
		</head><body><div class="content"><p>Notizia</p></div></body></html>`

		result, err := goquery.NewContentExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Cronaca", result.Title)
		assert.Equal(t, "<p>Notizia</p>", result.ContentHTML)
	})

	t.Run("skips empty containers", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<main>   </main>
			<div id="content"><p>Notizia principale</p></div>
		</body></html>`

		result, err := goquery.NewContentExtractor().Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "<p>Notizia principale</p>", result.ContentHTML)
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Solo testo</p><aside>Pubblicità</aside></body></html>`

		result, err := goquery.NewContentExtractor().Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Solo testo")
		assert.NotContains(t, result.ContentHTML, "Pubblicità")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewContentExtractor().Extract("  \n")

		require.Error(t, err)
		assert.Equal(t, sourceeval.EINVALID, sourceeval.ErrorCode(err))
	})
}
