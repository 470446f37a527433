package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/sourceeval"
	"github.com/fwojciec/sourceeval/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want []string
	}{
		{
			name: "paragraph",
			html: `<p>Ultime notizie dalla redazione.</p>`,
			want: []string{"Ultime notizie dalla redazione."},
		},
		{
			name: "headings",
			html: `<h1>Cronaca</h1><h2>Roma</h2>`,
			want: []string{"# Cronaca", "## Roma"},
		},
		{
			name: "absolute links",
			html: `<p>Leggi su <a href="https://www.ansa.it/sito/notizie/politica">ANSA</a>.</p>`,
			want: []string{"[ANSA](https://www.ansa.it/sito/notizie/politica)"},
		},
		{
			name: "unordered list of headlines",
			html: `<ul><li>Crisi di governo</li><li>Borsa in rialzo</li></ul>`,
			want: []string{"- Crisi di governo", "- Borsa in rialzo"},
		},
		{
			name: "ordered list",
			html: `<ol><li>Primo</li><li>Secondo</li></ol>`,
			want: []string{"1. Primo", "2. Secondo"},
		},
		{
			name: "emphasis",
			html: `<p><strong>Ultim'ora</strong> e <em>aggiornamenti</em></p>`,
			want: []string{"**Ultim'ora**", "*aggiornamenti*"},
		},
		{
			name: "strikethrough",
			html: `<p><del>smentita</del></p>`,
			want: []string{"~~smentita~~"},
		},
		{
			name: "table",
			html: `<table><thead><tr><th>Squadra</th><th>Punti</th></tr></thead><tbody><tr><td>Inter</td><td>30</td></tr></tbody></table>`,
			want: []string{"| Squadra | Punti |", "| Inter"},
		},
		{
			name: "blockquote",
			html: `<blockquote><p>Non ci fermeremo</p></blockquote>`,
			want: []string{"> Non ci fermeremo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			md, err := htmltomarkdown.NewConverter().Convert(tt.html)

			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, md, want)
			}
		})
	}
}

func TestConverter_Convert_ResolvesRelativeLinksWithDomain(t *testing.T) {
	t.Parallel()

	conv := htmltomarkdown.NewConverter(htmltomarkdown.WithDomain("https://www.repubblica.it"))

	md, err := conv.Convert(`<p><a href="/politica/">Politica</a></p>`)

	require.NoError(t, err)
	assert.Contains(t, md, "[Politica](https://www.repubblica.it/politica/)")
}

func TestConverter_Convert_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := htmltomarkdown.NewConverter().Convert(" \n ")

	require.Error(t, err)
	assert.Equal(t, sourceeval.EINVALID, sourceeval.ErrorCode(err))
}
