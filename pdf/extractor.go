// Package pdf extracts source links from PDF documents by reading each page's
// link annotations and the text printed inside their rectangles.
package pdf

import (
	"context"
	"math"
	"strings"

	"github.com/fwojciec/sourceeval"
	"github.com/ledongthuc/pdf"
)

// rectSlack widens annotation rectangles, in points, so that glyphs sitting on
// the rectangle's edge are still counted as anchor text.
const rectSlack = 1.0

// Ensure LinkExtractor implements sourceeval.LinkExtractor at compile time.
var _ sourceeval.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor reads URI link annotations from PDF pages.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns the URI links found on the pages in the range.
// Pages past the end of the document are skipped. Link annotations without a
// URI (internal GoTo links) are ignored.
func (e *LinkExtractor) ExtractLinks(ctx context.Context, path string, pages sourceeval.PageRange) (links []sourceeval.Link, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EDOCUMENT, "cannot open %q: %v", path, err)
	}
	defer f.Close()

	// The pdf package panics on malformed objects.
	defer func() {
		if rec := recover(); rec != nil {
			links = nil
			err = sourceeval.Errorf(sourceeval.EDOCUMENT, "corrupt document %q: %v", path, rec)
		}
	}()

	start := max(pages.Start, 0)
	end := min(pages.End, r.NumPage())
	for i := start; i < end; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		links = append(links, pageLinks(r.Page(i+1))...)
	}
	return links, nil
}

// pageLinks returns the URI links of a single page in annotation order.
func pageLinks(page pdf.Page) []sourceeval.Link {
	if page.V.IsNull() {
		return nil
	}
	annots := page.V.Key("Annots")
	if annots.Kind() != pdf.Array || annots.Len() == 0 {
		return nil
	}

	var texts []pdf.Text
	var loaded bool
	var links []sourceeval.Link
	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Key("Subtype").Name() != "Link" {
			continue
		}
		uri := strings.TrimSpace(annot.Key("A").Key("URI").RawString())
		if uri == "" {
			continue
		}
		if !loaded {
			texts = page.Content().Text
			loaded = true
		}
		link := sourceeval.Link{URL: uri}
		if r, ok := annotRect(annot.Key("Rect")); ok {
			link.Name = textInRect(texts, r)
		}
		links = append(links, link)
	}
	return links
}

type rect struct {
	llx, lly, urx, ury float64
}

// annotRect reads a /Rect array, normalizing corner order.
func annotRect(v pdf.Value) (rect, bool) {
	if v.Kind() != pdf.Array || v.Len() != 4 {
		return rect{}, false
	}
	x1, y1, x2, y2 := v.Index(0).Float64(), v.Index(1).Float64(), v.Index(2).Float64(), v.Index(3).Float64()
	return rect{
		llx: math.Min(x1, x2) - rectSlack,
		lly: math.Min(y1, y2) - rectSlack,
		urx: math.Max(x1, x2) + rectSlack,
		ury: math.Max(y1, y2) + rectSlack,
	}, true
}

// textInRect joins, in content stream order, the glyphs whose origin lies
// inside r. Returns "" when the rectangle holds no text.
func textInRect(texts []pdf.Text, r rect) string {
	var sb strings.Builder
	var prev *pdf.Text
	for i := range texts {
		t := &texts[i]
		cx := t.X + t.W/2
		if cx < r.llx || cx > r.urx || t.Y < r.lly || t.Y > r.ury {
			continue
		}
		if prev != nil && breaksWord(prev, t) {
			sb.WriteByte(' ')
		}
		sb.WriteString(t.S)
		prev = t
	}
	return strings.TrimSpace(sb.String())
}

// breaksWord reports whether a visual gap separates two consecutive glyphs:
// a change of line or horizontal space wider than a fifth of the font size.
func breaksWord(prev, next *pdf.Text) bool {
	if math.Abs(prev.Y-next.Y) > prev.FontSize/2 {
		return true
	}
	return next.X-(prev.X+prev.W) > prev.FontSize/5
}
