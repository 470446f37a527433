package csv

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/sourceeval"
)

// ReadLinks reads a link list with a header row naming a "url" column and,
// optionally, a "website" column. Column order and case do not matter and
// other columns are ignored. Rows keep file order.
func ReadLinks(r io.Reader) ([]sourceeval.Link, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "link list is empty")
	}
	if err != nil {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "read link list header: %v", err)
	}

	nameCol, urlCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff"))) {
		case "website":
			nameCol = i
		case "url":
			urlCol = i
		}
	}
	if urlCol < 0 {
		return nil, sourceeval.Errorf(sourceeval.EINVALID, "link list has no url column")
	}

	var links []sourceeval.Link
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return links, nil
		}
		if err != nil {
			return nil, sourceeval.Errorf(sourceeval.EINVALID, "read link list line %d: %v", line, err)
		}

		link := sourceeval.Link{URL: strings.TrimSpace(field(record, urlCol))}
		if nameCol >= 0 {
			link.Name = field(record, nameCol)
		}
		if err := link.Validate(); err != nil {
			return nil, sourceeval.Errorf(sourceeval.EINVALID, "link list line %d: %s", line, sourceeval.ErrorMessage(err))
		}
		links = append(links, link)
	}
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
