package probe

import (
	"errors"
	"fmt"

	"github.com/fwojciec/sourceeval"
	"github.com/tidwall/gjson"
)

// ErrNoItems is returned when the engine extracted an empty collection.
var ErrNoItems = errors.New("no items extracted")

// Field is one extracted key/value pair of a news item.
type Field struct {
	Name  string
	Value string
}

// Item is a news item's fields in the order the engine produced them.
type Item []Field

// Items returns the records of the first top-level collection of res, in
// document order. The first member of the result object must be an array of
// objects; anything else is an error.
func Items(res *sourceeval.ScrapeResult) ([]Item, error) {
	if res == nil || !gjson.ValidBytes(res.JSON) {
		return nil, errors.New("result is not valid JSON")
	}

	root := gjson.ParseBytes(res.JSON)
	if !root.IsObject() {
		return nil, errors.New("result is not a JSON object")
	}

	var first gjson.Result
	var key string
	root.ForEach(func(k, v gjson.Result) bool {
		key, first = k.String(), v
		return false
	})
	if !first.Exists() {
		return nil, ErrNoItems
	}
	if !first.IsArray() {
		return nil, fmt.Errorf("collection %q is not an array", key)
	}

	var items []Item
	for i, el := range first.Array() {
		if !el.IsObject() {
			return nil, fmt.Errorf("collection %q: element %d is not an object", key, i)
		}
		var item Item
		el.ForEach(func(k, v gjson.Result) bool {
			item = append(item, Field{Name: k.String(), Value: v.String()})
			return true
		})
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return items, nil
}
