package commerce

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atelier/storefront/internal/domain"
	"github.com/tidwall/gjson"
)

// Members of an array element that name the element, checked in order
var itemKeyFields = []string{"feature", "name"}

// DecodeProductRecord decodes a product JSON document, keeping attribute order.
// Objects and arrays become nested values; anything other than a JSON object at the
// top level is rejected with domain.ErrMalformedInput.
func DecodeProductRecord(data []byte) (*domain.ProductRecord, error) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrMalformedInput)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object, got %s", domain.ErrMalformedInput, doc.Type)
	}

	record := domain.NewProductRecord()
	doc.ForEach(func(key, value gjson.Result) bool {
		record.Set(key.String(), decodeValue(value))
		return true
	})
	return record, nil
}

func decodeValue(v gjson.Result) domain.Value {
	switch {
	case v.IsObject():
		items := []domain.NestedItem{}
		v.ForEach(func(key, member gjson.Result) bool {
			items = append(items, decodeItem(key.String(), member))
			return true
		})
		return domain.NestedValue(items...)
	case v.IsArray():
		items := []domain.NestedItem{}
		for i, element := range v.Array() {
			items = append(items, decodeItem(arrayItemKey(i, element), element))
		}
		return domain.NestedValue(items...)
	default:
		return domain.ScalarValue(decodeScalar(v))
	}
}

// decodeItem turns one sub-item into a NestedItem. An object contributes its "value"
// member as the item value and its other scalar members as attributes.
func decodeItem(key string, v gjson.Result) domain.NestedItem {
	item := domain.NestedItem{Key: key, Value: domain.NullScalar()}

	if !v.IsObject() {
		item.Value = decodeScalar(v)
		return item
	}

	v.ForEach(func(k, member gjson.Result) bool {
		name := k.String()
		if name == "value" {
			item.Value = decodeScalar(member)
			return true
		}
		if member.IsObject() || member.IsArray() {
			return true
		}
		if item.Attributes == nil {
			item.Attributes = make(map[string]domain.Scalar)
		}
		item.Attributes[name] = decodeScalar(member)
		return true
	})
	return item
}

func arrayItemKey(i int, element gjson.Result) string {
	if element.IsObject() {
		for _, field := range itemKeyFields {
			if name := element.Get(field); name.Type == gjson.String && name.Str != "" {
				return name.Str
			}
		}
	}
	return strconv.Itoa(i)
}

// decodeScalar maps a JSON scalar to a domain scalar; containers map to null
func decodeScalar(v gjson.Result) domain.Scalar {
	switch v.Type {
	case gjson.String:
		return domain.StringScalar(v.Str)
	case gjson.Number:
		return domain.NumberScalar(v.Num)
	case gjson.True, gjson.False:
		return domain.BoolScalar(v.Bool())
	default:
		return domain.NullScalar()
	}
}

// DecodeRatings extracts the star histogram from a review metadata document.
// Counts may be decimal strings or numbers; entries that do not parse are skipped.
func DecodeRatings(data []byte) (map[int]int, error) {
	if len(data) == 0 || !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", domain.ErrMalformedInput)
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: expected a JSON object", domain.ErrMalformedInput)
	}

	counts := make(map[int]int)
	doc.Get("ratings").ForEach(func(key, value gjson.Result) bool {
		stars, err := strconv.Atoi(key.String())
		if err != nil {
			return true
		}
		count, ok := parseCount(value)
		if !ok {
			return true
		}
		counts[stars] += count
		return true
	})
	return counts, nil
}

// parseCount reads a histogram count. Strings are always base 10, so "010" is ten.
func parseCount(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.Str))
		return n, err == nil
	default:
		return 0, false
	}
}
