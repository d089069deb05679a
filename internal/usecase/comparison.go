package usecase

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atelier/storefront/internal/domain"
	"github.com/spf13/cast"
)

// nameCategory is the category rendered as the comparison's title row
const nameCategory = "name"

// UnionCategories returns every key of left and right exactly once.
// Name-like keys come first, then left's keys in order, then right-only keys in order.
func UnionCategories(left, right *domain.ProductRecord) []string {
	seen := make(map[string]bool, left.Len()+right.Len())
	var names, rest []string

	collect := func(keys []string) {
		for _, key := range keys {
			if seen[key] {
				continue
			}
			seen[key] = true
			if isNameCategory(key) {
				names = append(names, key)
			} else {
				rest = append(rest, key)
			}
		}
	}
	collect(left.Keys())
	collect(right.Keys())

	return append(names, rest...)
}

func isNameCategory(key string) bool {
	return strings.EqualFold(strings.TrimSpace(key), nameCategory)
}

// FormatValue renders a scalar for display. Null renders as the empty string.
func FormatValue(s domain.Scalar) string {
	switch s.Kind {
	case domain.ScalarString:
		return s.Text
	case domain.ScalarNumber:
		return strconv.FormatFloat(s.Number, 'f', -1, 64)
	case domain.ScalarBool:
		return strconv.FormatBool(s.Bool)
	default:
		return ""
	}
}

// FormatLabel turns an attribute key into a category label, e.g. "BATTERY_life" -> "Battery life".
// Keys of any type are accepted and coerced to a string first.
func FormatLabel(key any) string {
	s, err := cast.ToStringE(key)
	if err != nil {
		s = fmt.Sprint(key)
	}
	s = strings.ReplaceAll(strings.ToLower(s), "_", " ")

	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}

// BuildRows reconciles two product records into one comparison row per category.
// Missing keys and shape mismatches degrade to placeholders; only a nil record is an error.
func BuildRows(left, right *domain.ProductRecord) (domain.ComparisonTable, error) {
	if left == nil {
		return nil, fmt.Errorf("%w: left record is nil", domain.ErrMalformedInput)
	}
	if right == nil {
		return nil, fmt.Errorf("%w: right record is nil", domain.ErrMalformedInput)
	}

	categories := UnionCategories(left, right)
	table := make(domain.ComparisonTable, 0, len(categories))

	for _, category := range categories {
		lv, lok := left.Get(category)
		rv, rok := right.Get(category)
		label := FormatLabel(category)

		switch {
		case isNameCategory(category):
			table = append(table, titleRow(label, lv, lok, rv, rok))
		case (lok && lv.IsNested()) || (rok && rv.IsNested()):
			table = append(table, nestedRow(label, lv, lok, rv, rok))
		default:
			table = append(table, domain.ComparisonRow{
				Category: label,
				Kind:     domain.RowScalar,
				Left:     scalarCell(lv, lok),
				Right:    scalarCell(rv, rok),
			})
		}
	}

	return table, nil
}

func titleRow(label string, lv domain.Value, lok bool, rv domain.Value, rok bool) domain.ComparisonRow {
	title := func(v domain.Value, ok bool) *string {
		if !ok {
			return nil
		}
		s := fmt.Sprintf("%s: %s", label, titleText(v))
		return &s
	}

	return domain.ComparisonRow{
		Category: label,
		Kind:     domain.RowTitle,
		Left:     title(lv, lok),
		Right:    title(rv, rok),
	}
}

// titleText renders a name value; a nested name joins its item values
func titleText(v domain.Value) string {
	if !v.IsNested() {
		return FormatValue(v.Scalar)
	}
	parts := make([]string, len(v.Nested))
	for i, item := range v.Nested {
		parts[i] = FormatValue(item.Value)
	}
	return strings.Join(parts, ", ")
}

// nestedRow aligns sub-items by position. Nested sides are padded with "" to the longer
// list; an absent side gets an empty list and a scalar side keeps its own text.
func nestedRow(label string, lv domain.Value, lok bool, rv domain.Value, rok bool) domain.ComparisonRow {
	width := 0
	if lok && lv.IsNested() {
		width = len(lv.Nested)
	}
	if rok && rv.IsNested() && len(rv.Nested) > width {
		width = len(rv.Nested)
	}

	row := domain.ComparisonRow{Category: label, Kind: domain.RowNestedList}
	row.Left, row.LeftItems = nestedCell(lv, lok, width)
	row.Right, row.RightItems = nestedCell(rv, rok, width)
	return row
}

func nestedCell(v domain.Value, ok bool, width int) (*string, []string) {
	if !ok {
		return nil, []string{}
	}
	if !v.IsNested() {
		return scalarCell(v, ok), []string{}
	}

	items := make([]string, width)
	for i, item := range v.Nested {
		items[i] = FormatValue(item.Value)
	}
	return nil, items
}

func scalarCell(v domain.Value, ok bool) *string {
	if !ok || v.IsNested() {
		return nil
	}
	s := FormatValue(v.Scalar)
	return &s
}
