package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atelier/storefront/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// OutputFormat selects how a comparison is printed
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// placeholder marks a cell whose attribute is absent on that side
const placeholder = "-"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
)

// FormatComparison renders a comparison table in the requested format
func FormatComparison(rows domain.ComparisonTable, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case FormatTable:
		return renderTable(rows), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(rows domain.ComparisonTable) string {
	titleRows := make(map[int]bool)
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		if row.Kind == domain.RowTitle {
			titleRows[len(cells)] = true
		}
		cells = append(cells, []string{row.Category, cellText(row.Left, row.LeftItems), cellText(row.Right, row.RightItems)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Attribute", "Current", "Compared").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case titleRows[row]:
				return titleStyle
			default:
				return cellStyle
			}
		})

	return t.String()
}

// cellText renders one side of a row. Nested items go one per line.
func cellText(value *string, items []string) string {
	switch {
	case value != nil:
		return *value
	case len(items) > 0:
		return strings.Join(items, "\n")
	default:
		return placeholder
	}
}
