package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atelier/storefront/internal/domain"
	"github.com/atelier/storefront/internal/infrastructure/commerce"
	"github.com/atelier/storefront/internal/usecase"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	excludeKeys  []string
)

var rootCmd = &cobra.Command{
	Use:   "compare <current.json> <compared.json>",
	Short: "Compare two product documents side by side",
	Long: `Compare reads two product JSON documents and prints one row per attribute
found in either product. Nested attributes such as feature lists are aligned
position by position.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.Flags().StringVarP(&outputFormat, "format", "f", "table", "Output format (table, json)")
	rootCmd.Flags().StringSliceVar(&excludeKeys, "exclude", nil, "Attribute keys to leave out of the comparison")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCompare(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(outputFormat))
	if format != FormatTable && format != FormatJSON {
		return fmt.Errorf("unknown output format %q", outputFormat)
	}

	current, err := readRecord(args[0])
	if err != nil {
		return err
	}
	compared, err := readRecord(args[1])
	if err != nil {
		return err
	}

	table, err := usecase.BuildRows(current.Without(excludeKeys...), compared.Without(excludeKeys...))
	if err != nil {
		return err
	}

	output, err := FormatComparison(table, format)
	if err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

// readRecord loads and decodes one product document
func readRecord(path string) (*domain.ProductRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	record, err := commerce.DecodeProductRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}
