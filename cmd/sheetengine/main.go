// Package main provides the sheetengine CLI: demo reports, schema
// rendering, writer format listing and direct DuckDB queries.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gC4d/sheetengine"
	"github.com/gC4d/sheetengine/duckdb"
)

var (
	outputPath string
	format     string
	autofit    bool
	dbPath     string
	sheetName  string
	tableName  string
	title      string
	period     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetengine",
		Short: "Render spreadsheet reports from templates and data",
		Long: `sheetengine merges declarative spreadsheet templates with data and
renders the result as XLSX or CSV.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Output file path")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "xlsx", "Output format: xlsx, csv")
	rootCmd.PersistentFlags().BoolVar(&autofit, "autofit", false, "Autofit column widths")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Render the sample income statement report",
		RunE:  runDemo,
	}
	demoCmd.Flags().StringVar(&title, "title", "Income Statement", "Report title")
	demoCmd.Flags().StringVar(&period, "period", "FY 2024", "Reporting period label")

	renderCmd := &cobra.Command{
		Use:   "render [schema.json]",
		Short: "Render a JSON workbook schema",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List registered output formats and their capabilities",
		RunE:  runFormats,
	}

	queryCmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Run a DuckDB query and render the result as a single table",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuery,
	}
	queryCmd.Flags().StringVar(&dbPath, "db", "", "DuckDB database path (default: in-memory)")
	queryCmd.Flags().StringVar(&sheetName, "sheet", "Query", "Sheet name for the result")
	queryCmd.Flags().StringVar(&tableName, "table", "result", "Table name for the result")

	rootCmd.AddCommand(demoCmd, renderCmd, formatsCmd, queryCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func defaultOutput(base string) string {
	if outputPath != "" {
		return outputPath
	}
	return base + "." + format
}

func runDemo(cmd *cobra.Command, args []string) error {
	report, err := sheetengine.NewIncomeStatementReport(title, period, nil)
	if err != nil {
		return err
	}

	path := defaultOutput("income_statement")
	stats, err := report.Export(sheetengine.SampleIncomeStatement(), path, sheetengine.RenderOptions{
		Format:  format,
		Autofit: autofit,
	})
	if err != nil {
		return fmt.Errorf("demo render failed: %w", err)
	}
	printStats(path, stats)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	schema, err := sheetengine.ParseSchema(raw)
	if err != nil {
		return err
	}
	builder, err := sheetengine.NewSchemaBuilder(schema, format, nil)
	if err != nil {
		return err
	}

	path := defaultOutput(strings.TrimSuffix(args[0], ".json"))
	stats, err := builder.Save(path)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	printStats(path, stats)
	return nil
}

func runFormats(cmd *cobra.Command, args []string) error {
	registry := sheetengine.NewWriterRegistry()
	for _, name := range registry.Formats() {
		caps, err := registry.Capabilities(name)
		if err != nil {
			return err
		}
		var features []string
		if caps.Formulas {
			features = append(features, "formulas")
		}
		if caps.Styling {
			features = append(features, "styling")
		}
		if caps.ConditionalFormatting {
			features = append(features, "conditional-formatting")
		}
		if caps.MultipleSheets {
			features = append(features, "multiple-sheets")
		}
		if len(features) == 0 {
			features = append(features, "values-only")
		}
		fmt.Printf("%-6s max %d x %d  %s\n", name, caps.MaxRows, caps.MaxCols, strings.Join(features, ", "))
	}
	return nil
}

func runQuery(cmd *cobra.Command, args []string) error {
	source, err := duckdb.Open(duckdb.Config{Path: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer source.Close()

	ctx := context.Background()
	names, err := source.ColumnsOf(ctx, args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	if len(names) == 0 {
		return fmt.Errorf("query returned no columns")
	}
	data, err := source.QueryData(ctx, sheetName, tableName, args[0])
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	columns := make([]sheetengine.ColumnDefinition, 0, len(names))
	for _, name := range names {
		columns = append(columns, sheetengine.ColumnDefinition{Key: name, Label: name})
	}

	tableTemplate, err := sheetengine.NewTableTemplate(sheetengine.TableTemplate{
		Name:    tableName,
		Columns: columns,
	})
	if err != nil {
		return err
	}
	sheetTemplate, err := sheetengine.NewSheetTemplate(sheetengine.SheetTemplate{
		Name:   sheetName,
		Tables: []*sheetengine.TableTemplate{tableTemplate},
	})
	if err != nil {
		return err
	}
	template, err := sheetengine.NewSpreadsheetTemplate(sheetengine.SpreadsheetTemplate{
		Sheets: []*sheetengine.SheetTemplate{sheetTemplate},
	})
	if err != nil {
		return err
	}

	engine := sheetengine.NewEngine(nil)
	path := defaultOutput("query")
	stats, err := engine.RenderFile(template, data, path, sheetengine.RenderOptions{
		Format:  format,
		Autofit: autofit,
	})
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	printStats(path, stats)
	return nil
}

func printStats(path string, stats *sheetengine.RenderStats) {
	fmt.Printf("wrote %s: %d sheet(s), %d table(s), %d row(s), %d cell(s) in %s\n",
		path, stats.SheetCount, stats.TableCount, stats.RowCount, stats.CellCount,
		stats.MergeTime+stats.RenderTime)
}
