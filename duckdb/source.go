// Package duckdb loads report data from DuckDB databases. It turns query
// results into sheetengine table data so analytical datasets can feed
// templates directly, without an intermediate export step.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/gC4d/sheetengine"
)

// Config tunes the underlying DuckDB connection.
type Config struct {
	// Path is the database file. Empty opens an in-memory database.
	Path string
	// MemoryLimit caps DuckDB memory usage, e.g. "4GB". Empty leaves the
	// engine default.
	MemoryLimit string
	// Threads sets the worker thread count. Zero means auto-detect.
	Threads int
}

// Source is a DuckDB-backed data source for report tables.
type Source struct {
	db *sql.DB
}

// Open connects to a DuckDB database.
func Open(cfg Config) (*Source, error) {
	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, err
	}
	if cfg.MemoryLimit != "" {
		if _, err := db.Exec(fmt.Sprintf("SET memory_limit='%s'", cfg.MemoryLimit)); err != nil {
			db.Close()
			return nil, err
		}
	}
	if cfg.Threads > 0 {
		if _, err := db.Exec(fmt.Sprintf("SET threads=%d", cfg.Threads)); err != nil {
			db.Close()
			return nil, err
		}
	}
	return &Source{db: db}, nil
}

// Close releases the database connection.
func (s *Source) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for callers that need raw queries.
func (s *Source) DB() *sql.DB {
	return s.db
}

// QueryTable runs a query and collects the result set as table data, keyed
// by the query's column names.
func (s *Source) QueryTable(ctx context.Context, query string, args ...interface{}) (*sheetengine.TableData, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return sheetengine.TableDataFromSQL(rows)
}

// QueryData runs a query and wraps the result as single-sheet, single-table
// spreadsheet data bound to the given sheet and table names.
func (s *Source) QueryData(ctx context.Context, sheetName, tableName, query string, args ...interface{}) (*sheetengine.SpreadsheetData, error) {
	table, err := s.QueryTable(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	sheet := sheetengine.NewSheetData()
	sheet.SetTable(tableName, table)
	data := sheetengine.NewSpreadsheetData()
	data.SetSheet(sheetName, sheet)
	return data, nil
}

// ColumnsOf inspects a query's result shape without draining it, returning
// the column names in order. Useful for deriving table templates from
// ad-hoc queries.
func (s *Source) ColumnsOf(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM (%s) LIMIT 0", query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return rows.Columns()
}
