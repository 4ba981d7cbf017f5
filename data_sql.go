package sheetengine

import "database/sql"

// TableDataFromSQL drains a query result set into table data: one Row per
// result row, keyed by the query's column names. Byte-slice values are
// converted to strings so drivers returning raw bytes produce text cells.
// The caller retains ownership of rows and must still close it.
func TableDataFromSQL(rows *sql.Rows) (*TableData, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	data := NewTableData()
	values := make([]interface{}, len(cols))
	pointers := make([]interface{}, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		data.AddRow(row)
	}
	return data, rows.Err()
}
