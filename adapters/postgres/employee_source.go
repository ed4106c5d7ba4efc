package postgres

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hrdash/adapters/excel"
	"hrdash/ports"
)

// employeeSource reads the employee table from PostgreSQL as raw string cells
type employeeSource struct {
	db    *sqlx.DB
	table string
}

// NewEmployeeSource creates a source over an existing connection
func NewEmployeeSource(db *sqlx.DB, table string) ports.TableSourcePort {
	return &employeeSource{db: db, table: table}
}

// Connect opens and pings a PostgreSQL connection
func Connect(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Describe implements ports.TableSourcePort
func (s *employeeSource) Describe() string {
	return "postgres table " + s.table
}

// ReadTable implements ports.TableSourcePort
func (s *employeeSource) ReadTable(ctx context.Context) (*excel.ExcelData, error) {
	start := time.Now()

	rows, err := s.db.QueryxContext(ctx, selectAllQuery(s.table))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", s.table, err)
	}

	data := &excel.ExcelData{Headers: headers}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(data.Rows)+1, s.table, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellString(v)
		}
		data.Rows = append(data.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.table, err)
	}
	if len(data.Rows) == 0 {
		return nil, fmt.Errorf("table %s has no rows", s.table)
	}

	log.Printf("[EmployeeSource] Read %d rows x %d columns from %s in %.2fms",
		len(data.Rows), len(headers), s.table, float64(time.Since(start).Nanoseconds())/1e6)
	return data, nil
}

// selectAllQuery quotes each part of a possibly schema-qualified table name
func selectAllQuery(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return "SELECT * FROM " + strings.Join(parts, ".")
}

// cellString renders a scanned driver value the way it would appear in a CSV export
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "Yes"
		}
		return "No"
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return fmt.Sprint(t)
	}
}
