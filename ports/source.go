package ports

import (
	"context"

	"hrdash/adapters/excel"
)

// TableSourcePort reads the raw employee table (header + string cells) from
// wherever it lives. Implementations do no typing or column pruning.
type TableSourcePort interface {
	ReadTable(ctx context.Context) (*excel.ExcelData, error)

	// Describe names the source for log lines and error messages
	Describe() string
}
