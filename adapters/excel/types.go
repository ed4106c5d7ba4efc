package excel

// ExcelData represents a raw tabular dataset read from a spreadsheet, CSV file
// or database: a header row and string cells. Every row has len(Headers) cells.
type ExcelData struct {
	Headers []string   // Column headers
	Rows    [][]string // Data rows
}

// ColumnIndex returns the position of a header, or -1
func (d *ExcelData) ColumnIndex(name string) int {
	for i, h := range d.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Records returns header followed by rows, the layout dataframe loaders expect
func (d *ExcelData) Records() [][]string {
	records := make([][]string, 0, len(d.Rows)+1)
	records = append(records, d.Headers)
	return append(records, d.Rows...)
}
