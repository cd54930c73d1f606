package export

import "fmt"

// Dataset is a table keyed by header. Missing cells render empty.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// Validate rejects a dataset without columns; format names the renderer in the error.
func (d Dataset) Validate(format string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", format)
	}
	return nil
}

// Records flattens the rows in header order, without the header row.
func (d Dataset) Records() [][]string {
	records := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		record := make([]string, len(d.Headers))
		for j, header := range d.Headers {
			record[j] = row[header]
		}
		records[i] = record
	}
	return records
}
