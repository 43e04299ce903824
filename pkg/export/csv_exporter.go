package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"
)

// Column pairs a row key with its human-readable header label.
type Column struct {
	Key   string
	Label string
}

// Dataset defines tabular export content. Rows are keyed by Column.Key.
type Dataset struct {
	Columns []Column
	Rows    []map[string]string
}

// Filename builds the export file name pattern <name>_<YYYY-MM-DD>.<ext>.
func Filename(name, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), ext)
}

// CSVExporter renders Dataset records into RFC4180 CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset. The header row uses
// column labels; values containing commas, quotes or newlines are quoted
// by the underlying encoder.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Columns) == 0 {
		return nil, fmt.Errorf("csv requires at least one column")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)

	headers := make([]string, len(data.Columns))
	for i, col := range data.Columns {
		headers[i] = col.Label
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}

	for _, row := range data.Rows {
		record := make([]string, len(data.Columns))
		for i, col := range data.Columns {
			record[i] = row[col.Key]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
