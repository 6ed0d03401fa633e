// Package tabular reads uploaded spreadsheet-like files into a uniform
// header-plus-rows shape. Comma-delimited text and xlsx workbooks are the two
// accepted encodings; the decoder is chosen by filename extension with a
// content sniff as fallback.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Table is a parsed tabular file. Column names are normalised to lower case
// and each row maps column name to its cell value.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// Parse decodes the named upload into a Table.
func Parse(filename string, reader io.Reader) (*Table, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file is empty")
	}

	if isWorkbook(filename, data) {
		return parseWorkbook(data)
	}
	return parseCSV(data)
}

func isWorkbook(filename string, data []byte) bool {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return true
	}
	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return false
	}
	return mimetype.Detect(data).Is(xlsxMIME)
}

func parseCSV(data []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return fromRecords(records)
}

func parseWorkbook(data []byte) (*Table, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	return fromRecords(records)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("file has no header row")
	}

	columns := make([]string, 0, len(records[0]))
	for _, header := range records[0] {
		columns = append(columns, strings.ToLower(strings.TrimSpace(header)))
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		row := make(map[string]string, len(columns))
		for i, column := range columns {
			if column == "" {
				continue
			}
			if i < len(record) {
				row[column] = strings.TrimSpace(record[i])
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// MissingColumns returns the required column names absent from the table,
// sorted for stable error messages.
func (t *Table) MissingColumns(required ...string) []string {
	present := make(map[string]struct{}, len(t.Columns))
	for _, column := range t.Columns {
		present[column] = struct{}{}
	}

	var missing []string
	for _, want := range required {
		if _, ok := present[strings.ToLower(want)]; !ok {
			missing = append(missing, want)
		}
	}
	sort.Strings(missing)
	return missing
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	for _, column := range t.Columns {
		if column == strings.ToLower(name) {
			return true
		}
	}
	return false
}
