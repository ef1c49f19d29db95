package assets

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrColumnNotFound is returned when a CSV header lacks a named column
var ErrColumnNotFound = errors.New("column not found")

// record is one CSV data row with its 1-based line number
type record struct {
	line   int
	fields []string
}

// table is a CSV file read whole
type table struct {
	header  []string
	records []record
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := &table{}
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}

		if t.header == nil {
			if len(fields) > 0 {
				fields[0] = strings.TrimPrefix(fields[0], "\ufeff")
			}
			t.header = trimAll(fields)
			continue
		}

		line, _ := reader.FieldPos(0)
		t.records = append(t.records, record{line: line, fields: trimAll(fields)})
	}

	return t, nil
}

// column returns the index of the last header cell with the given name
func (t *table) column(name string) (int, error) {
	for i := len(t.header) - 1; i >= 0; i-- {
		if t.header[i] == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// cell returns the field at index i, or "" for short rows
func (r record) cell(i int) string {
	if i < 0 || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

func trimAll(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}
