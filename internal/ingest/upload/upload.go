// Package upload parses ingestion file uploads (C header: spec.md §6).
// CSV is fully supported via stdlib encoding/csv with forward-filled IDs,
// grounded on original_source's CSV ingestion helpers; XLSX is sniffed
// via gabriel-vasile/mimetype and rejected with ErrUnsupportedFormat —
// no XLSX library exists anywhere in the example pack, so one is not
// fabricated for it.
package upload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Row is one forward-filled CSV row: ID carried down from the nearest
// preceding non-blank ID cell, plus the remaining named columns.
type Row struct {
	ID      string
	Columns map[string]string
}

// ErrUnsupportedFormat is returned for any upload that is not CSV; XLSX
// ingestion is out of scope until a pack-grounded XLSX library exists.
var ErrUnsupportedFormat = fmt.Errorf("upload: unsupported file format")

// Parse sniffs data's content type and dispatches to the CSV parser. Any
// non-CSV/non-text upload (including XLSX) returns ErrUnsupportedFormat.
func Parse(data []byte) ([]Row, error) {
	mt := mimetype.Detect(data)
	if !mt.Is("text/csv") && !mt.Is("text/plain") {
		return nil, ErrUnsupportedFormat
	}
	return ParseCSV(bytes.NewReader(data))
}

// ParseCSV reads r as a CSV file whose first row is a header including an
// "id" column, and forward-fills blank ID cells from the previous row so
// a multi-step test case's step rows all carry the same ID.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("upload: read header: %w", err)
	}

	idCol := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "id") {
			idCol = i
			break
		}
	}
	if idCol == -1 {
		return nil, fmt.Errorf("upload: CSV has no id column")
	}

	var rows []Row
	lastID := ""
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("upload: read row: %w", err)
		}

		id := ""
		if idCol < len(record) {
			id = strings.TrimSpace(record[idCol])
		}
		if id == "" {
			id = lastID
		} else {
			lastID = id
		}

		columns := make(map[string]string, len(header))
		for i, h := range header {
			if i == idCol {
				continue
			}
			if i < len(record) {
				columns[h] = record[i]
			}
		}

		rows = append(rows, Row{ID: id, Columns: columns})
	}

	return rows, nil
}
