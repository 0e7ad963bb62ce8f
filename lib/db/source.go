package db

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is a single record of an external feed, mapping field name to value.
type Row map[string]string

// RowSource produces a finite, non-restartable sequence of rows.
// Next returns io.EOF once the sequence is exhausted.
type RowSource interface {
	Next() (Row, error)
}

// --------------------------------------------------------------------------
// CSV
// --------------------------------------------------------------------------

// csvSource reads rows from CSV data with a header line
type csvSource struct {
	r      *csv.Reader
	header []string
}

// NewCSVSource creates a RowSource reading CSV data whose first line names the fields.
func NewCSVSource(r io.Reader) RowSource {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	return &csvSource{r: reader}
}

func (s *csvSource) Next() (Row, error) {
	if s.header == nil {
		header, err := s.r.Read()
		if err != nil {
			return nil, err
		}
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], "\ufeff")
		}
		s.header = header
	}

	record, err := s.r.Read()
	if err != nil {
		return nil, err
	}
	if len(record) != len(s.header) {
		return nil, fmt.Errorf("csv: expected %d fields, got %d", len(s.header), len(record))
	}

	row := make(Row, len(record))
	for i, field := range s.header {
		row[field] = record[i]
	}
	return row, nil
}

// --------------------------------------------------------------------------
// In-memory
// --------------------------------------------------------------------------

// sliceSource yields rows from a slice
type sliceSource struct {
	rows []Row
	pos  int
}

// NewSliceSource creates a RowSource yielding the given rows once.
func NewSliceSource(rows ...Row) RowSource {
	return &sliceSource{rows: rows}
}

func (s *sliceSource) Next() (Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}
