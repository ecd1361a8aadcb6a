package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrEmptyFile = errors.New("file has no header row")

// utf8BOM is prepended by most spreadsheet exports
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a decoded spreadsheet held in memory
type Table struct {
	header []string
	rows   [][]string
}

// NewTable builds a table from already-decoded cells
func NewTable(header []string, rows [][]string) *Table {
	return &Table{header: header, rows: rows}
}

// Header returns the column names in file order
func (t *Table) Header() []string { return t.header }

// Rows returns the data rows in file order, header excluded
func (t *Table) Rows() [][]string { return t.rows }

// ReadCSV decodes a CSV export. The delimiter is ';' when the header line holds
// more semicolons than commas, else ','. Rows may have fewer or more cells than
// the header; header names are trimmed.
func ReadCSV(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(lead, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	first, err := br.Peek(br.Size())
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if i := bytes.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.Comma = delimiter(first)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := make([]string, len(records[0]))
	for i, name := range records[0] {
		header[i] = strings.TrimSpace(name)
	}
	return &Table{header: header, rows: records[1:]}, nil
}

func delimiter(line []byte) rune {
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}
