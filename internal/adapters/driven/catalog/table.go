package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// utf8BOM prefixes files saved by some spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one data row of a table keyed by header name.
type Row struct {
	// Line is the 1-based line the row starts on.
	Line int

	fields map[string]string
}

// NewRow builds a row from column values, mainly for tests.
func NewRow(line int, fields map[string]string) Row {
	return Row{Line: line, fields: fields}
}

// Get returns the trimmed value of a column, or def when the column is
// missing or blank.
func (r Row) Get(column, def string) string {
	v, ok := r.fields[column]
	if !ok {
		return def
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

// Has reports whether the row has a non-blank value for column.
func (r Row) Has(column string) bool {
	return r.Get(column, "") != ""
}

// readTable reads a tab-separated file with a header row.
// Short rows leave the trailing columns missing; extra cells are ignored.
func readTable(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseTable(data)
}

// parseTable splits records on newlines and cells on tabs. A quote only
// has meaning when it wraps a whole cell, so a stray quote in free text
// never spans lines.
func parseTable(data []byte) ([]Row, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		header []string
		rows   []Row
		line   int
	)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cells := splitCells(text)
		if header == nil {
			header = cells
			for i := range header {
				header[i] = strings.TrimSpace(header[i])
			}
			continue
		}
		fields := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(cells) {
				fields[col] = cells[i]
			}
		}
		rows = append(rows, Row{Line: line, fields: fields})
	}
	if err := sc.Err(); err != nil {
		return rows, fmt.Errorf("reading line %d: %w", line+1, err)
	}
	return rows, nil
}

// maxLineBytes bounds a single catalog line.
const maxLineBytes = 1 << 20

func splitCells(line string) []string {
	cells := strings.Split(line, "\t")
	for i, c := range cells {
		cells[i] = unquoteCell(c)
	}
	return cells
}

// unquoteCell strips the quotes the table writer adds around a cell and
// collapses doubled quotes inside it. Any other cell is returned as is.
func unquoteCell(c string) string {
	if len(c) < 2 || c[0] != '"' || c[len(c)-1] != '"' {
		return c
	}
	inner := c[1 : len(c)-1]
	if strings.Count(inner, "\"\"")*2 != strings.Count(inner, "\"") {
		return c
	}
	return strings.ReplaceAll(inner, "\"\"", "\"")
}
