// Package table reads delimited numeric tables for the adev command: one
// row per sample, one column per channel.
package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-avgdev/stats/deviation"
)

// Whitespace selects splitting on runs of blanks and tabs.
const Whitespace = "ws"

// ErrSyntax reports a malformed table.
var ErrSyntax = errors.New("table: syntax error")

// Options controls parsing.
type Options struct {
	// Delimiter is a single character, or Whitespace.
	Delimiter string

	// Header marks the first non-comment row as channel names.
	Header bool
}

// Table is a parsed input.
type Table struct {
	// Names holds one label per channel. Without a header row the labels
	// are the zero-based channel indices.
	Names []string

	// Samples is the column-major sample matrix.
	Samples *deviation.Dense
}

// ReadFile parses the table stored at path.
func ReadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// Read parses a table from r. Blank lines and lines starting with '#' are
// skipped. Every data row must have the same number of fields.
func Read(r io.Reader, opts Options) (*Table, error) {
	records, err := readRecords(r, opts.Delimiter)
	if err != nil {
		return nil, err
	}

	var names []string
	if opts.Header && len(records) > 0 {
		names = make([]string, len(records[0]))
		for h, n := range records[0] {
			names[h] = strings.TrimSpace(n)
		}
		records = records[1:]
	}

	rows := make([][]float64, len(records))
	for i, rec := range records {
		row := make([]float64, len(rec))
		for h, field := range rec {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d column %d: %q is not a number", ErrSyntax, i+1, h+1, field)
			}
			row[h] = v
		}
		rows[i] = row
	}

	nCols := len(names)
	if len(rows) > 0 {
		nCols = len(rows[0])
	}
	if names != nil && len(names) != nCols {
		return nil, fmt.Errorf("%w: header has %d names for %d channels", ErrSyntax, len(names), nCols)
	}

	var samples *deviation.Dense
	if len(rows) == 0 {
		// A header-only table declares channels without samples.
		samples, err = deviation.NewDense(0, nCols, nil)
	} else {
		samples, err = deviation.NewDenseFromRows(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	if names == nil {
		names = make([]string, nCols)
		for h := range names {
			names[h] = strconv.Itoa(h)
		}
	}

	return &Table{Names: names, Samples: samples}, nil
}

func readRecords(r io.Reader, delim string) ([][]string, error) {
	if delim == Whitespace {
		return readFields(r)
	}

	runes := []rune(delim)
	if len(runes) != 1 {
		return nil, fmt.Errorf("%w: delimiter %q", ErrSyntax, delim)
	}

	cr := csv.NewReader(r)
	cr.Comma = runes[0]
	cr.Comment = '#'
	cr.FieldsPerRecord = 0
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSyntax, err)
	}

	return records, nil
}

func readFields(r io.Reader) ([][]string, error) {
	var records [][]string

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(records) > 0 && len(fields) != len(records[0]) {
			return nil, fmt.Errorf("%w: line has %d fields, want %d", ErrSyntax, len(fields), len(records[0]))
		}
		records = append(records, fields)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	return records, nil
}
