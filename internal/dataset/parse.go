package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// Parse reads delimited text whose first line names the columns. Each later
// line maps positionally onto those names; unknown columns are ignored and
// a short line leaves its trailing columns undefined. Stray quotes are
// kept as text. Lines that fail to parse or fail Valid are dropped without
// error; only an unreadable header is a parse failure.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrParse, err)
	}

	cols := make([]Field, len(header))
	known := make([]bool, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		cols[i], known[i] = FieldByHeader(h)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFetch, err)
		}
		var row Row
		for i, v := range rec {
			if i >= len(cols) {
				break
			}
			if known[i] {
				row.set(cols[i], v)
			}
		}
		if row.Valid() {
			rows = append(rows, row)
		}
	}
	return rows, nil
}
