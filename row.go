package locusstats

import (
	"errors"
	"strings"
)

// FieldSeparator delimits the columns of both the input table and the report.
const FieldSeparator = "\t"

// ErrMalformedRow is returned for lines that lack a locus id plus at least one
// data column.
var ErrMalformedRow = errors.New("row has fewer than 2 tab-separated fields")

// Row is one input line: the locus identifier followed by its raw, unparsed
// observation columns.
type Row struct {
	LocusID   string
	RawFields []string
}

// ParseRow trims the surrounding whitespace (including the line terminator)
// from line and splits it on tabs.
func ParseRow(line string) (Row, error) {
	fields := strings.Split(strings.TrimSpace(line), FieldSeparator)
	if len(fields) < 2 {
		return Row{}, ErrMalformedRow
	}

	return Row{LocusID: fields[0], RawFields: fields[1:]}, nil
}
