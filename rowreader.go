package locusstats

import (
	"bufio"
	"io"

	"github.com/carbocation/pfx"
)

// MaxLineSize bounds the length of a single input line. Rows with many samples
// can be far wider than bufio's default 64 KiB token.
const MaxLineSize = 64 << 20

// RowReader walks an input table line by line. It is forward-only and cannot
// be restarted.
type RowReader struct {
	LinesSeen uint64
	scanner   *bufio.Scanner
	err       error
}

func NewRowReader(r io.Reader) *RowReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	return &RowReader{
		scanner: scanner,
	}
}

// Error reports the first read error, if any, once Read has returned false.
func (rr *RowReader) Error() error {
	return rr.err
}

// Read returns the next raw line with its terminator removed. The second
// return value is false at end of input or after a read error.
func (rr *RowReader) Read() (string, bool) {
	if rr.err != nil {
		return "", false
	}

	if !rr.scanner.Scan() {
		if err := rr.scanner.Err(); err != nil {
			rr.err = pfx.Err(err)
		}
		return "", false
	}

	rr.LinesSeen++

	return rr.scanner.Text(), true
}
