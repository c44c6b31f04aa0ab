package locusstats

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// Header is the first line of every report.
var Header = strings.Join([]string{"locus_id", "mean", "variance", "percentile_5", "percentile_95"}, FieldSeparator)

// Sink receives summary records in input order.
type Sink interface {
	Write(rec SummaryRecord) error
}

// FormatRecord renders rec as a report line without its newline. Numbers are
// printed with 3 decimals, correctly rounded from their binary value with ties
// to even.
func FormatRecord(rec SummaryRecord) string {
	return strings.Join([]string{
		rec.LocusID,
		formatValue(rec.Mean),
		formatValue(rec.Variance),
		formatValue(rec.P5),
		formatValue(rec.P95),
	}, FieldSeparator)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// TSVWriter writes the tab-separated report. Call Flush when done.
type TSVWriter struct {
	w *bufio.Writer
}

// NewTSVWriter writes the header line to w and returns a writer for the
// records that follow.
func NewTSVWriter(w io.Writer) (*TSVWriter, error) {
	t := &TSVWriter{w: bufio.NewWriter(w)}
	if err := t.writeLine(Header); err != nil {
		return nil, pfx.Err(err)
	}

	return t, nil
}

func (t *TSVWriter) Write(rec SummaryRecord) error {
	if err := t.writeLine(FormatRecord(rec)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func (t *TSVWriter) Flush() error {
	if err := t.w.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

func (t *TSVWriter) writeLine(line string) error {
	if _, err := t.w.WriteString(line); err != nil {
		return err
	}

	return t.w.WriteByte('\n')
}

type multiSink []Sink

// MultiSink returns a Sink that hands each record to every sink in order,
// stopping at the first error.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Write(rec SummaryRecord) error {
	for _, s := range m {
		if err := s.Write(rec); err != nil {
			return err
		}
	}

	return nil
}
