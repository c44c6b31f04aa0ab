package locusstats

import (
	"errors"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Report tallies what happened to each line of one run.
type Report struct {
	Lines            uint64
	Written          uint64
	Malformed        uint64
	ParseFailures    uint64
	InsufficientData uint64
	DroppedFields    uint64
}

// Processor turns input lines into summary records. Rows that cannot be
// summarized are reported to Log and skipped; they never stop a run.
type Processor struct {
	Policy ParsePolicy
	Log    logrus.FieldLogger
}

func NewProcessor(policy ParsePolicy, log logrus.FieldLogger) *Processor {
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Processor{
		Policy: policy,
		Log:    log,
	}
}

// ProcessLine runs one line through parsing, extraction and summarization.
// The returned error is one of ErrMalformedRow, ErrParseFailure (as a
// *ParseError) or ErrInsufficientData.
func (p *Processor) ProcessLine(line string) (SummaryRecord, error) {
	_, rec, _, err := p.processLine(line)
	return rec, err
}

func (p *Processor) processLine(line string) (Row, SummaryRecord, int, error) {
	row, err := ParseRow(line)
	if err != nil {
		return row, SummaryRecord{}, 0, err
	}

	values, skipped, err := ExtractObservations(row.RawFields, p.Policy)
	if err != nil {
		return row, SummaryRecord{}, 0, err
	}

	rec, err := Summarize(row.LocusID, values)
	return row, rec, skipped, err
}

// Run reads every line from rr and writes one record per summarizable row to
// sink, in input order. Only read and write failures are returned.
func (p *Processor) Run(rr *RowReader, sink Sink) (Report, error) {
	var report Report

	for {
		line, ok := rr.Read()
		if !ok {
			break
		}
		report.Lines++

		row, rec, skipped, err := p.processLine(line)
		report.DroppedFields += uint64(skipped)
		if skipped > 0 {
			p.Log.WithFields(logrus.Fields{"line": report.Lines, "dropped": skipped}).Debug("Dropped unparseable fields")
		}

		switch {
		case err == nil:
		case errors.Is(err, ErrMalformedRow):
			report.Malformed++
			p.Log.WithField("line", report.Lines).Debug("Skipping malformed row")
			continue
		case errors.Is(err, ErrParseFailure):
			report.ParseFailures++
			p.Log.WithField("line", report.Lines).Warnf("Could not parse numeric values in line: %s", strings.TrimSpace(line))
			continue
		case errors.Is(err, ErrInsufficientData):
			report.InsufficientData++
			p.Log.WithField("line", report.Lines).Warnf("Not enough data for locus %s, skipping", row.LocusID)
			continue
		default:
			return report, pfx.Err(err)
		}

		if err := sink.Write(rec); err != nil {
			return report, pfx.Err(err)
		}
		report.Written++
	}

	if err := rr.Error(); err != nil {
		return report, pfx.Err(err)
	}

	p.Log.WithFields(logrus.Fields{
		"lines":        humanize.Comma(int64(report.Lines)),
		"written":      humanize.Comma(int64(report.Written)),
		"malformed":    humanize.Comma(int64(report.Malformed)),
		"unparseable":  humanize.Comma(int64(report.ParseFailures)),
		"insufficient": humanize.Comma(int64(report.InsufficientData)),
	}).Info("Finished summarizing loci")

	return report, nil
}
