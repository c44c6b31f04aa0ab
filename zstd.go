package locusstats

import (
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// NewZStandardReader decompresses a zstd stream. Closing the result releases
// the decoder's goroutines; it does not close r.
func NewZStandardReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}

	return d.IOReadCloser(), nil
}

// NewGZIPReader decompresses a gzip stream. Concatenated members, as found in
// BGZF files, are read as one stream.
func NewGZIPReader(r io.Reader) (io.ReadCloser, error) {
	z, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return z, nil
}
