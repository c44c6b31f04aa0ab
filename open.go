package locusstats

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// OutputSuffix replaces the final extension of the input name to form the
// default report name.
const OutputSuffix = "_percentiles.bed"

// OutputPath derives the report path from the input path: "dir/x.tsv" becomes
// "dir/x_percentiles.bed" and "x.tsv.gz" becomes "x.tsv_percentiles.bed". A
// name without an extension gets the suffix appended.
func OutputPath(input string) string {
	return strings.TrimSuffix(input, path.Ext(input)) + OutputSuffix
}

// ExpandHome resolves a leading "~/" to the current user's home directory.
func ExpandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~/") {
		return p, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", pfx.Err(err)
	}

	return filepath.Join(usr.HomeDir, p[2:]), nil
}

// OpenInput opens a local file or a gs:// object and decompresses it if it is
// gzip (including BGZF) or zstd. client may be nil for local paths.
func OpenInput(ctx context.Context, p string, client *storage.Client) (io.ReadCloser, error) {
	var raw io.ReadCloser
	var err error
	if IsGoogleStorage(p) {
		raw, err = openGoogleStorage(ctx, p, client)
	} else {
		raw, err = os.Open(p)
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	rc, err := decompress(raw)
	if err != nil {
		raw.Close()
		return nil, pfx.Err(err)
	}

	return rc, nil
}

// CreateOutput creates (or truncates) a local file or a gs:// object.
func CreateOutput(ctx context.Context, p string, client *storage.Client) (io.WriteCloser, error) {
	if IsGoogleStorage(p) {
		return createGoogleStorage(ctx, p, client)
	}

	f, err := os.Create(p)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return f, nil
}

func decompress(raw io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(raw)

	// Short or empty inputs return fewer bytes along with io.EOF.
	header, err := br.Peek(len(magicZStandard))
	if err != nil && err != io.EOF {
		return nil, err
	}

	var dec io.ReadCloser
	switch DetectCompression(header) {
	case CompressionGZIP:
		dec, err = NewGZIPReader(br)
	case CompressionZStandard:
		dec, err = NewZStandardReader(br)
	default:
		return &stackedReadCloser{Reader: br, closers: []io.Closer{raw}}, nil
	}
	if err != nil {
		return nil, err
	}

	return &stackedReadCloser{Reader: dec, closers: []io.Closer{dec, raw}}, nil
}

// stackedReadCloser reads from the outermost decoder and closes every layer,
// innermost last.
type stackedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedReadCloser) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
