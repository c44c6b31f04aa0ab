package locusstats

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"allele_stats.tsv", "allele_stats_percentiles.bed"},
		{"data/run1/allele_stats.txt", "data/run1/allele_stats_percentiles.bed"},
		{"allele_stats.tsv.gz", "allele_stats.tsv_percentiles.bed"},
		{"allele_stats", "allele_stats_percentiles.bed"},
		{"run.v2/allele_stats", "run.v2/allele_stats_percentiles.bed"},
		{"gs://bucket/loci/stats.tsv", "gs://bucket/loci/stats_percentiles.bed"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, OutputPath(tt.input), tt.input)
	}
}

func TestExpandHome(t *testing.T) {
	p, err := ExpandHome("relative/file.tsv")
	require.NoError(t, err)
	assert.Equal(t, "relative/file.tsv", p)

	p, err = ExpandHome("~/file.tsv")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p), p)
	assert.Equal(t, "file.tsv", filepath.Base(p))
}

const openFixture = "L1\t1.0\t.\t3.0\nL5\t10\t20\n"

func readAllInput(t *testing.T, path string) string {
	t.Helper()

	rc, err := OpenInput(context.Background(), path, nil)
	require.NoError(t, err)
	defer rc.Close()

	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(b)
}

func TestOpenInputPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.tsv")
	require.NoError(t, os.WriteFile(path, []byte(openFixture), 0o644))

	assert.Equal(t, openFixture, readAllInput(t, path))
}

func TestOpenInputEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tsv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	assert.Equal(t, "", readAllInput(t, path))
}

func TestOpenInputGZIPMultiMember(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)

	// Two members, as bgzip writes them.
	for _, chunk := range []string{"L1\t1.0\t.\t3.0\n", "L5\t10\t20\n"} {
		zw := gzip.NewWriter(f)
		_, err = zw.Write([]byte(chunk))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
	}
	require.NoError(t, f.Close())

	assert.Equal(t, openFixture, readAllInput(t, path))
}

func TestOpenInputZStandard(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats.tsv.zst")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = enc.Write([]byte(openFixture))
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	assert.Equal(t, openFixture, readAllInput(t, path))
}

func TestOpenInputMissingFile(t *testing.T) {
	_, err := OpenInput(context.Background(), filepath.Join(t.TempDir(), "nope.tsv"), nil)
	assert.Error(t, err)
}

func TestGoogleStorageRequiresClient(t *testing.T) {
	_, err := OpenInput(context.Background(), "gs://bucket/stats.tsv", nil)
	assert.Error(t, err)

	_, err = CreateOutput(context.Background(), "gs://bucket/stats_percentiles.bed", nil)
	assert.Error(t, err)
}

func TestSplitGoogleStoragePath(t *testing.T) {
	bucket, object, err := splitGoogleStoragePath("gs://my-bucket/a/b/stats.tsv")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "a/b/stats.tsv", object)

	for _, bad := range []string{"gs://", "gs://bucket", "gs://bucket/", "gs:///object"} {
		_, _, err := splitGoogleStoragePath(bad)
		assert.Error(t, err, bad)
	}
}

func TestCreateOutputLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out_percentiles.bed")

	w, err := CreateOutput(context.Background(), path, nil)
	require.NoError(t, err)
	_, err = io.WriteString(w, Header+"\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(b))
}
