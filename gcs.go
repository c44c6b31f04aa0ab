package locusstats

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

const gcsPrefix = "gs://"

// IsGoogleStorage reports whether path names a Cloud Storage object.
func IsGoogleStorage(path string) bool {
	return strings.HasPrefix(path, gcsPrefix)
}

func splitGoogleStoragePath(path string) (bucket, object string, err error) {
	parts := strings.SplitN(strings.TrimPrefix(path, gcsPrefix), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%s is not of the form gs://bucket/object", path)
	}

	return parts[0], parts[1], nil
}

func openGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if client == nil {
		return nil, pfx.Err(fmt.Errorf("no storage client available to read %s", path))
	}

	bucket, object, err := splitGoogleStoragePath(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return r, nil
}

// The object only becomes visible once the returned writer is closed without
// error.
func createGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.WriteCloser, error) {
	if client == nil {
		return nil, pfx.Err(fmt.Errorf("no storage client available to write %s", path))
	}

	bucket, object, err := splitGoogleStoragePath(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return client.Bucket(bucket).Object(object).NewWriter(ctx), nil
}
