// Package sink opens the places backups are read from and statements are written to.
//
// A location is either "-" for standard input and output, a Google Cloud
// Storage URI of the form gs://bucket/object or a local path.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
)

// Stdio is the location of standard input and output.
const Stdio = "-"

const gcsScheme = "gs://"

var ErrInvalidURI = errors.New("invalid GCS URI")

// IsGCS reports if the location is a Google Cloud Storage URI.
func IsGCS(location string) bool {
	return strings.HasPrefix(location, gcsScheme)
}

// ParseGCS splits a Google Cloud Storage URI into bucket and object name.
func ParseGCS(uri string) (bucket, object string, err error) {
	if !IsGCS(uri) {
		return "", "", fmt.Errorf("%w: %s", ErrInvalidURI, uri)
	}

	bucket, object, ok := strings.Cut(strings.TrimPrefix(uri, gcsScheme), "/")
	if !ok || bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w (no object path): %s", ErrInvalidURI, uri)
	}

	return bucket, object, nil
}

// New opens the location for writing.
//
// Google Cloud Storage objects use Application Default Credentials and are
// only created once the writer is closed. Parent directories of local files
// are created.
func New(ctx context.Context, location string) (io.WriteCloser, error) {
	switch {
	case location == Stdio:
		return nopWriteCloser{os.Stdout}, nil

	case IsGCS(location):
		bucket, object, err := ParseGCS(location)
		if err != nil {
			return nil, err
		}

		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}

		return &gcsWriter{Writer: client.Bucket(bucket).Object(object).NewWriter(ctx), client: client}, nil

	default:
		if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
			return nil, fmt.Errorf("create directory for %q: %w", location, err)
		}

		f, err := os.Create(location)
		if err != nil {
			return nil, fmt.Errorf("create file %q: %w", location, err)
		}
		return f, nil
	}
}

// Open opens the location for reading.
func Open(ctx context.Context, location string) (io.ReadCloser, error) {
	switch {
	case location == Stdio:
		return io.NopCloser(os.Stdin), nil

	case IsGCS(location):
		bucket, object, err := ParseGCS(location)
		if err != nil {
			return nil, err
		}

		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("create storage client: %w", err)
		}

		r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("reading object %s/%s: %w", bucket, object, err)
		}

		return &gcsReader{Reader: r, client: client}, nil

	default:
		f, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open file %q: %w", location, err)
		}
		return f, nil
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

// gcsWriter finalizes the upload and releases the client on Close.
type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

func (w *gcsWriter) Close() error {
	defer w.client.Close()

	if err := w.Writer.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}
	return nil
}

type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r *gcsReader) Close() error {
	defer r.client.Close()
	return r.Reader.Close()
}
