package gateway

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Files is the thin pass-through to the hosted file store. Uploads stream to
// the bucket and are addressed afterwards by a public view URL; no client-side
// resizing or transcoding happens here.
type Files struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFiles wraps the storage bucket resolved at startup.
func NewFiles(bucket *gcs.BucketHandle, bucketName string) *Files {
	return &Files{bucket: bucket, bucketName: bucketName}
}

// Upload streams r into the bucket under a fresh object name and returns that
// name. Size limits are checked by the caller before the stream starts.
func (f *Files) Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	name := uuid.NewString() + path.Ext(filename)

	w := f.bucket.Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", fmt.Errorf("upload failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	return name, nil
}

// PublicURL builds the public view URL for an uploaded object.
func (f *Files) PublicURL(name string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media",
		f.bucketName, url.PathEscape(name))
}
