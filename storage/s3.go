package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Uploader stores a file and returns the public URL for it. Callers upload
// before writing any database row that references the URL, so a stored record
// never points at a missing file.
type Uploader interface {
	Upload(ctx context.Context, body io.Reader, folder, filename, contentType string) (string, error)
}

// S3Uploader implements Uploader on top of S3 (LocalStack-compatible).
type S3Uploader struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewS3Uploader creates an S3Uploader. publicBaseURL is the host serving the
// bucket (a CDN domain or the S3/LocalStack endpoint).
func NewS3Uploader(client *s3.Client, bucket, publicBaseURL string) *S3Uploader {
	return &S3Uploader{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Upload writes the file under folder/ with a random object key, keeping the
// original extension, and returns the resulting URL.
func (u *S3Uploader) Upload(ctx context.Context, body io.Reader, folder, filename, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), path.Ext(filename))

	input := &s3.PutObjectInput{
		Bucket: sdkaws.String(u.bucket),
		Key:    sdkaws.String(key),
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = sdkaws.String(contentType)
	}

	if _, err := u.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicBaseURL, u.bucket, key), nil
}
