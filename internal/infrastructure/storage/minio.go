package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
	reporterrors "github.com/romanresh/test-runner-nunit-reporter/pkg/errors"
)

const xmlContentType = "application/xml"

// ObjectPutter is the subset of *minio.Client used by MinIOWriter.
type ObjectPutter interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64,
		opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// MinIOConfig locates the bucket and object that receive the report.
type MinIOConfig struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Bucket     string
	ObjectName string
	UseSSL     bool
}

// MinIOWriter uploads the report to an S3-compatible object store.
type MinIOWriter struct {
	client ObjectPutter
	bucket string
	object string
}

// NewMinIOWriter connects a minio client for cfg.
func NewMinIOWriter(cfg MinIOConfig) (*MinIOWriter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return NewMinIOWriterWithClient(client, cfg.Bucket, cfg.ObjectName), nil
}

// NewMinIOWriterWithClient wraps an existing client.
func NewMinIOWriterWithClient(client ObjectPutter, bucket, object string) *MinIOWriter {
	return &MinIOWriter{client: client, bucket: bucket, object: object}
}

var _ ports.ReportWriter = (*MinIOWriter)(nil)

// Write uploads data as a single object and returns its s3:// location.
func (w *MinIOWriter) Write(ctx context.Context, data []byte) (string, error) {
	location := fmt.Sprintf("s3://%s/%s", w.bucket, w.object)

	_, err := w.client.PutObject(ctx, w.bucket, w.object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: xmlContentType})
	if err != nil {
		return "", reporterrors.NewWriteError(location, err)
	}
	return location, nil
}
