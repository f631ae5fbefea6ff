package transfer

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/arefyev/sealmsg/internal/common"
)

// ObjectStorageConfig holds the connection settings for the asset store.
type ObjectStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// ObjectStorage implements Transfer against an S3-compatible store.
// Uploaded objects are keyed by content digest, so re-uploading identical
// bytes lands on the same object.
type ObjectStorage struct {
	client *minio.Client
	bucket string
	region string
}

// NewObjectStorage creates a MinIO client from the config.
func NewObjectStorage(cfg ObjectStorageConfig) (*ObjectStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init object storage client: %w", err)
	}
	return &ObjectStorage{client: client, bucket: cfg.Bucket, region: cfg.Region}, nil
}

// EnsureBucket makes sure the asset bucket exists before use.
func (s *ObjectStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

func (s *ObjectStorage) LoadContent(ctx context.Context, d Descriptor) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, d.RemoteID, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapStorageError(err)
	}
	// GetObject is lazy: force the first request so missing objects are
	// reported here, not on the caller's first Read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, mapStorageError(err)
	}
	return obj, nil
}

func (s *ObjectStorage) Upload(ctx context.Context, meta Metadata, content io.Reader) (*Result, error) {
	key := objectKey(meta)
	opts := minio.PutObjectOptions{ContentType: meta.MimeType}
	if _, err := s.client.PutObject(ctx, s.bucket, key, content, meta.Size, opts); err != nil {
		return nil, mapStorageError(err)
	}
	return &Result{RemoteID: key, AccessToken: uuid.NewString()}, nil
}

func objectKey(meta Metadata) string {
	if len(meta.Digest) > 0 {
		return hex.EncodeToString(meta.Digest)
	}
	return uuid.NewString()
}

// mapStorageError translates minio failures into the shared transport
// taxonomy.
func mapStorageError(err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" || resp.StatusCode == http.StatusNotFound:
		return common.NewTransportError(common.StatusNotFound, err)
	case resp.Code == "AccessDenied" || resp.Code == "InvalidAccessKeyId" ||
		resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return common.NewTransportError(common.StatusForbidden, err)
	case resp.StatusCode >= 500:
		return common.NewTransportError(common.StatusUnavailable, err)
	default:
		return common.NewTransportError(common.StatusUnavailable, err)
	}
}
