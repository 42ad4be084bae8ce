package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Store keeps objects in an S3-compatible bucket.
type S3Store struct {
	bucketName  string
	baseURL     string
	minioClient *minio.Client
}

// NewS3Store connects to endpoint and makes sure the bucket exists.
// When baseURL is empty, object URLs are built from the endpoint (path style).
func NewS3Store(ctx context.Context, endpoint, bucketName, accessKey, secretKey string, secure bool, baseURL string) (*S3Store, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	exists, err := minioClient.BucketExists(ctx, bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucketName, err)
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucketName, err)
		}
	}

	if baseURL == "" {
		baseURL = minioClient.EndpointURL().String() + "/" + bucketName
	}

	return &S3Store{
		bucketName:  bucketName,
		baseURL:     strings.TrimRight(baseURL, "/"),
		minioClient: minioClient,
	}, nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	key, err := CleanKey(key)
	if err != nil {
		return nil, err
	}
	object, err := s.minioClient.GetObject(ctx, s.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateS3Error(err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, translateS3Error(err)
	}
	return data, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = MimeType(key)
	}
	_, err = s.minioClient.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	key, err := CleanKey(key)
	if err != nil {
		return err
	}
	if _, err := s.minioClient.StatObject(ctx, s.bucketName, key, minio.StatObjectOptions{}); err != nil {
		return translateS3Error(err)
	}
	return s.minioClient.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
}

func (s *S3Store) URL(key string) string {
	return s.baseURL + "/" + strings.TrimPrefix(key, "/")
}

func translateS3Error(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return ErrObjectNotExist
	}
	return err
}
