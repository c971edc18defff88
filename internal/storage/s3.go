package storage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/goliatone/go-sitefile/internal/runtimeconfig"
)

// S3 reads source files from a MinIO or S3 bucket. Object keys are the
// source paths, optionally below a prefix.
type S3 struct {
	client *minio.Client
	bucket string
	prefix string
}

var _ Backend = (*S3)(nil)

// NewS3 connects to the configured endpoint. No request is made until the
// first read.
func NewS3(cfg runtimeconfig.S3Config) (*S3, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}

	return &S3{
		client: client,
		bucket: bucket,
		prefix: normalizePrefix(cfg.Prefix),
	}, nil
}

// ReadFile downloads the object for name. Missing objects are reported as
// fs.ErrNotExist.
func (s *S3) ReadFile(ctx context.Context, name string) ([]byte, error) {
	key := s.objectKey(name)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.translate(key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.translate(key, err)
	}
	return data, nil
}

// List returns every object below root, with the prefix stripped.
func (s *S3) List(ctx context.Context, root string) ([]string, error) {
	prefix := s.objectKey(root)
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}
		names = append(names, s.sourceName(obj.Key))
	}
	return sortedUnique(names), nil
}

func (s *S3) objectKey(name string) string {
	name = cleanName(name)
	if s.prefix == "" {
		return name
	}
	if name == "" {
		return strings.TrimSuffix(s.prefix, "/")
	}
	return s.prefix + name
}

func (s *S3) sourceName(key string) string {
	return strings.TrimPrefix(key, s.prefix)
}

func (s *S3) translate(key string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
		return &fs.PathError{Op: "get", Path: key, Err: fs.ErrNotExist}
	}
	return fmt.Errorf("s3 get %s: %w", key, err)
}

func normalizePrefix(prefix string) string {
	prefix = cleanName(prefix)
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}
