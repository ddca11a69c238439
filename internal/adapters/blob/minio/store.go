package minio

import (
	"context"
	"fmt"
	"io"

	"petcare/internal/domain/uploads"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store guarda las imágenes como objetos en un bucket MinIO/S3.
type Store struct {
	client *miniogo.Client
	bucket string
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("minio bucket check: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, miniogo.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("minio make bucket: %w", err)
		}
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Put: size -1 deja que minio-go haga multipart si hace falta.
func (s *Store) Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error {
	if size <= 0 {
		size = -1
	}
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, miniogo.PutObjectOptions{
		ContentType: contentType,
	})
	return err
}

func (s *Store) Get(ctx context.Context, name string) (io.ReadCloser, string, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, name, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, "", err
	}

	// GetObject es lazy; Stat es lo que realmente pega contra el server.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if miniogo.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, "", uploads.ErrNotFound
		}
		return nil, "", err
	}
	return obj, info.ContentType, nil
}
