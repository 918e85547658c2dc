package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NoticeStore keeps uploaded notification PDFs (official notices, result
// sheets, admit cards) in a MinIO bucket and hands out presigned download
// links for the listing pages.
type NoticeStore struct {
	client *minio.Client
	bucket string
}

// NewNoticeStore creates the MinIO client and ensures the bucket exists.
func NewNoticeStore(cfg *MinIOConfig) (*NoticeStore, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio config missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &NoticeStore{client: mc, bucket: cfg.Bucket}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		// ignore "already exists" style errors
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// ObjectKey builds the bucket key for a notice file: one prefix per listing
// collection (jobs, results, admit-cards, ...), filename kept as-is.
func ObjectKey(collection, filename string) string {
	return path.Join(collection, filename)
}

// Put stores a notice file.
func (s *NoticeStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

// Get returns a ReadCloser for a stored notice.
func (s *NoticeStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// stat to surface missing objects now rather than on first read
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

// DownloadURL returns a presigned GET URL valid for the given duration. The
// listing documents store these links in their downloadLink field.
func (s *NoticeStore) DownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, expires, make(url.Values))
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
