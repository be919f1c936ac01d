// Package gcs stores objects in a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"career-backend/internal/shared/storage/object"
)

type Store struct {
	client *storage.Client
	bucket string
	prefix string
}

// New uses Application Default Credentials unless opts say otherwise.
func New(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*Store, error) {
	bucket = strings.TrimSpace(bucket)
	if bucket == "" {
		return nil, errors.New("gcs bucket is required")
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
	}, nil
}

func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error) {
	name, err := s.objectName(key)
	if err != nil {
		return 0, err
	}
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	n, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("gcs write gs://%s/%s: %w", s.bucket, name, err)
	}
	// The upload is only committed on Close.
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("gcs commit gs://%s/%s: %w", s.bucket, name, err)
	}
	return n, nil
}

func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	name, err := s.objectName(key)
	if err != nil {
		return nil, err
	}
	r, err := s.client.Bucket(s.bucket).Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: gs://%s/%s", object.ErrNotFound, s.bucket, name)
	}
	if err != nil {
		return nil, fmt.Errorf("gcs read gs://%s/%s: %w", s.bucket, name, err)
	}
	return r, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) objectName(key string) (string, error) {
	clean, err := object.CleanKey(key)
	if err != nil {
		return "", err
	}
	return object.JoinPrefix(s.prefix, clean), nil
}

var _ object.Store = (*Store)(nil)
