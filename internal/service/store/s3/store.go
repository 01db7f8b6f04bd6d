// Package s3 implements store.ObjectStore backed by Amazon S3.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// Store wraps an S3 client behind the store.ObjectStore interface.
type Store struct {
	client  *awss3.Client
	presign *awss3.PresignClient
}

// New creates a Store from an already-resolved AWS configuration.
func New(cfg aws.Config) *Store {
	client := awss3.NewFromConfig(cfg)
	return &Store{
		client:  client,
		presign: awss3.NewPresignClient(client),
	}
}

// Read downloads an object and returns its full contents.
func (s *Store) Read(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &awss3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read s3://%s/%s: %w", bucket, key, err)
	}

	log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Msg("Object downloaded")
	return data, nil
}

// Write uploads an object with content type and metadata attached.
func (s *Store) Write(ctx context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) error {
	_, err := s.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata:    metadata,
	})
	if err != nil {
		return fmt.Errorf("s3 put s3://%s/%s: %w", bucket, key, err)
	}

	log.Info().
		Str("bucket", bucket).
		Str("key", key).
		Int("bytes", len(data)).
		Str("contentType", contentType).
		Msg("Object uploaded")
	return nil
}

// Presign issues a temporary PUT URL for a direct client upload.
func (s *Store) Presign(ctx context.Context, bucket, key string, expiry time.Duration) (string, error) {
	req, err := s.presign.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, awss3.WithPresignExpires(expiry))
	if err != nil {
		return "", fmt.Errorf("s3 presign s3://%s/%s: %w", bucket, key, err)
	}

	log.Debug().
		Str("bucket", bucket).
		Str("key", key).
		Dur("expiry", expiry).
		Msg("Upload URL issued")
	return req.URL, nil
}
