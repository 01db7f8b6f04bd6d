// Package mock provides an in-memory object store for testing without
// cloud credentials.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Object is one stored value with its write attributes.
type Object struct {
	Data        []byte
	ContentType string
	Metadata    map[string]string
}

// Store implements store.ObjectStore in memory. Errors can be injected
// per bucket/key to exercise failure paths.
type Store struct {
	mu         sync.Mutex
	objects    map[string]Object
	readErr    map[string]error
	writeErr   map[string]error
	presignErr error
	presigned  []string
}

// New creates an empty mock store.
func New() *Store {
	return &Store{
		objects:  make(map[string]Object),
		readErr:  make(map[string]error),
		writeErr: make(map[string]error),
	}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

// Put seeds an object directly, without going through Write.
func (s *Store) Put(bucket, key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey(bucket, key)] = Object{Data: data}
}

// FailRead makes subsequent reads of bucket/key return err.
func (s *Store) FailRead(bucket, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr[objectKey(bucket, key)] = err
}

// FailWrite makes subsequent writes of bucket/key return err.
func (s *Store) FailWrite(bucket, key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr[objectKey(bucket, key)] = err
}

// Get returns a stored object and whether it exists.
func (s *Store) Get(bucket, key string) (Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.objects[objectKey(bucket, key)]
	return obj, ok
}

// FailPresign makes subsequent Presign calls return err.
func (s *Store) FailPresign(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presignErr = err
}

// Presigned returns the bucket/key pairs presigned so far.
func (s *Store) Presigned() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.presigned))
	copy(out, s.presigned)
	return out
}

// Read implements store.ObjectStore.
func (s *Store) Read(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := objectKey(bucket, key)
	if err := s.readErr[k]; err != nil {
		return nil, err
	}
	obj, ok := s.objects[k]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", k)
	}
	return obj.Data, nil
}

// Write implements store.ObjectStore.
func (s *Store) Write(_ context.Context, bucket, key string, data []byte, contentType string, metadata map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := objectKey(bucket, key)
	if err := s.writeErr[k]; err != nil {
		return err
	}
	s.objects[k] = Object{Data: data, ContentType: contentType, Metadata: metadata}
	return nil
}

// Presign implements store.ObjectStore with a deterministic fake URL.
func (s *Store) Presign(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.presignErr != nil {
		return "", s.presignErr
	}
	s.presigned = append(s.presigned, objectKey(bucket, key))
	return fmt.Sprintf("https://%s.example.invalid/%s?expires=%d", bucket, key, int(expiry.Seconds())), nil
}
