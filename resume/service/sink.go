package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"sync"

	"resume-builder/internal/shared/storage/object"
)

// File is a fully generated document ready for delivery.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileSink receives finished files. It is only ever called with a
// complete document.
type FileSink interface {
	Deliver(ctx context.Context, file File) error
}

// MemorySink keeps delivered files in memory.
type MemorySink struct {
	mu    sync.Mutex
	files []File
}

func (s *MemorySink) Deliver(ctx context.Context, file File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, file)
	return nil
}

// Files returns a copy of everything delivered so far.
func (s *MemorySink) Files() []File {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]File, len(s.files))
	copy(out, s.files)
	return out
}

// Last returns the most recent delivery.
func (s *MemorySink) Last() (File, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.files) == 0 {
		return File{}, false
	}
	return s.files[len(s.files)-1], true
}

// StoreSink archives files in an object store under Namespace.
type StoreSink struct {
	Store     object.ObjectStore
	Namespace string
}

func (s StoreSink) Deliver(ctx context.Context, file File) error {
	key := path.Join(s.Namespace, file.Name)
	if _, err := s.Store.Save(ctx, key, file.ContentType, bytes.NewReader(file.Data)); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// Key returns where a file lands in the store.
func (s StoreSink) Key(fileName string) string {
	return path.Join(s.Namespace, fileName)
}

// MultiSink delivers to each sink in order and stops at the first error.
type MultiSink []FileSink

func (m MultiSink) Deliver(ctx context.Context, file File) error {
	for _, sink := range m {
		if err := sink.Deliver(ctx, file); err != nil {
			return err
		}
	}
	return nil
}
