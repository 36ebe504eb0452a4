// Package journal provides an append-only gob file of results that can be
// reopened after the run that wrote it.
package journal

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ErrReadOnly is returned when appending to a reopened journal.
var ErrReadOnly = errors.New("journal is read-only")

// Journal is an ordered sequence of T persisted to one file.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Get(index uint64) (T, error)
	Range(f func(index uint64, item T) error) error
	Close() error
}

type gobJournal[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// Create starts a new journal at path, replacing any previous one.
func Create[T any](path string) (Journal[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		slog.Error("failed to create journal", "path", path, "error", err)
		return nil, fmt.Errorf("create journal: %w", err)
	}

	slog.Debug("created journal", "path", path)

	return &gobJournal[T]{
		path:    path,
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Open reopens a journal for reading.
func Open[T any](path string) (Journal[T], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var (
		item   T
		length uint64
	)

	for {
		if err := decoder.Decode(&item); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, fmt.Errorf("decode journal entry %d: %w", length, err)
		}

		length++
	}

	slog.Debug("opened journal", "path", path, "length", length)

	return &gobJournal[T]{path: path, length: length}, nil
}

func (j *gobJournal[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.encoder == nil {
		return ErrReadOnly
	}

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode entry", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("encode entry: %w", err)
	}

	j.length++

	return nil
}

func (j *gobJournal[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := j.Append(item); err != nil {
			return err
		}
	}

	return nil
}

func (j *gobJournal[T]) Path() string {
	return j.path
}

func (j *gobJournal[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

func (j *gobJournal[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	err := j.file.Close()
	j.file = nil
	j.encoder = nil

	if err != nil {
		slog.Error("failed to close journal", "path", j.path, "error", err)
		return err
	}

	slog.Debug("closed journal", "path", j.path, "length", j.length)

	return nil
}

func (j *gobJournal[T]) Get(index uint64) (T, error) {
	var (
		found T
		hit   bool
	)

	err := j.Range(func(i uint64, item T) error {
		if i == index {
			found = item
			hit = true

			return errStop
		}

		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		var zero T
		return zero, err
	}

	if !hit {
		var zero T
		return zero, fmt.Errorf("index %d out of bounds (length %d)", index, j.Len())
	}

	return found, nil
}

var errStop = errors.New("stop")

func (j *gobJournal[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	for i := range j.length {
		// A fresh value per entry, gob leaves absent fields untouched.
		var item T
		if err := decoder.Decode(&item); err != nil {
			return fmt.Errorf("decode entry %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}
