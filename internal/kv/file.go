package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// File stores preferences as a flat yaml map on disk. The file is re-read
// when its modification time changes so that writes from another folio
// process are picked up.
type File struct {
	path string

	mu      sync.Mutex
	values  map[string]string
	modTime time.Time
	loaded  bool
}

// NewFile returns a store backed by the yaml file at path. The file is
// created on the first Set.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.refresh(); err != nil {
		return "", false, err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.refresh(); err != nil {
		return err
	}
	f.values[key] = value
	return f.save()
}

func (f *File) refresh() error {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			if !f.loaded {
				f.values = make(map[string]string)
				f.loaded = true
			}
			return nil
		}
		return fmt.Errorf("stat store: %w", err)
	}
	if f.loaded && info.ModTime().Equal(f.modTime) {
		return nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return fmt.Errorf("reading store: %w", err)
	}
	values := make(map[string]string)
	if err := yaml.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("parsing store: %w", err)
	}
	f.values = values
	f.modTime = info.ModTime()
	f.loaded = true
	return nil
}

func (f *File) save() error {
	data, err := yaml.Marshal(f.values)
	if err != nil {
		return fmt.Errorf("marshaling store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}

	if info, err := os.Stat(f.path); err == nil {
		f.modTime = info.ModTime()
	}
	return nil
}

// Watch calls fn whenever the backing file is written by someone else until
// ctx is done. The parent directory is watched so that atomic replaces are
// seen.
func (f *File) Watch(ctx context.Context, fn func()) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != filepath.Clean(f.path) {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				if f.changedOnDisk() {
					fn()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}

// changedOnDisk reports whether the file differs from the last version this
// store read or wrote.
func (f *File) changedOnDisk() bool {
	info, err := os.Stat(f.path)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return !info.ModTime().Equal(f.modTime)
}
