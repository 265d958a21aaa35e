// Package kv provides the string keyed preference stores folio persists into.
package kv

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

// Store is a synchronous string keyed store. Keys are independent: there is
// no transaction spanning more than one Set.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes value under key.
	Set(key, value string) error
}

// Options selects and configures a backend for Open.
type Options struct {
	Backend   string // "file", "sqlite", "redis" or "memory"
	Path      string // file or sqlite database path
	RedisAddr string
	RedisKey  string
}

// Open returns the store described by opts.
func Open(opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", "file":
		if opts.Path == "" {
			return nil, fmt.Errorf("file store: path is required")
		}
		return NewFile(opts.Path), nil
	case "sqlite":
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite store: path is required")
		}
		return OpenSQLite(opts.Path)
	case "redis":
		return NewRedis(opts.RedisAddr, opts.RedisKey)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Keys returns the stored keys. Order is unspecified.
func (m *Memory) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}
