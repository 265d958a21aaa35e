package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T, key string) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	r, err := NewRedis(srv.Addr(), key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, srv
}

func TestRedisStore(t *testing.T) {
	r, _ := newTestRedis(t, "")
	require.NoError(t, r.Ping(context.Background()))
	exerciseStore(t, r)
}

func TestRedisStoreUsesOneHash(t *testing.T) {
	r, srv := newTestRedis(t, "")
	require.NoError(t, r.Set("themeMode", "dark"))
	require.NoError(t, r.Set("isSoundOn", "false"))

	assert.Equal(t, []string{"folio:preferences"}, srv.Keys())
	assert.Equal(t, "dark", srv.HGet("folio:preferences", "themeMode"))
	assert.Equal(t, "false", srv.HGet("folio:preferences", "isSoundOn"))

	// Written by another client.
	srv.HSet("folio:preferences", "language", "en")
	v, ok, err := r.Get("language")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "en", v)
}

func TestRedisStoreCustomKey(t *testing.T) {
	r, srv := newTestRedis(t, "profile:alice")
	require.NoError(t, r.Set("themeMode", "light"))
	assert.Equal(t, "light", srv.HGet("profile:alice", "themeMode"))
}

func TestRedisStoreUnreachable(t *testing.T) {
	r, srv := newTestRedis(t, "")
	srv.Close()

	assert.Error(t, r.Ping(context.Background()))
	_, ok, err := r.Get("themeMode")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, r.Set("themeMode", "dark"))
}

func TestOpenRedis(t *testing.T) {
	srv := miniredis.RunT(t)
	s, err := Open(Options{Backend: "redis", RedisAddr: srv.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &Redis{}, s)
	require.NoError(t, s.(*Redis).Close())
}
