package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	name    string
	pingErr error
	closed  bool
}

func (f *fakeClient) Name() string                 { return f.name }
func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }
func (f *fakeClient) Close() error                 { f.closed = true; return nil }
func (f *fakeClient) Health() HealthChecker        { return func() error { return f.pingErr } }

func TestManager_RegisterDuplicate(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Register(&fakeClient{name: "postgres"}))
	err := m.Register(&fakeClient{name: "postgres"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestManager_HealthCheck(t *testing.T) {
	m := NewManager()
	down := errors.New("connection refused")
	require.NoError(t, m.Register(&fakeClient{name: "postgres"}))
	require.NoError(t, m.Register(&fakeClient{name: "redis", pingErr: down}))

	results := m.HealthCheck(context.Background())
	assert.NoError(t, results["postgres"])
	assert.ErrorIs(t, results["redis"], down)
}

func TestManager_CloseAll(t *testing.T) {
	m := NewManager()
	c1 := &fakeClient{name: "postgres"}
	c2 := &fakeClient{name: "redis"}
	require.NoError(t, m.Register(c1))
	require.NoError(t, m.Register(c2))

	m.CloseAll()
	assert.True(t, c1.closed)
	assert.True(t, c2.closed)

	_, ok := m.Get("postgres")
	assert.False(t, ok)
}
