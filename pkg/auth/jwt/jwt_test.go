package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kart-io/haven/pkg/errors"
	jwtopts "github.com/kart-io/haven/pkg/options/jwt"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newManager(t *testing.T, mutate func(*jwtopts.Options)) *Manager {
	t.Helper()
	opts := jwtopts.NewOptions()
	opts.Key = testKey
	if mutate != nil {
		mutate(opts)
	}
	m, err := New(opts)
	require.NoError(t, err)
	return m
}

func TestNew_RejectsShortKey(t *testing.T) {
	opts := jwtopts.NewOptions()
	opts.Key = "short"
	_, err := New(opts)
	require.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	m := newManager(t, nil)
	ctx := context.Background()

	token, err := m.Sign(ctx, "user-123")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.NotEmpty(t, token.AccessToken)
	assert.Positive(t, token.ExpiresIn)

	claims, err := m.Verify(ctx, token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "haven", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestVerify_Empty(t *testing.T) {
	m := newManager(t, nil)
	_, err := m.Verify(context.Background(), "")
	assert.True(t, errors.IsCode(err, errors.ErrInvalidToken.Code))
}

func TestVerify_Tampered(t *testing.T) {
	m := newManager(t, nil)
	ctx := context.Background()

	token, err := m.Sign(ctx, "user-123")
	require.NoError(t, err)

	other := newManager(t, func(o *jwtopts.Options) {
		o.Key = "ffffffffffffffffffffffffffffffff"
	})
	_, err = other.Verify(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrInvalidToken.Code))
}

func TestVerify_Expired(t *testing.T) {
	m := newManager(t, func(o *jwtopts.Options) {
		o.Expired = time.Millisecond
		o.MaxRefresh = time.Hour
	})
	ctx := context.Background()

	token, err := m.Sign(ctx, "user-123")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = m.Verify(ctx, token.AccessToken)
	assert.True(t, errors.IsCode(err, errors.ErrTokenExpired.Code))
}

func TestRefresh_ExpiredTokenWithinWindow(t *testing.T) {
	m := newManager(t, func(o *jwtopts.Options) {
		o.Expired = time.Millisecond
		o.MaxRefresh = time.Hour
	})
	ctx := context.Background()

	token, err := m.Sign(ctx, "user-123")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	fresh, err := m.Refresh(ctx, token.AccessToken)
	require.NoError(t, err)

	claims, err := m.Verify(ctx, fresh.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
}
