// Package jwt provides JWT-based session tokens for Haven.
//
// Tokens are HMAC-signed with a shared secret. Verification rejects expired
// or tampered tokens; Refresh reissues a token as long as the original issue
// time is within the configured refresh window.
package jwt

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v4"

	"github.com/kart-io/haven/pkg/errors"
	jwtopts "github.com/kart-io/haven/pkg/options/jwt"
)

// Token is an issued access token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   int64  `json:"expires_at"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Claims are the verified contents of a token.
type Claims struct {
	Subject   string
	Issuer    string
	ExpiresAt int64
	IssuedAt  int64
	ID        string
}

// Manager signs and verifies session tokens.
type Manager struct {
	opts   *jwtopts.Options
	method gojwt.SigningMethod
}

// New creates a token Manager from the given options.
func New(opts *jwtopts.Options) (*Manager, error) {
	if opts == nil {
		opts = jwtopts.NewOptions()
	}
	if err := opts.Complete(); err != nil {
		return nil, fmt.Errorf("complete options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate options: %w", err)
	}

	method := gojwt.GetSigningMethod(opts.SigningMethod)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing method: %s", opts.SigningMethod)
	}

	return &Manager{opts: opts, method: method}, nil
}

// Sign creates a new token for the given subject.
func (m *Manager) Sign(ctx context.Context, subject string) (*Token, error) {
	now := time.Now()
	expiresAt := now.Add(m.opts.Expired)

	claims := gojwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    m.opts.Issuer,
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(expiresAt),
		NotBefore: gojwt.NewNumericDate(now),
		ID:        newTokenID(),
	}

	tokenString, err := gojwt.NewWithClaims(m.method, claims).SignedString([]byte(m.opts.Key))
	if err != nil {
		return nil, errors.ErrInternal.WithCause(err).WithMessage("failed to sign token")
	}

	return &Token{
		AccessToken: tokenString,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.Unix(),
		ExpiresIn:   int64(expiresAt.Sub(now).Seconds()),
	}, nil
}

// Verify validates the token and returns its claims.
func (m *Manager) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	return m.parse(tokenString, true)
}

// Refresh reissues a token as long as the original issue time is within the
// refresh window. The incoming token may already be expired.
func (m *Manager) Refresh(ctx context.Context, tokenString string) (*Token, error) {
	claims, err := m.parse(tokenString, false)
	if err != nil {
		return nil, err
	}

	issuedAt := time.Unix(claims.IssuedAt, 0)
	if time.Now().After(issuedAt.Add(m.opts.MaxRefresh)) {
		return nil, errors.ErrTokenExpired.WithMessage("token refresh window expired")
	}

	return m.Sign(ctx, claims.Subject)
}

// parse verifies signature and shape; claim validation (expiry, nbf) only
// runs when validate is true so Refresh can accept expired tokens.
func (m *Manager) parse(tokenString string, validate bool) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.ErrInvalidToken.WithMessage("token is empty")
	}

	keyFunc := func(token *gojwt.Token) (interface{}, error) {
		if token.Method.Alg() != m.method.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.opts.Key), nil
	}

	var token *gojwt.Token
	var err error
	registered := &gojwt.RegisteredClaims{}
	if validate {
		token, err = gojwt.ParseWithClaims(tokenString, registered, keyFunc)
	} else {
		parser := gojwt.NewParser(gojwt.WithoutClaimsValidation())
		token, err = parser.ParseWithClaims(tokenString, registered, keyFunc)
	}
	if err != nil {
		return nil, mapParseError(err)
	}
	if validate && !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	claims := &Claims{
		Subject: registered.Subject,
		Issuer:  registered.Issuer,
		ID:      registered.ID,
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Unix()
	}
	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Unix()
	}
	return claims, nil
}

// mapParseError maps golang-jwt validation errors onto Haven errnos.
func mapParseError(err error) *errors.Errno {
	var ve *gojwt.ValidationError
	if stderrors.As(err, &ve) {
		switch {
		case ve.Errors&gojwt.ValidationErrorExpired != 0:
			return errors.ErrTokenExpired
		case ve.Errors&gojwt.ValidationErrorSignatureInvalid != 0:
			return errors.ErrInvalidToken.WithMessage("invalid signature")
		case ve.Errors&gojwt.ValidationErrorMalformed != 0:
			return errors.ErrInvalidToken.WithMessage("malformed token")
		case ve.Errors&gojwt.ValidationErrorNotValidYet != 0:
			return errors.ErrInvalidToken.WithMessage("token not valid yet")
		}
	}
	return errors.ErrInvalidToken.WithCause(err)
}

// newTokenID generates a random token ID for the jti claim.
func newTokenID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
