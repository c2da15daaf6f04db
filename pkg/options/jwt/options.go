// Package jwt provides JWT configuration options for Haven.
//
// Configuration example (YAML):
//
//	jwt:
//	  key: "your-secret-key-min-32-chars-long"
//	  signing-method: "HS256"
//	  expired: "24h"
//	  max-refresh: "168h"
//	  issuer: "haven"
package jwt

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

const (
	// DefaultSigningMethod is the default JWT signing algorithm.
	DefaultSigningMethod = "HS256"

	// DefaultExpired is the default token expiration time.
	DefaultExpired = 24 * time.Hour

	// DefaultMaxRefresh is the default maximum refresh duration.
	DefaultMaxRefresh = 7 * 24 * time.Hour

	// DefaultIssuer is the default token issuer.
	DefaultIssuer = "haven"

	// MinKeyLength is the minimum required key length for HMAC keys.
	MinKeyLength = 32
)

// SupportedSigningMethods contains all supported JWT signing algorithms.
var SupportedSigningMethods = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

// Options contains JWT configuration.
type Options struct {
	// Key is the HMAC secret used to sign tokens.
	Key string `json:"-" mapstructure:"key"`

	// SigningMethod is the JWT signing algorithm (HS256, HS384, HS512).
	SigningMethod string `json:"signing-method" mapstructure:"signing-method"`

	// Expired is the token expiration duration.
	Expired time.Duration `json:"expired" mapstructure:"expired"`

	// MaxRefresh is the window after original issue during which a token
	// can be refreshed without re-authenticating.
	MaxRefresh time.Duration `json:"max-refresh" mapstructure:"max-refresh"`

	// Issuer is the token issuer (iss claim).
	Issuer string `json:"issuer" mapstructure:"issuer"`
}

// NewOptions creates a new Options with default values.
func NewOptions() *Options {
	return &Options{
		SigningMethod: DefaultSigningMethod,
		Expired:       DefaultExpired,
		MaxRefresh:    DefaultMaxRefresh,
		Issuer:        DefaultIssuer,
	}
}

// Validate validates the JWT options.
func (o *Options) Validate() error {
	if !SupportedSigningMethods[o.SigningMethod] {
		return fmt.Errorf("unsupported signing method: %s", o.SigningMethod)
	}
	if o.Key == "" {
		return fmt.Errorf("jwt key is required")
	}
	if len(o.Key) < MinKeyLength {
		return fmt.Errorf("jwt key must be at least %d characters, got: %d", MinKeyLength, len(o.Key))
	}
	if o.Expired <= 0 {
		return fmt.Errorf("expired must be positive, got: %v", o.Expired)
	}
	if o.MaxRefresh < o.Expired {
		return fmt.Errorf("max-refresh (%v) must be >= expired (%v)", o.MaxRefresh, o.Expired)
	}
	return nil
}

// Complete fills in default values for unset fields.
func (o *Options) Complete() error {
	if o.SigningMethod == "" {
		o.SigningMethod = DefaultSigningMethod
	}
	if o.Expired == 0 {
		o.Expired = DefaultExpired
	}
	if o.MaxRefresh == 0 {
		o.MaxRefresh = DefaultMaxRefresh
	}
	if o.Issuer == "" {
		o.Issuer = DefaultIssuer
	}
	return nil
}

// AddFlags adds flags for JWT options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Key, "jwt.key", o.Key, "JWT signing key (min 32 chars)")
	fs.StringVar(&o.SigningMethod, "jwt.signing-method", o.SigningMethod, "JWT signing algorithm (HS256, HS384, HS512)")
	fs.DurationVar(&o.Expired, "jwt.expired", o.Expired, "JWT token expiration duration")
	fs.DurationVar(&o.MaxRefresh, "jwt.max-refresh", o.MaxRefresh, "Maximum duration a token can be refreshed")
	fs.StringVar(&o.Issuer, "jwt.issuer", o.Issuer, "JWT token issuer (iss claim)")
}
