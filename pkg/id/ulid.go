// Package id generates ULID identifiers for Haven records.
//
// ULIDs are lexicographically sortable, so primary keys generated here sort
// in creation order without a separate sequence column.
package id

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator produces monotonic ULIDs. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator creates a Generator backed by crypto/rand.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate returns a new ULID string.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

var defaultGenerator = NewGenerator()

// New returns a ULID from the package-level generator.
func New() string {
	return defaultGenerator.Generate()
}

// IsValid reports whether s parses as a ULID.
func IsValid(s string) bool {
	_, err := ulid.ParseStrict(s)
	return err == nil
}

// Time returns the embedded timestamp of a ULID, or the zero time if s is
// not a valid ULID.
func Time(s string) time.Time {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
