// Package sqlite provides SQLite configuration options.
package sqlite

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Options defines configuration options for SQLite.
type Options struct {
	// Path is the database file path. The special value ":memory:" opens an
	// in-memory database, which is what the test suites use.
	Path string `json:"path" mapstructure:"path"`

	// LogLevel mirrors the postgres option (1=silent, 2=error, 3=warn, 4=info).
	LogLevel int `json:"log-level" mapstructure:"log-level"`
}

// NewOptions creates a new Options object with default values.
func NewOptions() *Options {
	return &Options{
		Path:     "haven.db",
		LogLevel: 1,
	}
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	if o.Path == "" {
		return fmt.Errorf("sqlite.path is required")
	}
	return nil
}

// AddFlags adds flags for SQLite options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Path, "sqlite.path", o.Path, "SQLite database file path (:memory: for in-memory)")
	fs.IntVar(&o.LogLevel, "sqlite.log-level", o.LogLevel, "SQLite log level (1=silent, 2=error, 3=warn, 4=info)")
}
