// Package apiserver wires the Haven API server: options, component setup,
// route registration, and the serving loop.
package apiserver

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	jwtopts "github.com/kart-io/haven/pkg/options/jwt"
	llmopts "github.com/kart-io/haven/pkg/options/llm"
	logopts "github.com/kart-io/haven/pkg/options/logger"
	pgopts "github.com/kart-io/haven/pkg/options/postgres"
	redisopts "github.com/kart-io/haven/pkg/options/redis"
	httpopts "github.com/kart-io/haven/pkg/options/server/http"
	sqliteopts "github.com/kart-io/haven/pkg/options/sqlite"
)

// Storage engines.
const (
	EnginePostgres = "postgres"
	EngineSQLite   = "sqlite"
)

// GuideOptions configures the recovery guide document.
type GuideOptions struct {
	// Path is the guide markdown file.
	Path string `json:"path" mapstructure:"path"`
	// Watch reloads the guide when the file changes on disk.
	Watch bool `json:"watch" mapstructure:"watch"`
}

// AddFlags adds guide flags to the flagset.
func (o *GuideOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Path, "guide.path", o.Path, "Path to the recovery guide markdown document")
	fs.BoolVar(&o.Watch, "guide.watch", o.Watch, "Reload the guide when the file changes")
}

// Validate validates the guide options.
func (o *GuideOptions) Validate() error {
	if o.Path == "" {
		return fmt.Errorf("guide.path is required")
	}
	return nil
}

// StorageOptions selects the relational backend.
type StorageOptions struct {
	// Engine is "postgres" or "sqlite".
	Engine string `json:"engine" mapstructure:"engine"`
}

// AddFlags adds storage flags to the flagset.
func (o *StorageOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Engine, "storage.engine", o.Engine, "Relational backend: postgres or sqlite")
}

// Validate validates the storage options.
func (o *StorageOptions) Validate() error {
	switch o.Engine {
	case EnginePostgres, EngineSQLite:
		return nil
	}
	return fmt.Errorf("unsupported storage engine %q", o.Engine)
}

// CacheOptions configures the redis summary cache.
type CacheOptions struct {
	// Enabled turns the redis cache on.
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// TTL is how long cached summaries stay valid.
	TTL time.Duration `json:"ttl" mapstructure:"ttl"`
}

// AddFlags adds cache flags to the flagset.
func (o *CacheOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&o.Enabled, "cache.enabled", o.Enabled, "Enable the redis summary cache")
	fs.DurationVar(&o.TTL, "cache.ttl", o.TTL, "Summary cache TTL")
}

// Options contains all Haven API server options.
type Options struct {
	HTTP     *httpopts.Options        `json:"http" mapstructure:"http"`
	Log      *logopts.Options         `json:"log" mapstructure:"log"`
	Storage  *StorageOptions          `json:"storage" mapstructure:"storage"`
	Postgres *pgopts.Options          `json:"postgres" mapstructure:"postgres"`
	SQLite   *sqliteopts.Options      `json:"sqlite" mapstructure:"sqlite"`
	Cache    *CacheOptions            `json:"cache" mapstructure:"cache"`
	Redis    *redisopts.Options       `json:"redis" mapstructure:"redis"`
	JWT      *jwtopts.Options         `json:"jwt" mapstructure:"jwt"`
	LLM      *llmopts.ProviderOptions `json:"llm" mapstructure:"llm"`
	Guide    *GuideOptions            `json:"guide" mapstructure:"guide"`
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:     httpopts.NewOptions(),
		Log:      logopts.NewOptions(),
		Storage:  &StorageOptions{Engine: EngineSQLite},
		Postgres: pgopts.NewOptions(),
		SQLite:   sqliteopts.NewOptions(),
		Cache:    &CacheOptions{Enabled: false, TTL: 24 * time.Hour},
		Redis:    redisopts.NewOptions(),
		JWT:      jwtopts.NewOptions(),
		LLM:      llmopts.NewProviderOptions(),
		Guide:    &GuideOptions{Path: "documents/recovery-guide.md"},
	}
}

// AddFlags adds all server flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Storage.AddFlags(fs)
	o.Postgres.AddFlags(fs)
	o.SQLite.AddFlags(fs)
	o.Cache.AddFlags(fs)
	o.Redis.AddFlags(fs)
	o.JWT.AddFlags(fs)
	o.LLM.AddFlags(fs)
	o.Guide.AddFlags(fs)
}

// Complete fills in derived and environment-sourced values.
func (o *Options) Complete() error {
	if err := o.HTTP.Complete(); err != nil {
		return err
	}
	if err := o.Log.Complete(); err != nil {
		return err
	}
	if err := o.JWT.Complete(); err != nil {
		return err
	}
	return o.LLM.Complete()
}

// Validate validates all options.
func (o *Options) Validate() error {
	for _, err := range o.HTTP.Validate() {
		if err != nil {
			return err
		}
	}
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if err := o.Storage.Validate(); err != nil {
		return err
	}
	switch o.Storage.Engine {
	case EnginePostgres:
		if err := o.Postgres.Validate(); err != nil {
			return err
		}
	case EngineSQLite:
		if err := o.SQLite.Validate(); err != nil {
			return err
		}
	}
	if o.Cache.Enabled {
		if err := o.Redis.Validate(); err != nil {
			return err
		}
	}
	if err := o.JWT.Validate(); err != nil {
		return err
	}
	for _, err := range o.LLM.Validate() {
		if err != nil {
			return err
		}
	}
	return o.Guide.Validate()
}
