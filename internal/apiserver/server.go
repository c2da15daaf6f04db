package apiserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	"gorm.io/gorm"

	"github.com/kart-io/haven/internal/apiserver/biz"
	"github.com/kart-io/haven/internal/apiserver/handler"
	"github.com/kart-io/haven/internal/apiserver/router"
	"github.com/kart-io/haven/internal/apiserver/store"
	"github.com/kart-io/haven/internal/pkg/guide"
	"github.com/kart-io/haven/pkg/auth/jwt"
	"github.com/kart-io/haven/pkg/component/postgres"
	"github.com/kart-io/haven/pkg/component/redis"
	"github.com/kart-io/haven/pkg/component/sqlite"
	"github.com/kart-io/haven/pkg/component/storage"
	"github.com/kart-io/haven/pkg/llm"
	"github.com/kart-io/haven/pkg/llm/resilience"

	// Register chat providers.
	_ "github.com/kart-io/haven/pkg/llm/gemini"
	_ "github.com/kart-io/haven/pkg/llm/ollama"
)

const shutdownTimeout = 10 * time.Second

// Server holds the assembled components of a running API server.
type Server struct {
	opts    *Options
	manager *storage.Manager
	loader  *guide.Loader
	engine  http.Handler
}

// NewServer assembles all components from the validated options.
func NewServer(opts *Options) (*Server, error) {
	manager := storage.NewManager()

	db, err := openDatabase(opts, manager)
	if err != nil {
		manager.CloseAll()
		return nil, err
	}

	factory := store.NewDatastore(db)
	if err := factory.AutoMigrate(); err != nil {
		manager.CloseAll()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	cache, err := openSummaryCache(opts, manager)
	if err != nil {
		manager.CloseAll()
		return nil, err
	}

	loader := guide.NewLoader(opts.Guide.Path)
	if err := loader.Refresh(); err != nil {
		// The advisor degrades to an error response until the guide appears.
		logger.Warnw("Guide document not loadable at startup", "path", opts.Guide.Path, "error", err)
	}

	// Without a credential the advisor and summaries answer with their
	// fallback paths, so the server still starts.
	hasCredential := opts.LLM.HasCredential()
	var chat llm.ChatProvider
	if hasCredential {
		provider, err := llm.NewChatProvider(opts.LLM.Provider, opts.LLM.ToConfigMap())
		if err != nil {
			manager.CloseAll()
			return nil, fmt.Errorf("create llm provider: %w", err)
		}
		chat = resilience.NewGuardedChatProvider(provider, resilience.DefaultConfig())
	} else {
		logger.Warnw("LLM credential missing, advisor and summaries run in fallback mode",
			"provider", opts.LLM.Provider)
	}

	jwtManager, err := jwt.New(opts.JWT)
	if err != nil {
		manager.CloseAll()
		return nil, fmt.Errorf("create jwt manager: %w", err)
	}

	entries := biz.NewEntryService(factory)
	tracking := biz.NewTrackingService(factory)
	conversations := biz.NewConversationService(factory, loader)
	advisor := biz.NewAdvisorService(factory, loader, conversations, chat, hasCredential)
	summaries := biz.NewSummaryService(factory, entries, chat, hasCredential, cache)
	auth := biz.NewAuthService(factory, jwtManager)

	mode := ginMode(opts)
	engine := router.New(router.Config{
		Mode:           mode,
		RequestTimeout: opts.HTTP.WriteTimeout,
		JWTManager:     jwtManager,
	}, router.Handlers{
		Health:   handler.NewHealthHandler(manager),
		Auth:     handler.NewAuthHandler(auth),
		Entry:    handler.NewEntryHandler(entries),
		Tracking: handler.NewTrackingHandler(tracking),
		Summary:  handler.NewSummaryHandler(summaries),
		Advisor:  handler.NewAdvisorHandler(advisor, conversations),
	})

	srv := &Server{opts: opts, manager: manager, loader: loader, engine: engine}
	return srv, nil
}

func openDatabase(opts *Options, manager *storage.Manager) (*gorm.DB, error) {
	switch opts.Storage.Engine {
	case EnginePostgres:
		client, err := postgres.New(opts.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := manager.Register(client); err != nil {
			return nil, err
		}
		return client.DB(), nil
	case EngineSQLite:
		client, err := sqlite.New(opts.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		if err := manager.Register(client); err != nil {
			return nil, err
		}
		return client.DB(), nil
	}
	return nil, fmt.Errorf("unsupported storage engine %q", opts.Storage.Engine)
}

func openSummaryCache(opts *Options, manager *storage.Manager) (*biz.SummaryCache, error) {
	if !opts.Cache.Enabled {
		return biz.NewSummaryCache(nil, &biz.SummaryCacheConfig{Enabled: false}), nil
	}
	client, err := redis.New(opts.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if err := manager.Register(client); err != nil {
		return nil, err
	}
	config := biz.DefaultSummaryCacheConfig()
	if opts.Cache.TTL > 0 {
		config.TTL = opts.Cache.TTL
	}
	return biz.NewSummaryCache(client.Client(), config), nil
}

// Run serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	defer s.manager.CloseAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if s.opts.Guide.Watch {
		go func() {
			if err := s.loader.Watch(ctx); err != nil {
				logger.Warnw("Guide watcher stopped", "error", err)
			}
		}()
	}

	httpServer := &http.Server{
		Addr:         s.opts.HTTP.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.opts.HTTP.ReadTimeout,
		WriteTimeout: s.opts.HTTP.WriteTimeout,
		IdleTimeout:  s.opts.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("HTTP server listening", "addr", s.opts.HTTP.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Infow("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func ginMode(opts *Options) string {
	if opts.Log.Development {
		return gin.DebugMode
	}
	return gin.ReleaseMode
}
