package guide

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/kart-io/logger"
)

// Loader reads the guide document from disk and caches the derived text,
// sections, and chunks for the lifetime of the process. The cache is an
// explicit object rather than package state so callers and tests control
// staleness through Refresh.
type Loader struct {
	path string

	mu       sync.RWMutex
	text     string
	sections []Section
	chunks   []string
	loaded   bool
}

// NewLoader creates a Loader for the guide document at path. The file is not
// read until the first access or an explicit Refresh.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Refresh re-reads the document and rebuilds the cached derivations.
func (l *Loader) Refresh() error {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return fmt.Errorf("failed to read guide document: %w", err)
	}

	text := normalizeLineEndings(string(raw))

	l.mu.Lock()
	defer l.mu.Unlock()
	l.text = text
	l.sections = Sections(text)
	l.chunks = Chunks(text)
	l.loaded = true
	return nil
}

// ensure loads the document on first use.
func (l *Loader) ensure() error {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded {
		return nil
	}
	return l.Refresh()
}

// Text returns the full guide text.
func (l *Loader) Text() (string, error) {
	if err := l.ensure(); err != nil {
		return "", err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text, nil
}

// Sections returns the current section derivation in document order.
func (l *Loader) Sections() ([]Section, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Section, len(l.sections))
	copy(out, l.sections)
	return out, nil
}

// Chunks returns the current retrieval chunks.
func (l *Loader) Chunks() ([]string, error) {
	if err := l.ensure(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]string, len(l.chunks))
	copy(out, l.chunks)
	return out, nil
}

// Watch refreshes the cache whenever the guide file changes on disk. It
// blocks until ctx is cancelled and is intended to run in its own goroutine.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create guide watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(l.path); err != nil {
		return fmt.Errorf("failed to watch guide document: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := l.Refresh(); err != nil {
				logger.Warnw("failed to refresh guide after file change", "path", l.path, "error", err.Error())
				continue
			}
			logger.Infow("guide document reloaded", "path", l.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnw("guide watcher error", "path", l.path, "error", err.Error())
		}
	}
}

// normalizeLineEndings converts CR/CRLF to LF and tabs to two spaces, then
// trims the document.
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.ReplaceAll(text, "\t", "  ")
	return strings.TrimSpace(text)
}
