package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownFunc describes a graceful shutdown callback.
type ShutdownFunc func(ctx context.Context) error

type hook struct {
	name string
	fn   ShutdownFunc
}

// Manager tears down registered components in reverse registration
// order, so the HTTP server stops before the store client it depends on.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	hooks []hook
}

// New creates a lifecycle manager with the desired timeout.
func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger,
	}
}

// Register adds a shutdown hook. Nil hooks are ignored.
func (m *Manager) Register(name string, fn ShutdownFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, hook{name: name, fn: fn})
	m.mu.Unlock()
}

// Shutdown runs every hook under the configured timeout. A failing hook
// does not stop the remaining ones; their errors are joined.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	var result error
	for _, h := range m.snapshot() {
		result = errors.Join(result, m.runHook(ctx, h))
	}
	return result
}

// snapshot copies the hooks in teardown order without holding the lock
// while they run.
func (m *Manager) snapshot() []hook {
	m.mu.Lock()
	defer m.mu.Unlock()

	reversed := make([]hook, 0, len(m.hooks))
	for i := len(m.hooks) - 1; i >= 0; i-- {
		reversed = append(reversed, m.hooks[i])
	}
	return reversed
}

func (m *Manager) runHook(ctx context.Context, h hook) error {
	start := time.Now()
	if err := h.fn(ctx); err != nil {
		m.logger.Error("component shutdown failed",
			zap.String("component", h.name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
	m.logger.Info("component stopped",
		zap.String("component", h.name),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

// Listen invokes cancel once SIGTERM or SIGINT arrives.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("termination signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
