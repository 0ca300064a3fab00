package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/logging"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

const shutdownGrace = 10 * time.Second

// SSHServerConfig configures the arena SSH server.
type SSHServerConfig struct {
	Address     string // host:port, ":23234" by default
	HostKeyPath string // generated under ~/.tanks when empty
	DBPath      string
	IdleTimeout time.Duration
	TickRate    int
	Hold        time.Duration // see HeldKeys
	Logger      *log.Logger   // nil logs to stderr
}

// DefaultSSHServerConfig returns the configuration used by "tanks serve".
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.tanks/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Hold:        DefaultHold,
	}
}

// SSHServer serves one private arena per SSH session. Sessions share
// nothing but the score ledger.
type SSHServer struct {
	cfg    SSHServerConfig
	srv    *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer prepares the server and its host key directory. A ledger
// that cannot be opened is logged and the server runs without one.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.New(os.Stderr, "tanks-ssh", false)
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{cfg: cfg, logger: cfg.Logger}
	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("running without a score ledger", "error", err)
		s.store = nil
	}

	// Middleware runs last to first: log, require a terminal, then play.
	s.srv, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.session),
			activeterm.Middleware(),
			s.logSession,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".tanks", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// session builds the program for one connection, sized to its PTY.
func (s *SSHServer) session(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	user := sess.User()

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	model := NewSessionModel(s.store, cfg,
		WithPlayer(user),
		WithHold(s.cfg.Hold),
		WithLogger(s.logger.With("user", user)),
	)
	return model, []tea.ProgramOption{tea.WithAltScreen()}
}

func (s *SSHServer) logSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started")
		next(sess)
		l.Info("session ended", "duration", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.cfg.Address)

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	return s.Shutdown()
}

// Shutdown stops accepting sessions, waits up to shutdownGrace for the
// open ones and closes the ledger.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	err := s.srv.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("closing scores database", "error", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
