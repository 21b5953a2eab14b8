package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/loop-heist/internal/config"
	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.heist/host_key.
	HostKeyPath string

	// DBPath is the path to the records database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// FrameRate is the host frame rate of every session.
	FrameRate int

	// MaxSessions caps concurrent players. Each session runs its own
	// simulation. Zero means no limit.
	MaxSessions int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.heist/records.db",
		IdleTimeout: 30 * time.Minute,
		FrameRate:   core.DefaultConfig().FrameRate,
		MaxSessions: 32,
	}
}

// SSHServer wraps a Wish SSH server. Every session plays its own run of
// the same catalog; results go to one shared store.
type SSHServer struct {
	config    SSHServerConfig
	catalog   *level.Catalog
	game      config.GameConfig
	server    *ssh.Server
	store     *storage.Store
	submitter *storage.Submitter
	logger    *log.Logger
	active    atomic.Int32
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, catalog *level.Catalog, game config.GameConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "heist-ssh",
	})

	srv := &SSHServer{
		config:  cfg,
		catalog: catalog,
		game:    game,
		logger:  logger,
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open records database", "error", err)
		// Continue without storage
	} else {
		srv.store = store
		srv.submitter = storage.NewSubmitter(store, logger, 0)
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			srv.closeStore()
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".heist", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
			srv.limitMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionOptions builds the options of one session's game.
func (s *SSHServer) sessionOptions(user string, width, height int) Options {
	return Options{
		Catalog: s.catalog,
		Config:  s.game,
		Runtime: core.RuntimeConfig{
			ScreenW:   width,
			ScreenH:   height,
			FrameRate: s.config.FrameRate,
		},
		Handle:    user,
		Store:     s.store,
		Submitter: s.submitter,
		Logger:    s.logger.With("user", user),
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Println(sshSession, "Loop Heist needs a terminal, try: ssh -t")
		return nil, nil
	}

	model, err := NewModel(s.sessionOptions(sshSession.User(), pty.Window.Width, pty.Window.Height))
	if err != nil {
		s.logger.Error("cannot start session", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// limitMiddleware turns sessions away once MaxSessions players are in.
// Wish runs middleware last to first, so this sees the session before
// the game starts.
func (s *SSHServer) limitMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		if !s.acquire() {
			s.logger.Warn("session refused, server full",
				"user", sshSession.User(),
				"active", s.ActiveSessions(),
			)
			wish.Fatalln(sshSession, "The vault is crowded, try again in a minute.")
			return
		}
		defer s.release()
		next(sshSession)
	}
}

// acquire reserves a session slot.
func (s *SSHServer) acquire() bool {
	n := s.active.Add(1)
	if s.config.MaxSessions > 0 && int(n) > s.config.MaxSessions {
		s.active.Add(-1)
		return false
	}
	return true
}

func (s *SSHServer) release() {
	s.active.Add(-1)
}

// ActiveSessions returns the number of players connected.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server",
		"address", s.config.Address,
		"levels", s.catalog.Len(),
		"max_sessions", s.config.MaxSessions,
		"records", s.store != nil,
	)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server and flushes pending results.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.submitter != nil {
		s.submitter.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
