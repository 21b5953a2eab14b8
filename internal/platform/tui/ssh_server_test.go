package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func testSSHServer(t *testing.T, maxSessions int) *SSHServer {
	t.Helper()
	opts := testOptions(t, "a", "b")
	cfg := DefaultSSHServerConfig()
	cfg.MaxSessions = maxSessions
	return &SSHServer{
		config:  cfg,
		catalog: opts.Catalog,
		game:    opts.Config,
		logger:  log.New(io.Discard),
	}
}

func TestSSHSessionOptions(t *testing.T) {
	s := testSSHServer(t, 0)

	opts := s.sessionOptions("alice", 120, 40)
	if opts.Handle != "alice" {
		t.Errorf("Handle = %q, expected the SSH user", opts.Handle)
	}
	if opts.Runtime.ScreenW != 120 || opts.Runtime.ScreenH != 40 {
		t.Errorf("Runtime = %+v, expected the PTY size", opts.Runtime)
	}
	if opts.Runtime.FrameRate != s.config.FrameRate {
		t.Errorf("FrameRate = %d, expected %d", opts.Runtime.FrameRate, s.config.FrameRate)
	}
	if opts.Catalog != s.catalog || opts.Store != nil || opts.Submitter != nil {
		t.Error("session should share the server catalog and have no store")
	}

	if _, err := NewModel(opts); err != nil {
		t.Errorf("NewModel(sessionOptions) error = %v", err)
	}
}

func TestSSHSessionLimit(t *testing.T) {
	s := testSSHServer(t, 2)

	if !s.acquire() || !s.acquire() {
		t.Fatal("first two sessions should be admitted")
	}
	if s.acquire() {
		t.Error("third session should be refused")
	}
	if got := s.ActiveSessions(); got != 2 {
		t.Errorf("ActiveSessions() = %d, expected 2", got)
	}

	s.release()
	if !s.acquire() {
		t.Error("a freed slot should admit a new session")
	}
}

func TestSSHSessionNoLimit(t *testing.T) {
	s := testSSHServer(t, 0)

	for rep := 0; rep < 100; rep++ {
		if !s.acquire() {
			t.Fatal("zero MaxSessions should admit everyone")
		}
	}
	if got := s.ActiveSessions(); got != 100 {
		t.Errorf("ActiveSessions() = %d, expected 100", got)
	}
}
