// Package testutil provides testing utilities for the arena packages
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

// TestLogger creates a test logger that writes to the test output.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// ObservedLogger creates a logger whose entries at or above level are kept
// in memory for assertions.
func ObservedLogger(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

// TestContext creates a test context with a 30-second timeout.
// The caller must call the returned cancel function to avoid leaks.
func TestContext(_ *testing.T) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// Suite provides a per-test context and scratch directory
type Suite struct {
	suite.Suite
	ctx     context.Context
	cancel  context.CancelFunc
	tempDir string
}

// SetupTest runs before each test in the suite
func (s *Suite) SetupTest() {
	s.ctx, s.cancel = TestContext(s.T())
	s.tempDir = s.T().TempDir()
}

// TearDownTest runs after each test in the suite
func (s *Suite) TearDownTest() {
	s.cancel()
}

// Context returns the test context
func (s *Suite) Context() context.Context {
	return s.ctx
}

// Path returns name joined to the test's scratch directory
func (s *Suite) Path(name string) string {
	return filepath.Join(s.tempDir, name)
}

// WriteFile creates a file in the scratch directory and returns its path
func (s *Suite) WriteFile(name string, content []byte) string {
	path := s.Path(name)
	s.Require().NoError(os.WriteFile(path, content, 0o600))
	return path
}
