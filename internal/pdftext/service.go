package pdftext

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrToolUnavailable marks a missing pdftotext binary. Callers disable
// plaintext extraction for the remainder of the run when they see it.
var ErrToolUnavailable = errors.New("tool unavailable")

// DefaultBinary is the pdftotext executable name used when none is
// configured.
const DefaultBinary = "pdftotext"

// Service extracts plaintext from a statute PDF rendition by shelling out
// to pdftotext.
type Service struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewService creates a Service using the given pdftotext binary.
func NewService(binary string) *Service {
	if strings.TrimSpace(binary) == "" {
		binary = DefaultBinary
	}
	return &Service{binary: binary}
}

// WithCommandRunner sets a custom command runner (for testing).
func (s *Service) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) *Service {
	s.commandRunner = runner
	return s
}

// Extract runs pdftotext against the rendition URL, writing plaintext to
// outputPath. A missing binary is reported as ErrToolUnavailable; any other
// failure is an ordinary extraction error.
func (s *Service) Extract(ctx context.Context, pdfURL, outputPath string) error {
	if pdfURL == "" {
		return fmt.Errorf("pdftotext: rendition url required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("pdftotext: ensure output dir: %w", err)
	}

	if s.commandRunner != nil {
		return s.classify(s.commandRunner(ctx, s.binary, pdfURL, outputPath))
	}

	cmd := exec.CommandContext(ctx, s.binary, pdfURL, outputPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return s.classify(fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output))))
	}
	return nil
}

func (s *Service) classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: binary %q: %v", ErrToolUnavailable, s.binary, err)
	}
	return fmt.Errorf("pdftotext: %w", err)
}
