package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/shelflife/internal/store"
)

// TestToday is the date the test CLI passes as --today.
const TestToday = "2024-06-10"

// CLI provides a clean interface for running CLI commands in tests.
// It manages a temp directory, environment variables and a fixed today.
type CLI struct {
	t     *testing.T
	Dir   string
	Env   map[string]string
	Today string
}

// NewCLI creates a test CLI with a temp directory, the default password in
// SHELF_SECRET and today fixed to [TestToday].
func NewCLI(t *testing.T) *CLI {
	t.Helper()

	return &CLI{
		t:     t,
		Dir:   t.TempDir(),
		Env:   map[string]string{SecretEnv: store.DefaultSecret},
		Today: TestToday,
	}
}

func (r *CLI) args(args []string) []string {
	full := []string{"shelf", "--cwd", r.Dir}
	if r.Today != "" {
		full = append(full, "--today", r.Today)
	}

	return append(full, args...)
}

// Run executes the CLI with the given args and returns stdout, stderr, and exit code.
// Args should not include "shelf", "--cwd" or "--today"; those are added automatically.
func (r *CLI) Run(args ...string) (string, string, int) {
	var outBuf, errBuf bytes.Buffer

	code := Run(nil, &outBuf, &errBuf, r.args(args), r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// RunWithInput executes the CLI with stdin and returns stdout, stderr, and exit code.
// stdin must be a string or io.Reader; panics otherwise.
func (r *CLI) RunWithInput(stdin any, args ...string) (string, string, int) {
	var inReader io.Reader

	switch v := stdin.(type) {
	case string:
		inReader = strings.NewReader(v)
	case io.Reader:
		inReader = v
	default:
		panic(fmt.Sprintf("stdin must be string or io.Reader, got %T", stdin))
	}

	var outBuf, errBuf bytes.Buffer

	code := Run(inReader, &outBuf, &errBuf, r.args(args), r.Env, nil)

	return outBuf.String(), errBuf.String(), code
}

// MustRun executes the CLI and fails the test if the command returns non-zero.
// Returns trimmed stdout on success.
func (r *CLI) MustRun(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code != 0 {
		r.t.Fatalf("command %v failed with exit code %d\nstderr: %s", args, code, stderr)
	}

	return strings.TrimSpace(stdout)
}

// MustFail executes the CLI and fails the test if the command succeeds.
// Also fails if stdout is not empty. Returns trimmed stderr.
func (r *CLI) MustFail(args ...string) string {
	r.t.Helper()

	stdout, stderr, code := r.Run(args...)
	if code == 0 {
		r.t.Fatalf("command %v should have failed but succeeded\nstdout: %s", args, stdout)
	}

	if stdout != "" {
		r.t.Fatalf("command %v failed but stdout should be empty\nstdout: %s", args, stdout)
	}

	return strings.TrimSpace(stderr)
}

// DataDir returns the path to the default .shelf directory.
func (r *CLI) DataDir() string {
	return filepath.Join(r.Dir, ".shelf")
}

// ReadSlot returns the raw contents of a file-backend slot.
func (r *CLI) ReadSlot(key string) string {
	r.t.Helper()

	content, err := os.ReadFile(filepath.Join(r.DataDir(), key))
	if err != nil {
		r.t.Fatalf("failed to read slot %s: %v", key, err)
	}

	return string(content)
}

// WriteSlot replaces a file-backend slot.
func (r *CLI) WriteSlot(key, content string) {
	r.t.Helper()

	err := os.MkdirAll(r.DataDir(), 0o750)
	if err != nil {
		r.t.Fatalf("failed to create data dir: %v", err)
	}

	err = os.WriteFile(filepath.Join(r.DataDir(), key), []byte(content), 0o600)
	if err != nil {
		r.t.Fatalf("failed to write slot %s: %v", key, err)
	}
}

// AssertContains fails the test if content doesn't contain substr.
func AssertContains(t *testing.T, content, substr string) {
	t.Helper()

	if !strings.Contains(content, substr) {
		t.Errorf("content should contain %q\ncontent:\n%s", substr, content)
	}
}

// AssertNotContains fails the test if content contains substr.
func AssertNotContains(t *testing.T, content, substr string) {
	t.Helper()

	if strings.Contains(content, substr) {
		t.Errorf("content should NOT contain %q\ncontent:\n%s", substr, content)
	}
}
