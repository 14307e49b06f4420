package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHelper runs srco commands against a temporary working tree.
type TestHelper struct {
	t   *testing.T
	dir string
}

// NewTestHelper creates a helper rooted in a fresh temp directory. Identity
// variables are pinned so commit and tag digests are reproducible.
func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	t.Setenv("SRCO_AUTHOR_NAME", "Test User")
	t.Setenv("SRCO_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("SRCO_AUTHOR_DATE", "1700000000")

	return &TestHelper{t: t, dir: t.TempDir()}
}

// Dir returns the working tree root.
func (th *TestHelper) Dir() string {
	return th.dir
}

// InitRepo runs "srco init" in the working tree.
func (th *TestHelper) InitRepo() {
	th.t.Helper()
	th.MustRun("init")
}

// WriteFile creates a file, and its parents, below the working tree.
func (th *TestHelper) WriteFile(name, content string) string {
	th.t.Helper()

	p := filepath.Join(th.dir, filepath.FromSlash(name))
	require.NoError(th.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(th.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

// Run executes srco with -C pointed at the working tree.
func (th *TestHelper) Run(args ...string) (string, error) {
	return th.RunWithInput("", args...)
}

// RunWithInput is Run with stdin set to input.
func (th *TestHelper) RunWithInput(input string, args ...string) (string, error) {
	th.t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(append([]string{"-C", th.dir}, args...))

	err := cmd.Execute()
	return out.String(), err
}

// MustRun runs srco and fails the test on error. The trimmed output is
// returned.
func (th *TestHelper) MustRun(args ...string) string {
	th.t.Helper()

	out, err := th.Run(args...)
	require.NoError(th.t, err, "srco %s: %s", strings.Join(args, " "), out)
	return strings.TrimSpace(out)
}
