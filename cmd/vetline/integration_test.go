package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	expect "github.com/Netflix/go-expect"
	"github.com/stretchr/testify/require"
)

// buildVetlineBinary compiles cmd/vetline into dir and returns its path.
// Skips the test if the go toolchain isn't available in the environment
// running it.
func buildVetlineBinary(t *testing.T, dir string) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skip("go toolchain not available, skipping pty integration test")
	}
	bin := filepath.Join(dir, "vetline")
	cmd := exec.Command("go", "build", "-o", bin, ".")
	cmd.Dir = "."
	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "building vetline: %s", out)
	return bin
}

// TestRouteCommandOverPTY drives the built binary through a real pty, the
// way an interactive shell would invoke it, mirroring the teacher's
// tests/expect package's shell-session style but against vetline's own
// CLI rather than a live shell.
func TestRouteCommandOverPTY(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping pty integration test in short mode")
	}

	bin := buildVetlineBinary(t, t.TempDir())

	console, err := expect.NewConsole(expect.WithDefaultTimeout(5 * time.Second))
	require.NoError(t, err)
	defer console.Close()

	cmd := exec.Command(bin, "route", "--url", "/users/123/profile")
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()
	cmd.Env = os.Environ()

	require.NoError(t, cmd.Start())

	output, err := console.ExpectString("/users/:number/profile")
	require.NoErrorf(t, err, "output so far: %s", output)

	require.NoError(t, cmd.Wait())
}

// TestSQLScanCommandOverPTY exercises sql-scan end to end, confirming the
// CLI surfaces a detected verdict for a classic tautology injection.
func TestSQLScanCommandOverPTY(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping pty integration test in short mode")
	}

	bin := buildVetlineBinary(t, t.TempDir())

	console, err := expect.NewConsole(expect.WithDefaultTimeout(5 * time.Second))
	require.NoError(t, err)
	defer console.Close()

	cmd := exec.Command(bin, "sql-scan",
		"--query", "SELECT * FROM users WHERE id = 1 OR 1=1 --",
		"--input", "1 OR 1=1 --",
	)
	cmd.Stdin = console.Tty()
	cmd.Stdout = console.Tty()
	cmd.Stderr = console.Tty()
	cmd.Env = os.Environ()

	require.NoError(t, cmd.Start())

	output, err := console.ExpectString("detected: true")
	require.NoErrorf(t, err, "output so far: %s", output)

	require.NoError(t, cmd.Wait())
}
