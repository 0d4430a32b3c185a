package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/subc/codegen"
)

func TestTargetFromEnv(t *testing.T) {
	t.Setenv("TARGET", "mac")
	assert.Equal(t, codegen.Darwin, targetFromEnv())

	t.Setenv("TARGET", "linux")
	assert.Equal(t, codegen.Linux, targetFromEnv())

	os.Unsetenv("TARGET")
	assert.Equal(t, codegen.Linux, targetFromEnv())
}

func TestReadSourceFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.sc")
	require.NoError(t, err)
	_, err = f.WriteString(`main() { return 0; }`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	src, err := readSource([]string{f.Name()})
	require.NoError(t, err)
	assert.Contains(t, src, "main()")
}

func TestReadSourceFallsBackToStdin(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	_, err = w.WriteString(`main() { return 1; }`)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	old := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = old }()

	src, err := readSource(nil)
	require.NoError(t, err)
	assert.Equal(t, `main() { return 1; }`, src)
}

func TestReadSourceRejectsMultiplePositionalArgs(t *testing.T) {
	_, err := readSource([]string{"a", "b"})
	assert.Error(t, err)
}

func TestRunPrintsAssemblyWithoutCompileFlag(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.sc")
	require.NoError(t, err)
	_, err = f.WriteString(`main() { return 42; }`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	stdout := captureStdout(t, func() {
		code := run([]string{f.Name()})
		assert.Equal(t, 0, code)
	})
	assert.Contains(t, stdout, "main:")
}

func TestRunReportsCompileErrors(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.sc")
	require.NoError(t, err)
	_, err = f.WriteString(`main() { break; }`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	code := run([]string{f.Name()})
	assert.Equal(t, 1, code)
}

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old

	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}
