package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, path string, args ...string) (string, int) {
	t.Helper()

	out := &bytes.Buffer{}
	argv := append([]string{"picklecache", "--path", path}, args...)
	code := realMain(argv, out)
	return out.String(), code
}

func TestSetGetDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.gob")

	out, code := run(t, path, "set", "apple", "banana")
	require.Equal(t, 0, code)
	assert.Equal(t, "ok\n", out)

	out, code = run(t, path, "get", "apple")
	require.Equal(t, 0, code)
	assert.Equal(t, "banana\n", out)

	out, code = run(t, path, "count")
	require.Equal(t, 0, code)
	assert.Equal(t, "1\n", out)

	_, code = run(t, path, "delete", "apple")
	require.Equal(t, 0, code)

	_, code = run(t, path, "get", "apple")
	assert.Equal(t, 1, code)

	_, code = run(t, path, "delete", "apple")
	assert.Equal(t, 1, code)
}

func TestKeysSorted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.json")

	for _, k := range []string{"pear", "apple", "fig"} {
		_, code := run(t, path, "--codec", "json", "set", k, "x")
		require.Equal(t, 0, code)
	}

	out, code := run(t, path, "--codec", "json", "keys")
	require.Equal(t, 0, code)
	assert.Equal(t, "apple\nfig\npear\n", out)
}

func TestInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.gob")

	out, code := run(t, path, "info")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "not written yet")

	_, code = run(t, path, "set", "apple", "banana")
	require.Equal(t, 0, code)

	out, code = run(t, path, "info")
	require.Equal(t, 0, code)
	assert.Contains(t, out, path)
	assert.Contains(t, out, "entries:  1")
	assert.True(t, strings.Contains(out, " B\n") || strings.Contains(out, " kB\n"), out)
}

func TestUsageErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datastore.gob")

	_, code := run(t, path, "set", "only-key")
	assert.Equal(t, 2, code)

	_, code = run(t, path, "--codec", "pickle", "count")
	assert.Equal(t, 2, code)
}
