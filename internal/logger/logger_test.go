package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, INFO, ParseLevel("INFO"))
	assert.Equal(t, WARN, ParseLevel("WARN"))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("garbage"))
}

func TestLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := New(Config{Level: INFO, FilePath: path})
	require.NoError(t, err)
	defer l.Close()

	l.Info("hello", F("user", "u1"))
	l.Debug("filtered out")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[INFO] hello user=u1")
	assert.NotContains(t, string(data), "filtered out")
}

func TestLogger_RotatesAtMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := New(Config{Level: INFO, FilePath: path, MaxSize: 64})
	require.NoError(t, err)
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Info("an entry long enough to push the file past the size cap")
	}

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "a rotated backup must exist once the cap is crossed")
}

func TestLogger_LevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	l, err := New(Config{Level: ERROR, FilePath: path})
	require.NoError(t, err)
	defer l.Close()

	l.Warn("not logged")
	l.Error("logged")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "logged")
	assert.NotContains(t, string(data), "not logged")
}
