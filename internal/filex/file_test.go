package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	want := filepath.Join(tmp, "data", "nested")

	require.NoError(t, EnsureParentDir(filepath.Join(want, "dd.db")))

	fi, err := os.Stat(want)
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "dd.db")

	require.NoError(t, EnsureParentDir(path))
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureParentDir_SkipsSpecialNames(t *testing.T) {
	for _, p := range []string{"", ":memory:", "file:dd?mode=memory&cache=shared", "dd.db"} {
		require.NoError(t, EnsureParentDir(p), p)
	}
}

func TestEnsureParentDir_FileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	require.Error(t, EnsureParentDir(filepath.Join(blocker, "dd.db")))
}
