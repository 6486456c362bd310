package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// startFiles runs Files in the background and returns the change channel.
func startFiles(t *testing.T, paths ...string) <-chan string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	changed := make(chan string, 64)
	done := make(chan error, 1)
	go func() {
		done <- Files(ctx, paths, func(p string) { changed <- p })
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop after cancel")
		}
	})

	return changed
}

// awaitChange repeats touch until the watcher reports want. The watcher
// registers asynchronously, so a single touch may land before it listens.
func awaitChange(t *testing.T, changed <-chan string, want string, touch func()) {
	t.Helper()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case got := <-changed:
			if got == want {
				return
			}
		case <-tick.C:
			touch()
		case <-deadline:
			t.Fatalf("no change reported for %s", want)
		}
	}
}

func drain(changed <-chan string) {
	for {
		select {
		case <-changed:
		case <-time.After(100 * time.Millisecond):
			return
		}
	}
}

func TestFiles_ReportsWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o600))

	changed := startFiles(t, path)
	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o600))
	})
}

func TestFiles_FollowsAtomicSaves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	tmp := filepath.Join(dir, "in.csv.tmp")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o600))

	changed := startFiles(t, path)

	// Replace the file by renaming a new one over it.
	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(tmp, []byte("1\n3\n"), 0o600))
		require.NoError(t, os.Rename(tmp, path))
	})
	drain(changed)

	// The replacement is tracked too.
	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("1\n4\n"), 0o600))
	})
}

func TestFiles_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	other := filepath.Join(dir, "other.csv")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0o600))

	changed := startFiles(t, path)
	awaitChange(t, changed, path, func() {
		require.NoError(t, os.WriteFile(path, []byte("1\n2\n"), 0o600))
	})
	drain(changed)

	require.NoError(t, os.WriteFile(other, []byte("5\n"), 0o600))
	select {
	case got := <-changed:
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFiles_MissingPath(t *testing.T) {
	err := Files(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, func(string) {})
	require.Error(t, err)
}
