package recovery

import (
	"path/filepath"
	"runtime"
)

// fixturesDir returns the absolute path to the repo's fixtures directory.
func fixturesDir() string {
	_, f, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(f), "..", "..", "fixtures")
}

// fixturePath joins a fixture file name onto fixturesDir.
func fixturePath(name string) string {
	return filepath.Join(fixturesDir(), name)
}
