package util

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
)

var (
	projectRootDir     string
	projectRootDirOnce sync.Once
)

// GetProjectRootDir returns the path as string to the project_root for the **current executing binary**.
// If the env var PROJECT_ROOT_DIR is set it is used, otherwise the root is derived from the location
// of this source file, which only works while running from a checkout (go test, go run).
func GetProjectRootDir() string {
	projectRootDirOnce.Do(func() {
		if val, ok := os.LookupEnv("PROJECT_ROOT_DIR"); ok {
			projectRootDir = val
			return
		}

		_, b, _, _ := runtime.Caller(0)
		projectRootDir = filepath.Join(filepath.Dir(b), "../..")
	})

	return projectRootDir
}

// RunningInTest reports whether the current binary was built by "go test".
func RunningInTest() bool {
	return strings.HasSuffix(os.Args[0], ".test")
}
