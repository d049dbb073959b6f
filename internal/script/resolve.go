package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// resolveCommand resolves a check command URI to an executable path.
//
// Supported schemes:
//   - file://name      → filepath.Join(checksDir, name)
//   - file:///abs/path → absolute path as-is
func resolveCommand(uri, checksDir string) (string, error) {
	if !strings.HasPrefix(uri, "file://") {
		return "", fmt.Errorf("unsupported check command scheme: %s", uri)
	}

	raw := strings.TrimPrefix(uri, "file://")

	var path string
	if strings.HasPrefix(raw, "/") {
		path = raw
	} else {
		path = filepath.Join(checksDir, raw)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("check not found: %s", path)
	}
	if info.IsDir() {
		return "", fmt.Errorf("check is a directory: %s", path)
	}
	if info.Mode()&0111 == 0 {
		return "", fmt.Errorf("check is not executable: %s", path)
	}

	return path, nil
}
