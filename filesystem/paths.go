// server/filesystem/paths.go
package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// DirExists reports whether path is an existing directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HTMLFallback maps an extensionless request path to "<path>.html" under
// root, so /about serves about.html. Paths escaping root are rejected.
func HTMLFallback(root, reqPath string) (string, bool) {
	clean := filepath.Clean("/" + reqPath)
	if clean == "/" || filepath.Ext(clean) != "" {
		return "", false
	}

	candidate := filepath.Join(root, clean+".html")
	if !strings.HasPrefix(candidate, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", false
	}

	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}
