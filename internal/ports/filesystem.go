package ports

import (
	"os"
	"path/filepath"
	"strings"
)

// DirEntry describes a single directory entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileSystem provides the file system operations the provisioner needs:
// reading configuration stores, checking for artifacts, and persisting
// run history.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	ReadDir(path string) ([]DirEntry, error)
	Exists(path string) bool
	IsDir(path string) bool
	Remove(path string) error
	MkdirAll(path string, perm os.FileMode) error
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
