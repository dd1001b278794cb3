package script

import (
	"os"
)

// FileSystem is what the interpreter needs from the outside world.
type FileSystem interface {
	// Exists reports whether path names an existing file or directory.
	Exists(path string) bool
	// Equivalent reports whether a and b name the same file system object.
	Equivalent(a, b string) bool
	// ReadFile returns the full contents of an INCLUDE target.
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem is the FileSystem backed by the os package.
type OSFileSystem struct{}

func (OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFileSystem) Equivalent(a, b string) bool {
	sa, err := os.Stat(a)
	if err != nil {
		return false
	}
	sb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(sa, sb)
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- INCLUDE names the file on purpose
	return os.ReadFile(path)
}
