package script

import (
	"path/filepath"
)

// IsUnderSysroot reports whether path, or any directory above it, is the
// same file system object as sysroot. An empty sysroot is never matched.
func IsUnderSysroot(fsys FileSystem, path, sysroot string) bool {
	if sysroot == "" || path == "" {
		return false
	}
	for p := path; ; {
		if fsys.Equivalent(sysroot, p) {
			return true
		}
		parent := filepath.Dir(p)
		if parent == p || parent == "." {
			return false
		}
		p = parent
	}
}
