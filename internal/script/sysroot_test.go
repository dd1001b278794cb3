package script_test

import (
	"os"
	"path/filepath"
	"testing"

	"ldscript/internal/script"
)

func TestIsUnderSysrootMemFS(t *testing.T) {
	fsys := newMemFS()
	fsys.dirs["/sys"] = true
	fsys.dirs["/alias"] = true
	fsys.aliases["/alias"] = "/sys"

	tests := []struct {
		path, sysroot string
		want          bool
	}{
		{"/sys/usr/lib/libc.so", "/sys", true},
		{"/sys", "/sys", true},
		{"/other/link.t", "/sys", false},
		{"/sys/link.t", "", false},
		{"/alias/lib/link.t", "/sys", true},
		{"link.t", "/sys", false},
	}
	for _, tt := range tests {
		if got := script.IsUnderSysroot(fsys, tt.path, tt.sysroot); got != tt.want {
			t.Errorf("IsUnderSysroot(%q, %q) = %v, want %v", tt.path, tt.sysroot, got, tt.want)
		}
	}
}

func TestIsUnderSysrootOS(t *testing.T) {
	root := t.TempDir()
	sysroot := filepath.Join(root, "sysroot")
	lib := filepath.Join(sysroot, "usr", "lib")
	if err := os.MkdirAll(lib, 0o755); err != nil {
		t.Fatal(err)
	}
	libc := filepath.Join(lib, "libc.so")
	if err := os.WriteFile(libc, []byte("GROUP(libc.so.6)"), 0o600); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(root, "elsewhere.t")
	if err := os.WriteFile(outside, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	fsys := script.OSFileSystem{}
	if !script.IsUnderSysroot(fsys, libc, sysroot) {
		t.Errorf("%s should be under %s", libc, sysroot)
	}
	// a trailing slash names the same directory
	if !script.IsUnderSysroot(fsys, libc, sysroot+string(filepath.Separator)) {
		t.Error("trailing separator must not matter")
	}
	if script.IsUnderSysroot(fsys, outside, sysroot) {
		t.Errorf("%s should not be under %s", outside, sysroot)
	}

	link := filepath.Join(root, "link")
	if err := os.Symlink(sysroot, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if !script.IsUnderSysroot(fsys, filepath.Join(link, "usr", "lib", "libc.so"), sysroot) {
		t.Error("path through a symlink to the sysroot must match")
	}
}
