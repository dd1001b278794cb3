package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/spf13/cobra"

	"ldscript/internal/diagfmt"
	"ldscript/internal/session"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSeedSessionFlagsOverridePreset(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "ldscript.toml", `
[link]
entry = "from_preset"
output = "preset.out"
search_dirs = ["/preset/lib"]
`)

	c := &cobra.Command{Use: "parse"}
	addParseFlags(c)
	if err := c.ParseFlags([]string{"--config", preset, "-e", "from_flag", "-L", "/a", "-L", "/b", "--sysroot", "/sys"}); err != nil {
		t.Fatal(err)
	}

	sess, err := seedSession(c)
	if err != nil {
		t.Fatal(err)
	}
	cfg := sess.Config
	if cfg.Entry != "from_flag" || cfg.OutputFile != "preset.out" || cfg.Sysroot != "/sys" {
		t.Fatalf("config = %+v", cfg)
	}
	if want := []string{"/preset/lib", "/a", "/b"}; !reflect.DeepEqual(cfg.SearchPaths, want) {
		t.Fatalf("search paths = %q", cfg.SearchPaths)
	}
}

func TestSeedSessionBadPreset(t *testing.T) {
	preset := writeFile(t, t.TempDir(), "ldscript.toml", "[link]\nbogus = 1\n")
	c := &cobra.Command{Use: "parse"}
	addParseFlags(c)
	if err := c.ParseFlags([]string{"--config", preset}); err != nil {
		t.Fatal(err)
	}
	if _, err := seedSession(c); err == nil {
		t.Fatal("expected preset error")
	}
}

func TestParseCommandEndToEnd(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "ldscript.toml", "[link]\n")
	crt := writeFile(t, dir, "crt1.o", "")
	script := writeFile(t, dir, "link.t", "ENTRY(_start)\nINPUT("+crt+" -lc)\nOUTPUT(a.out)\n")
	snapPath := filepath.Join(dir, "out", "session.msgpack")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"parse", "--color=off", "--format", "json", "--config", preset, "--emit-session", snapPath, script})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("parse failed: %v\n%s", err, errOut.String())
	}

	var got diagfmt.SessionJSON
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("stdout is not a session: %v\n%s", err, out.String())
	}
	if got.Entry != "_start" || got.OutputFile != "a.out" || len(got.Files) != 1 || got.Libraries[0].Name != "c" {
		t.Fatalf("session = %+v", got)
	}

	snap, err := session.ReadSnapshot(snapPath)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Entry != "_start" || snap.Files[0].Path != crt {
		t.Fatalf("snapshot = %+v", snap)
	}
}

func TestParseCommandReportsScriptError(t *testing.T) {
	dir := t.TempDir()
	preset := writeFile(t, dir, "ldscript.toml", "[link]\n")
	script := writeFile(t, dir, "link.t", "ENTRY(a b)\n")

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs([]string{"parse", "--color=off", "--format", "pretty", "--emit-session=", "--config", preset, script})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	if !errors.Is(err, errReported) {
		t.Fatalf("err = %v", err)
	}
	if !bytes.Contains(errOut.Bytes(), []byte("ERROR SYN2003: ) expected, but got b")) {
		t.Fatalf("stderr = %s", errOut.String())
	}
	if out.Len() != 0 {
		t.Fatalf("no session may be printed on failure, got %s", out.String())
	}
}
