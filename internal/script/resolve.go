package script

import (
	"os"
	"path/filepath"
	"strings"

	"ldscript/internal/diag"
	"ldscript/internal/token"
	"ldscript/internal/trace"
)

// sepChars are the bytes os.IsPathSeparator accepts.
var sepChars = string([]byte{'/', filepath.Separator})

// addFile resolves one file specifier from GROUP, INPUT or AS_NEEDED and
// registers the result. The rules are tried in order:
//
//  1. script under sysroot, absolute spec: sysroot+spec if it exists
//  2. absolute spec: as is
//  3. "=path": path under the sysroot (or as is without a sysroot)
//  4. "-lname": library short name
//  5. spec exists relative to the working directory: as is
//  6. first SEARCH_DIR/-L directory containing spec
func (p *Parser) addFile(tok token.Token) {
	if p.failed() {
		return
	}
	spec := tok.Text
	sysroot := p.cfg.Sysroot

	if p.underSysroot && filepath.IsAbs(spec) {
		if path := sysroot + spec; p.fs.Exists(path) {
			p.register(p.save(path))
			return
		}
	}

	switch {
	case filepath.IsAbs(spec):
		p.register(spec)
	case strings.HasPrefix(spec, "="):
		rest := spec[1:]
		if sysroot == "" {
			p.register(rest)
		} else {
			p.register(p.save(sysroot + "/" + rest))
		}
	case strings.HasPrefix(spec, "-l"):
		name := spec[2:]
		trace.Point(p.tracer, trace.ScopeFile, "library", name, p.parentID)
		p.driver.AddLibrary(name)
	case p.fs.Exists(spec):
		p.register(spec)
	default:
		path, ok := p.findFromSearchPaths(spec)
		if !ok {
			p.fail(ResolutionError, diag.IOUnableToFind, tok.Span, "unable to find %s", spec)
			return
		}
		p.register(p.save(path))
	}
}

func (p *Parser) register(path string) {
	trace.Point(p.tracer, trace.ScopeFile, "file", path, p.parentID)
	p.driver.AddFile(path)
}

// findFromSearchPaths looks spec up in the configured search directories.
// A directory written as "=dir" is taken relative to the sysroot.
func (p *Parser) findFromSearchPaths(spec string) (string, bool) {
	for _, dir := range p.cfg.SearchPaths {
		var path string
		if rest, ok := strings.CutPrefix(dir, "="); ok && p.cfg.Sysroot != "" {
			path = appendPath(p.cfg.Sysroot, rest, spec)
		} else {
			path = appendPath(dir, spec)
		}
		if p.fs.Exists(path) {
			return path, true
		}
	}
	return "", false
}

// appendPath joins parts with one separator at each seam. Unlike
// filepath.Join it does not clean: "/lib/" + "../x.o" stays "/lib/../x.o".
func appendPath(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		if b.Len() == 0 {
			b.WriteString(part)
			continue
		}
		s := b.String()
		hasSep := os.IsPathSeparator(s[len(s)-1])
		switch {
		case hasSep:
			b.WriteString(strings.TrimLeft(part, sepChars))
		case os.IsPathSeparator(part[0]):
			b.WriteString(part)
		default:
			b.WriteByte(filepath.Separator)
			b.WriteString(part)
		}
	}
	return b.String()
}
