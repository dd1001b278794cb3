package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ldscript/internal/session"
)

// ErrUnknownKey is wrapped when the preset has keys ldscript does not read.
var ErrUnknownKey = errors.New("unknown key")

// Preset is the [link] table of ldscript.toml: values that seed the session
// before the script runs, the way command-line options would.
type Preset struct {
	Path string // откуда загружен
	Link LinkPreset
	// AsNeededSet is true when as_needed appears in the file, even as false.
	AsNeededSet bool
}

type presetFile struct {
	Link LinkPreset `toml:"link"`
}

type LinkPreset struct {
	Sysroot    string   `toml:"sysroot"`
	Entry      string   `toml:"entry"`
	Output     string   `toml:"output"`
	SearchDirs []string `toml:"search_dirs"`
	Undefined  []string `toml:"undefined"`
	AsNeeded   bool     `toml:"as_needed"`
}

// LoadPreset reads and validates a preset. Relative sysroot and search
// directories are taken relative to the preset's directory; "=dir" search
// directories stay sysroot-relative.
func LoadPreset(path string) (*Preset, error) {
	var cfg presetFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, fmt.Errorf("%s: %w: %s", path, ErrUnknownKey, strings.Join(keys, ", "))
	}
	if meta.IsDefined("link", "entry") && strings.TrimSpace(cfg.Link.Entry) == "" {
		return nil, fmt.Errorf("%s: [link].entry must not be empty", path)
	}

	base := filepath.Dir(path)
	link := cfg.Link
	if link.Sysroot != "" && !filepath.IsAbs(link.Sysroot) {
		link.Sysroot = filepath.Join(base, link.Sysroot)
	}
	for i, dir := range link.SearchDirs {
		if !strings.HasPrefix(dir, "=") && !filepath.IsAbs(dir) {
			link.SearchDirs[i] = filepath.Join(base, dir)
		}
	}

	return &Preset{
		Path:        path,
		Link:        link,
		AsNeededSet: meta.IsDefined("link", "as_needed"),
	}, nil
}

// Apply seeds sess with the preset. Call it before command-line values are
// applied so that flags win.
func (p *Preset) Apply(sess *session.Session) {
	cfg := sess.Config
	if p.Link.Sysroot != "" {
		cfg.Sysroot = p.Link.Sysroot
	}
	if p.Link.Entry != "" {
		cfg.Entry = p.Link.Entry
	}
	if p.Link.Output != "" {
		cfg.OutputFile = p.Link.Output
	}
	for _, dir := range p.Link.SearchDirs {
		cfg.AddSearchPath(dir)
	}
	for _, sym := range p.Link.Undefined {
		cfg.AddUndefined(sym)
	}
	if p.AsNeededSet {
		cfg.AsNeeded = p.Link.AsNeeded
	}
}
