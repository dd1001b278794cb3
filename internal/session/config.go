package session

// Config is the part of the link configuration a linker script may touch.
// Command-line options are applied before the script runs; the script only
// fills Entry and OutputFile when they are still empty.
type Config struct {
	Entry      string
	OutputFile string
	// Sysroot is read-only for the script interpreter.
	Sysroot     string
	SearchPaths []string
	// AsNeeded is toggled on for the duration of an AS_NEEDED(...) block.
	AsNeeded       bool
	Undefined      []string
	OutputSections *SectionMap
}

func NewConfig() *Config {
	return &Config{OutputSections: NewSectionMap()}
}

// SetEntry sets the entry symbol unless one is already configured.
// It reports whether the value was taken.
func (c *Config) SetEntry(sym string) bool {
	if c.Entry != "" {
		return false
	}
	c.Entry = sym
	return true
}

// SetOutputFile sets the output path unless one is already configured.
func (c *Config) SetOutputFile(path string) bool {
	if c.OutputFile != "" {
		return false
	}
	c.OutputFile = path
	return true
}

func (c *Config) AddSearchPath(dir string) {
	c.SearchPaths = append(c.SearchPaths, dir)
}

func (c *Config) AddUndefined(sym string) {
	c.Undefined = append(c.Undefined, sym)
}
