package session

// InputFile is a file registered for linking.
type InputFile struct {
	Path     string `json:"path"`
	AsNeeded bool   `json:"as_needed,omitempty"`
}

// Library is a -l short name; turning it into a path is left to the
// library search of a later phase.
type Library struct {
	Name     string `json:"name"`
	AsNeeded bool   `json:"as_needed,omitempty"`
}

// Driver collects the inputs requested by the script in registration order.
// The as-needed state is taken from Config at the moment of registration.
type Driver struct {
	cfg       *Config
	Files     []InputFile
	Libraries []Library
}

func NewDriver(cfg *Config) *Driver {
	return &Driver{cfg: cfg}
}

func (d *Driver) AddFile(path string) {
	d.Files = append(d.Files, InputFile{Path: path, AsNeeded: d.cfg.AsNeeded})
}

func (d *Driver) AddLibrary(name string) {
	d.Libraries = append(d.Libraries, Library{Name: name, AsNeeded: d.cfg.AsNeeded})
}
