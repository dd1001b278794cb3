package session

import (
	"ldscript/internal/source"
)

// Session is the state shared by every phase of one link: the configuration,
// the registered inputs, and the string arena that owns script-derived text.
type Session struct {
	Config *Config
	Driver *Driver
	Arena  *source.Interner
}

func New() *Session {
	cfg := NewConfig()
	return &Session{
		Config: cfg,
		Driver: NewDriver(cfg),
		Arena:  source.NewInterner(),
	}
}
