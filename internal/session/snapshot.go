package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when Snapshot format changes
const snapshotSchemaVersion uint16 = 1

// ErrSnapshotSchema is returned for snapshots written by an incompatible version.
var ErrSnapshotSchema = errors.New("session snapshot schema mismatch")

// SectionPayload is one output-section entry in a snapshot.
type SectionPayload struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// Snapshot is the serialisable result of interpreting a script: what later
// link phases need, without the arena or file set.
type Snapshot struct {
	Schema uint16

	Script     string
	ScriptHash [32]byte

	Entry       string
	OutputFile  string
	Sysroot     string
	SearchPaths []string
	Undefined   []string
	Sections    []SectionPayload

	Files     []InputFile
	Libraries []Library
}

// Snapshot captures the current state of the session.
func (s *Session) Snapshot(script string, hash [32]byte) *Snapshot {
	cfg := s.Config
	snap := &Snapshot{
		Schema:      snapshotSchemaVersion,
		Script:      script,
		ScriptHash:  hash,
		Entry:       cfg.Entry,
		OutputFile:  cfg.OutputFile,
		Sysroot:     cfg.Sysroot,
		SearchPaths: cfg.SearchPaths,
		Undefined:   cfg.Undefined,
		Files:       s.Driver.Files,
		Libraries:   s.Driver.Libraries,
	}
	for _, name := range cfg.OutputSections.Names() {
		patterns, _ := cfg.OutputSections.Get(name)
		snap.Sections = append(snap.Sections, SectionPayload{Name: name, Patterns: patterns})
	}
	return snap
}

// Session rebuilds a session from the snapshot. AsNeeded is always false
// afterwards: it is a scoped flag and never outlives the script.
func (snap *Snapshot) Session() *Session {
	s := New()
	cfg := s.Config
	cfg.Entry = snap.Entry
	cfg.OutputFile = snap.OutputFile
	cfg.Sysroot = snap.Sysroot
	cfg.SearchPaths = snap.SearchPaths
	cfg.Undefined = snap.Undefined
	for _, sec := range snap.Sections {
		cfg.OutputSections.Append(sec.Name, sec.Patterns...)
	}
	s.Driver.Files = snap.Files
	s.Driver.Libraries = snap.Libraries
	return s
}

// WriteSnapshot serializes snap to path, replacing any previous file atomically.
func WriteSnapshot(path string, snap *Snapshot) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после успешного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(snap); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode session snapshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), path)
}

// ReadSnapshot loads a snapshot written by WriteSnapshot.
func ReadSnapshot(path string) (*Snapshot, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%s: decode session snapshot: %w", path, err)
	}
	if snap.Schema != snapshotSchemaVersion {
		return nil, fmt.Errorf("%s: %w (got %d, want %d)", path, ErrSnapshotSchema, snap.Schema, snapshotSchemaVersion)
	}
	return &snap, nil
}
