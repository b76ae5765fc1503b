// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package editstore implements the Edit Store: the
// base/export directory layering, copy-on-write first edit, daily
// backup snapshots, and the atomic read/write/diff/add/delete
// operations every higher-level editor (internal/spelleditor,
// internal/talent) builds on.
package editstore

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/wdbc"
	"github.com/surrealabs/sdbeditor/wdbc/schema"
)

// Source names which logical directory a read should prefer.
type Source int

const (
	SourceAuto Source = iota
	SourceBase
	SourceExport
)

// Store is the Edit Store over one base/export directory pair.
type Store struct {
	BaseDir   string
	ExportDir string
	BackupDir string

	mu         sync.Mutex
	cache      map[string]*cacheEntry
	backupDone map[string]bool
}

type cacheEntry struct {
	mtime time.Time
	table *wdbc.Table
}

// New returns a Store rooted at baseDir (read-only) and exportDir
// (writable), backing up into backupDir.
func New(baseDir, exportDir, backupDir string) *Store {
	return &Store{
		BaseDir:    baseDir,
		ExportDir:  exportDir,
		BackupDir:  backupDir,
		cache:      map[string]*cacheEntry{},
		backupDone: map[string]bool{},
	}
}

// FileStatus is one entry of list()'s output.
type FileStatus struct {
	Name        string `json:"name"`
	HasBase     bool   `json:"hasBase"`
	HasExport   bool   `json:"hasExport"`
	RecordCount uint32 `json:"recordCount"`
	FieldCount  uint32 `json:"fieldCount"`
}

// List reports {hasBase, hasExport, recordCount, fieldCount} for every
// *.dbc under base or export, reading only the 20-byte header of
// whichever copy is effective for that file.
func (s *Store) List() ([]FileStatus, error) {
	names := map[string]bool{}
	baseFiles, _ := listDBC(s.BaseDir)
	exportFiles, _ := listDBC(s.ExportDir)
	for _, n := range baseFiles {
		names[n] = true
	}
	for _, n := range exportFiles {
		names[n] = true
	}

	out := make([]FileStatus, 0, len(names))
	for name := range names {
		status := FileStatus{
			Name:      name,
			HasBase:   contains(baseFiles, name),
			HasExport: contains(exportFiles, name),
		}
		if hdr, err := readHeader(s.effectivePath(name)); err == nil {
			status.RecordCount = hdr.RecordCount
			status.FieldCount = hdr.FieldCount
		}
		out = append(out, status)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ReadResult is read()'s output.
type ReadResult struct {
	Header          wdbc.Header
	FieldDefs       []wdbc.FieldDef
	Records         []wdbc.Row
	Lookups         map[string]map[uint32]string
	HasDefinition   bool
}

// Read loads file, resolving source against base/export per Source's
// rules. Lookups are built eagerly from wdbc/schema.LookupSources for
// every Ref'd field in the resolved schema.
func (s *Store) Read(file string, source Source) (*ReadResult, error) {
	path, err := s.resolvePath(file, source)
	if err != nil {
		return nil, err
	}

	table, err := s.loadCached(path)
	if err != nil {
		return nil, apperr.NotFound(fmt.Sprintf("file not found: %s", file))
	}

	sch := schema.Lookup(tableNameFromFile(file))
	lookups, err := s.buildLookups(table.Fields)
	if err != nil {
		return nil, err
	}

	return &ReadResult{
		Header:        table.Header,
		FieldDefs:     table.Fields,
		Records:       table.Rows,
		Lookups:       lookups,
		HasDefinition: sch != nil,
	}, nil
}

func (s *Store) resolvePath(file string, source Source) (string, error) {
	switch source {
	case SourceBase:
		return filepath.Join(s.BaseDir, file), nil
	case SourceExport:
		return filepath.Join(s.ExportDir, file), nil
	default:
		return s.effectivePath(file), nil
	}
}

// effectivePath implements the read order: export shadows base.
func (s *Store) effectivePath(file string) string {
	exportPath := filepath.Join(s.ExportDir, file)
	if _, err := os.Stat(exportPath); err == nil {
		return exportPath
	}
	return filepath.Join(s.BaseDir, file)
}

// EffectivePath returns the on-disk path a read of file would resolve
// to right now: the export copy if one exists, otherwise the base
// copy. Callers that need a raw filesystem path for a library that
// doesn't speak Source directly (index building, thumbnail scanning)
// use this instead of reimplementing the shadow rule.
func (s *Store) EffectivePath(file string) string {
	return s.effectivePath(file)
}

func (s *Store) buildLookups(fields []wdbc.FieldDef) (map[string]map[uint32]string, error) {
	out := map[string]map[uint32]string{}
	for _, fd := range fields {
		if fd.Ref == "" {
			continue
		}
		if _, done := out[fd.Ref]; done {
			continue
		}
		m, err := s.lookupTable(fd.Ref)
		if err != nil {
			continue
		}
		out[fd.Ref] = m
	}
	return out, nil
}

func (s *Store) lookupTable(refTable string) (map[uint32]string, error) {
	src, ok := schema.LookupSources[refTable]
	if !ok {
		return nil, fmt.Errorf("editstore: no lookup source for %s", refTable)
	}
	table, err := s.loadCached(s.effectivePath(src.File))
	if err != nil {
		return nil, err
	}
	out := make(map[uint32]string, len(table.Rows))
	idField := fieldIndexOf(table.Fields, "ID")
	for _, row := range table.Rows {
		if idField < 0 || idField >= len(row) || src.NameField >= len(row) {
			continue
		}
		out[row[idField].U32] = row[src.NameField].Str
	}
	return out, nil
}

// loadCached reads a table via the WDBC codec, reusing a cached parse
// keyed by path while the file's mtime is unchanged.
func (s *Store) loadCached(path string) (*wdbc.Table, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if entry, ok := s.cache[path]; ok && entry.mtime.Equal(info.ModTime()) {
		s.mu.Unlock()
		return entry.table, nil
	}
	s.mu.Unlock()

	sch := schema.Lookup(tableNameFromFile(filepath.Base(path)))
	table, err := wdbc.Read(path, schemaOrNil(sch))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[path] = &cacheEntry{mtime: info.ModTime(), table: table}
	s.mu.Unlock()
	return table, nil
}

func schemaOrNil(s *schema.Schema) wdbc.Schema {
	if s == nil {
		return nil
	}
	return s
}

func tableNameFromFile(file string) string {
	return strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
}

func fieldIndexOf(fields []wdbc.FieldDef, name string) int {
	for i, fd := range fields {
		if fd.Name == name {
			return i
		}
	}
	return -1
}

func listDBC(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".dbc") {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}

func readHeader(path string) (wdbc.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return wdbc.Header{}, err
	}
	defer f.Close()

	var hdr wdbc.Header
	if err := binary.Read(f, binary.LittleEndian, &hdr); err != nil {
		return wdbc.Header{}, wdbc.ErrTruncatedFile
	}
	if hdr.Magic != wdbc.Magic {
		return wdbc.Header{}, wdbc.ErrInvalidMagic
	}
	return hdr, nil
}

// lockFile returns a flock.Flock guarding against concurrent writers
// to path; only one writer may hold a given DBC file at a time.
func lockFile(path string) *flock.Flock {
	return flock.New(path + ".lock")
}
