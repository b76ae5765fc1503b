// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package editstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/surrealabs/sdbeditor/internal/apperr"
	"github.com/surrealabs/sdbeditor/wdbc"
)

// SaveResult is save()'s output.
type SaveResult struct {
	RecordCount     uint32 `json:"recordCount"`
	FieldCount      uint32 `json:"fieldCount"`
	RecordSize      uint32 `json:"recordSize"`
	StringBlockSize uint32 `json:"stringBlockSize"`
}

// OnInvalidate is called after a successful write, naming the file whose
// derived indices (internal/index) are now stale. Nil by default;
// cmd/sdbeditor's serve-data command sets it to start a background
// index rebuild.
var OnInvalidate func(file string)

// Save writes {records, fieldDefs} to file under export. Before writing
// it takes the daily backup snapshot if today's backup dir does not
// exist yet, and a .bak sibling of file if none exists yet.
func (s *Store) Save(ctx context.Context, file string, fields []wdbc.FieldDef, records []wdbc.Row) (*SaveResult, error) {
	if !strings.EqualFold(filepath.Ext(file), ".dbc") {
		return nil, apperr.Validation("invalid filename: must end in .dbc")
	}
	if len(fields) == 0 && len(records) == 0 {
		return nil, apperr.Validation("missing payload")
	}

	if err := s.ensureDailyBackup(); err != nil {
		return nil, apperr.Internal("backup snapshot failed", err)
	}

	exportPath := filepath.Join(s.ExportDir, file)
	if err := s.ensureBakSibling(file); err != nil {
		return nil, apperr.Internal("bak snapshot failed", err)
	}

	lock := lockFile(exportPath)
	if ok, err := lock.TryLockContext(ctx, 50*time.Millisecond); err != nil || !ok {
		return nil, apperr.Conflict("file is locked by another writer")
	}
	defer lock.Unlock()

	encoded, err := wdbc.Encode(fields, records)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	if err := writeAtomic(exportPath, encoded); err != nil {
		return nil, apperr.Internal("write failed", err)
	}

	s.invalidateCache(exportPath)
	if OnInvalidate != nil {
		OnInvalidate(file)
	}

	table, err := wdbc.ReadBytes(encoded, nil)
	if err != nil {
		return nil, apperr.Internal("post-write verification failed", err)
	}
	return &SaveResult{
		RecordCount:     table.Header.RecordCount,
		FieldCount:      table.Header.FieldCount,
		RecordSize:      table.Header.RecordSize,
		StringBlockSize: table.Header.StringBlockSize,
	}, nil
}

// CopyToCustom copies base/F into export/F, the copy-on-write step that
// precedes a table's first edit.
func (s *Store) CopyToCustom(file string) error {
	basePath := filepath.Join(s.BaseDir, file)
	if _, err := os.Stat(basePath); err != nil {
		return apperr.NotFound(fmt.Sprintf("base missing: %s", file))
	}
	data, err := os.ReadFile(basePath)
	if err != nil {
		return apperr.Internal("read base failed", err)
	}
	exportPath := filepath.Join(s.ExportDir, file)
	if err := writeAtomic(exportPath, data); err != nil {
		return apperr.Internal("copy to export failed", err)
	}
	return nil
}

// ensureBakSibling copies the effective copy of F (export/F if present,
// else base/F) to export/F.bak, if no .bak exists yet.
func (s *Store) ensureBakSibling(file string) error {
	bakPath := filepath.Join(s.ExportDir, file+".bak")
	if _, err := os.Stat(bakPath); err == nil {
		return nil
	}
	src := s.effectivePath(file)
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return writeAtomic(bakPath, data)
}

// ensureDailyBackup snapshots every DBC in base and export into
// backups/<MM-DD-YYYY>/{base-dbc,export-dbc}/ once per day: it checks
// for the dated directory and skips if already present.
func (s *Store) ensureDailyBackup() error {
	dateKey := time.Now().Format("01-02-2006")

	s.mu.Lock()
	if s.backupDone[dateKey] {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	dayDir := filepath.Join(s.BackupDir, dateKey)
	if _, err := os.Stat(dayDir); err == nil {
		s.mu.Lock()
		s.backupDone[dateKey] = true
		s.mu.Unlock()
		return nil
	}

	if err := snapshotDir(s.BaseDir, filepath.Join(dayDir, "base-dbc")); err != nil {
		return err
	}
	if err := snapshotDir(s.ExportDir, filepath.Join(dayDir, "export-dbc")); err != nil {
		return err
	}

	s.mu.Lock()
	s.backupDone[dateKey] = true
	s.mu.Unlock()
	return nil
}

func snapshotDir(srcDir, dstDir string) error {
	files, err := listDBC(srcDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if len(files) == 0 {
		return nil
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return err
	}
	for _, name := range files {
		if err := copyFile(filepath.Join(srcDir, name), filepath.Join(dstDir, name)); err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *Store) invalidateCache(path string) {
	s.mu.Lock()
	delete(s.cache, path)
	s.mu.Unlock()
}
