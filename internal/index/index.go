// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

// Package index builds the derived, fully-rebuildable indices:
// spell-icon, spell-name, icon list, icon manifest, and class sprite
// atlas. LoadOrBuild implements a load-or-build discipline once as a Go
// generic: parse a cached JSON side-file when it is current, otherwise
// recompute from the WDBC sources and persist the result. The Build*
// functions recompute from their sources on every call; they neither
// consult nor write a cached JSON side-file.
package index

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// version is bumped whenever an index's on-disk shape changes
// incompatibly; a cached file tagged with an older version is rebuilt
// rather than trusted.
const version = 1

// Versioned is embedded by every index document so LoadOrBuild can
// reject a structurally stale cache even when its mtime looks fresh.
type Versioned struct {
	Version int `json:"version"`
}

// LoadOrBuild implements a load()/build() pattern: if indexPath
// exists, is newer than every path in sourcePaths, and
// unmarshals to a T whose embedded Versioned.Version matches the
// current version, it is returned as-is. Otherwise build is invoked,
// persisted atomically to indexPath, and returned.
func LoadOrBuild[T any](indexPath string, sourcePaths []string, versionOf func(T) int, build func() (T, error)) (T, error) {
	if cached, ok := tryLoad[T](indexPath, sourcePaths, versionOf); ok {
		return cached, nil
	}
	fresh, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	if err := persistAtomic(indexPath, fresh); err != nil {
		var zero T
		return zero, err
	}
	return fresh, nil
}

func tryLoad[T any](indexPath string, sourcePaths []string, versionOf func(T) int) (T, bool) {
	var zero T

	idxInfo, err := os.Stat(indexPath)
	if err != nil {
		return zero, false
	}
	for _, src := range sourcePaths {
		srcInfo, err := os.Stat(src)
		if err != nil {
			continue
		}
		if !srcInfo.ModTime().Before(idxInfo.ModTime()) {
			return zero, false
		}
	}

	data, err := os.ReadFile(indexPath)
	if err != nil {
		return zero, false
	}
	var parsed T
	if err := json.Unmarshal(data, &parsed); err != nil {
		return zero, false
	}
	if versionOf(parsed) != version {
		return zero, false
	}
	return parsed, true
}

// persistAtomic writes data to path via a sibling .tmp file then
// rename, so a reader never observes a partially written index.
func persistAtomic(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	encoded, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, encoded, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
