// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package index

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// IconList is the persisted {generated, count, files} document for
// one icon directory.
type IconList struct {
	Versioned
	Generated int64    `json:"generated"`
	Count     int      `json:"count"`
	Files     []string `json:"files"`
}

// BuildIconList lists *.blp files directly under dir, sorted by
// code-point order.
func BuildIconList(dir string) (IconList, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return IconList{}, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".blp") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return IconList{
		Versioned: Versioned{Version: version},
		Generated: time.Now().Unix(),
		Count:     len(files),
		Files:     files,
	}, nil
}

// IconWatcher keeps an in-memory *.blp file set for one directory live
// against fsnotify create/remove events, debouncing persistence by 1s
// so a burst of events (e.g. a bulk icon import) triggers one manifest
// rebuild, not one per event.
type IconWatcher struct {
	dir      string
	listPath string
	mu       sync.Mutex
	files    map[string]bool
	watcher  *fsnotify.Watcher
	debounce time.Duration
	timer    *time.Timer
	onRebuild func(IconList)
}

// NewIconWatcher installs a non-recursive fsnotify watch on dir and
// seeds the in-memory set from an initial directory listing.
func NewIconWatcher(dir, listPath string, onRebuild func(IconList)) (*IconWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	seed, err := BuildIconList(dir)
	if err != nil {
		w.Close()
		return nil, err
	}
	files := make(map[string]bool, len(seed.Files))
	for _, f := range seed.Files {
		files[f] = true
	}

	iw := &IconWatcher{
		dir:          dir,
		listPath: listPath,
		files:        files,
		watcher:      w,
		debounce:     time.Second,
		onRebuild:    onRebuild,
	}
	go iw.loop()
	return iw, nil
}

func (iw *IconWatcher) loop() {
	for event := range iw.watcher.Events {
		if !strings.EqualFold(filepath.Ext(event.Name), ".blp") {
			continue
		}
		name := filepath.Base(event.Name)

		iw.mu.Lock()
		switch {
		case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
			iw.files[name] = true
		case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
			delete(iw.files, name)
		}
		iw.scheduleRebuild()
		iw.mu.Unlock()
	}
}

// scheduleRebuild must be called with iw.mu held.
func (iw *IconWatcher) scheduleRebuild() {
	if iw.timer != nil {
		iw.timer.Stop()
	}
	iw.timer = time.AfterFunc(iw.debounce, iw.rebuild)
}

func (iw *IconWatcher) rebuild() {
	iw.mu.Lock()
	files := make([]string, 0, len(iw.files))
	for f := range iw.files {
		files = append(files, f)
	}
	iw.mu.Unlock()

	sort.Strings(files)
	manifest := IconList{
		Versioned: Versioned{Version: version},
		Generated: time.Now().Unix(),
		Count:     len(files),
		Files:     files,
	}
	if err := persistAtomic(iw.listPath, manifest); err == nil && iw.onRebuild != nil {
		iw.onRebuild(manifest)
	}
}

// Close stops the underlying fsnotify watcher.
func (iw *IconWatcher) Close() error {
	return iw.watcher.Close()
}
