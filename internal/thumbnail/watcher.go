// Copyright (c) 2026 Surrealabs. All rights reserved.
// Use of this source code is governed by an Apache v2 license
// that can be found in the LICENSE file.

package thumbnail

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay is how long the watcher waits after a create event fires
// before calling EnsureOne, letting a large BLP finish writing.
const settleDelay = 500 * time.Millisecond

// WatchAndRegenerate installs a non-recursive fsnotify watch on
// e.IconDir and schedules a single-file EnsureOne after settleDelay
// whenever a *.blp is created. Returns a stop function.
func (e *Engine) WatchAndRegenerate(onResult func(name string, outcome string, err error)) (func() error, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(e.IconDir); err != nil {
		w.Close()
		return nil, err
	}

	var mu sync.Mutex
	timers := map[string]*time.Timer{}

	go func() {
		for event := range w.Events {
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".blp") {
				continue
			}
			name := filepath.Base(event.Name)

			mu.Lock()
			if t, ok := timers[name]; ok {
				t.Stop()
			}
			timers[name] = time.AfterFunc(settleDelay, func() {
				out, err := e.EnsureOne(name)
				label := "generated"
				if out == outcomeSkipped {
					label = "skipped"
				}
				if onResult != nil {
					onResult(name, label, err)
				}
			})
			mu.Unlock()
		}
	}()

	return w.Close, nil
}
