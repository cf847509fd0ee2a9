// Copyright (c) 2026, The Gloam Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package params

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDelay is how long [Watch] waits after the last change to a file
// before reporting it, since editors write files in several steps.
var WatchDelay = 100 * time.Millisecond

// Watch calls fn whenever the file at path is written or re-created,
// until ctx is done. The directory is watched rather than the file so that
// editors that save by renaming are followed. Bursts of events within
// [WatchDelay] are reported once.
func Watch(ctx context.Context, path string, fn func()) error {
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return err
	}
	go func() {
		defer w.Close()
		var mu sync.Mutex
		var timer *time.Timer
		for {
			select {
			case <-ctx.Done():
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				mu.Unlock()
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != path || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(WatchDelay, func() {
					if ctx.Err() == nil {
						fn()
					}
				})
				mu.Unlock()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				slog.Error("params: watching preset", "file", path, "error", err)
			}
		}
	}()
	return nil
}
