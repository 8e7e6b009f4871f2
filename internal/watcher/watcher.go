// Package watcher notifies the TUI when another process edits the todo
// directory.
package watcher

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Every mutation rewrites the whole tasks file, so bursts of events are
// coalesced: the callback fires once the directory has been quiet for
// this long.
const quietPeriod = 100 * time.Millisecond

const mutatingOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watch monitors dir and invokes onChange (debounced) whenever a file
// in it is created, written, removed, or renamed. It blocks until ctx
// is canceled or the underlying watcher fails.
func Watch(ctx context.Context, dir string, onChange func()) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return err
	}

	debounce := time.NewTimer(0)
	if !debounce.Stop() {
		<-debounce.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			debounce.Stop()
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&mutatingOps == 0 {
				continue
			}
			if pending && !debounce.Stop() {
				<-debounce.C
			}
			debounce.Reset(quietPeriod)
			pending = true
		case <-debounce.C:
			pending = false
			onChange()
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
