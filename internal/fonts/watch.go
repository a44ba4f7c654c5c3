package fonts

import (
	"context"

	"github.com/fsnotify/fsnotify"
)

// Watch rescans the catalog whenever its directory changes, until ctx is
// done. Each rescan calls onChange with the fresh name list; onChange
// runs on the watcher goroutine, so callers must marshal it onto their
// own loop.
func (c *Catalog) Watch(ctx context.Context, onChange func(names []string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(c.dir); err != nil {
		watcher.Close()
		return err
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				c.rescan()
				if onChange != nil {
					onChange(c.Names())
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return nil
}
