package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// watch runs the bundle and runs it again whenever one of its inputs or the
// directories its patterns search change, until ctx is done. A failed run is
// logged and waits for the next change.
func watch(ctx context.Context, b *bundle) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	debounce := b.config.Watch.Debounce
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	rebuild := func() {
		if err := b.run(ctx); err != nil {
			log.WithError(err).Error("Joining failed.")
		}
		for _, dir := range b.watchedDirs() {
			if err := w.Add(dir); err != nil {
				log.WithError(err).WithField("dir", dir).Warn("Failed to watch directory.")
			}
		}
		log.Info("Watching for changes...")
	}
	rebuild()

	ticker := time.NewTicker(debounce)
	defer ticker.Stop()
	pending := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if b.produced(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			log.WithField("path", event.Name).WithField("op", event.Op.String()).Debug("Change detected.")
			pending = true

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher error.")

		case <-ticker.C:
			if pending {
				pending = false
				rebuild()
			}
		}
	}
}

// watchedDirs lists the directories of the last read inputs and the fixed
// base directories of the input patterns, so that new matches are noticed.
func (b *bundle) watchedDirs() []string {
	var dirs []string
	seen := map[string]bool{}
	add := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, pattern := range b.config.Inputs {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(b.abs(pattern)))
		add(filepath.FromSlash(base))
	}
	for _, path := range b.inputs {
		add(filepath.Dir(path))
	}
	if dir := b.abs(b.config.SourceMap.MapDir); dir != "" {
		add(dir)
	}
	return dirs
}

// produced tells if path is written by the bundle itself.
func (b *bundle) produced(path string) bool {
	path = filepath.Clean(path)
	if b.config.Output != "" && path == filepath.Clean(b.outputPath()) {
		return true
	}
	if m := b.mapPath(); m != "" && path == filepath.Clean(m) {
		return true
	}
	return false
}
