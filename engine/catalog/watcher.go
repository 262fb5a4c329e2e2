package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Watcher re-ingests a catalog file into a Catalog whenever the file changes.
// Bad edits are logged and rejected, leaving the last good data in place.
type Watcher struct {
	path    string
	catalog Catalog
	fsw     *fsnotify.Watcher
	log     zerolog.Logger

	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// Watch starts watching path and re-ingesting it into cat.
// The containing directory is watched so editors that replace the file
// on save are still picked up.
//
// Parameters:
//   - path: the catalog file
//   - cat: the catalog to refresh
//   - log: logger for reload results
//
// Returns:
//   - *Watcher: the running watcher, stop it with Close
//   - error: if the watch could not be established
func Watch(path string, cat Catalog, log zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to resolve catalog path %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		catalog: cat,
		fsw:     fsw,
		log:     log.With().Str("catalog", abs).Logger(),
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			w.reload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("catalog watcher error")
		}
	}
}

func (w *Watcher) reload() {
	entities, err := LoadFile(w.path)
	if err == nil {
		err = w.catalog.Reingest(entities)
	}
	if err != nil {
		w.log.Error().Err(err).Msg("catalog reload rejected, keeping previous data")
		return
	}
	w.log.Info().Uint64("version", w.catalog.Version()).Msg("catalog reloaded")
}

// Close stops the watcher and waits for the reload goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	if errors.Is(err, fsnotify.ErrClosed) {
		return nil
	}
	return err
}
