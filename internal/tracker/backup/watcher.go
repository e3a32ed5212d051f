package backup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/purav-khanna/Fitness-Tracker/pkg"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const (
	suffixImported = ".imported"
	suffixFailed   = ".failed"
)

type importer interface {
	Import(ctx context.Context, source, text string) (ImportResult, error)
}

// Watcher imports *.json files dropped into a directory. Each file is renamed with an
// .imported or .failed suffix once handled, so it is picked up only once.
type Watcher struct {
	dir      string
	importer importer
	watcher  *fsnotify.Watcher
	started  atomic.Bool
	done     chan struct{}
}

func NewWatcher(dir string, importer importer) (*Watcher, error) {
	if dir == "" {
		return nil, errors.New("watch dir not set")
	}
	if err := pkg.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("ensure watch dir: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new fs watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch dir [%s]: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		importer: importer,
		watcher:  w,
		done:     make(chan struct{}),
	}, nil
}

// Start imports files already waiting in the directory, then handles events in the
// background until ctx is done or the watcher is closed.
func (fw *Watcher) Start(ctx context.Context) {
	if !fw.started.CompareAndSwap(false, true) {
		return
	}
	go fw.run(ctx)
}

func (fw *Watcher) run(ctx context.Context) {
	defer close(fw.done)

	fw.importPending(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if isBackupFile(event.Name) {
				fw.HandleFile(ctx, event.Name)
			}
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			log.Errorf("backup watcher: %s", err)
		}
	}
}

// Close stops the underlying watcher and waits for the event loop, if it was started.
func (fw *Watcher) Close() error {
	err := fw.watcher.Close()
	if fw.started.Load() {
		<-fw.done
	}
	return err
}

func isBackupFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func (fw *Watcher) importPending(ctx context.Context) {
	entries, err := os.ReadDir(fw.dir)
	if err != nil {
		log.Errorf("backup watcher: read dir [%s]: %s", fw.dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || !isBackupFile(entry.Name()) {
			continue
		}
		fw.HandleFile(ctx, filepath.Join(fw.dir, entry.Name()))
	}
}

// HandleFile imports one backup file and renames it according to the outcome.
// A file that is already gone was handled by an earlier event; an empty one is
// still being written and is left for the next write event.
func (fw *Watcher) HandleFile(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Errorf("backup watcher: read [%s]: %s", path, err)
		}
		return
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return
	}

	suffix := suffixImported
	result, err := fw.importer.Import(ctx, SourceWatch, string(data))
	if err != nil {
		suffix = suffixFailed
		log.Errorf("backup watcher: import [%s]: %s", path, err)
	} else {
		log.Infof("backup watcher: imported [%s]: %v", path, result.Imported)
	}

	if err := os.Rename(path, path+suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Errorf("backup watcher: rename [%s]: %s", path, err)
	}
}
