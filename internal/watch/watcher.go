package watch

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rohmanhakim/richtext-icons/internal/metadata"
	"github.com/rohmanhakim/richtext-icons/pkg/fileutil"
)

const DefaultDebounce = 200 * time.Millisecond

// Watcher calls onChange once after each burst of SVG changes in a
// directory. A burst ends when no relevant event arrived for the debounce
// interval.
type Watcher struct {
	dir          string
	debounce     time.Duration
	onChange     func(context.Context)
	watcher      *fsnotify.Watcher
	metadataSink metadata.MetadataSink
}

// NewWatcher starts watching dir. Events that happen after it returns are
// not lost, even if Run has not been called yet.
func NewWatcher(
	dir string,
	debounce time.Duration,
	onChange func(context.Context),
	metadataSink metadata.MetadataSink,
) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		dir:          dir,
		debounce:     debounce,
		onChange:     onChange,
		watcher:      fsw,
		metadataSink: metadataSink,
	}, nil
}

// Run processes events until ctx is cancelled, then releases the watcher.
// onChange runs on the Run goroutine, so bursts never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.metadataSink.RecordError(
				time.Now(),
				"watch",
				"Watcher.Run",
				metadata.CauseStorageFailure,
				err.Error(),
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrPath, w.dir),
				},
			)
		case <-fire:
			fire = nil
			w.onChange(ctx)
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !fileutil.HasExtension(event.Name, "svg") {
		return false
	}
	return event.Op&fsnotify.Create == fsnotify.Create ||
		event.Op&fsnotify.Write == fsnotify.Write ||
		event.Op&fsnotify.Remove == fsnotify.Remove ||
		event.Op&fsnotify.Rename == fsnotify.Rename
}
