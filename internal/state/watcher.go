package state

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/noteplan/internal/pathutil"
)

// DataChangedMsg reports that the data file was written, possibly by
// another process.
type DataChangedMsg struct {
	Path string
}

type DataWatcherErrMsg struct {
	Err error
}

// DataWatcher turns writes to the data file and a periodic heartbeat into
// bubbletea messages. A watcher without a file only runs the heartbeat.
type DataWatcher struct {
	watcher   *fsnotify.Watcher
	file      string
	done      chan struct{}
	once      sync.Once
	mu        sync.Mutex
	heartbeat func() tea.Cmd
	interval  time.Duration
}

func NewDataWatcher(file string) (*DataWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &DataWatcher{
		watcher: w,
		file:    pathutil.NormalizePath(file),
		done:    make(chan struct{}),
	}

	if watcher.file != "" {
		// The directory is watched because saves replace the file by rename.
		if err := w.Add(filepath.Dir(watcher.file)); err != nil {
			_ = watcher.Close()
			return nil, err
		}
	}

	return watcher, nil
}

// Start returns a command that blocks until the next change, heartbeat or
// error. Callers re-issue it after handling each message.
func (w *DataWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		hb, interval := w.heartbeatConfig()
		var ticks <-chan time.Time
		if hb != nil && interval > 0 {
			ticker := time.NewTicker(interval)
			ticks = ticker.C
			defer ticker.Stop()
		}

		for {
			select {
			case <-w.done:
				return nil
			case <-ticks:
				if msg := w.invokeHeartbeat(hb); msg != nil {
					return msg
				}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if !w.isRelevant(event) {
					continue
				}
				return DataChangedMsg{Path: w.file}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return DataWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *DataWatcher) heartbeatConfig() (func() tea.Cmd, time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.heartbeat, w.interval
}

func (w *DataWatcher) invokeHeartbeat(fn func() tea.Cmd) tea.Msg {
	if fn == nil {
		return nil
	}
	cmd := fn()
	if cmd == nil {
		return nil
	}
	return cmd()
}

func (w *DataWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

// SetHeartbeat configures a command invoked every interval while Start is
// waiting.
func (w *DataWatcher) SetHeartbeat(fn func() tea.Cmd, interval time.Duration) {
	if w == nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.heartbeat = fn
	w.interval = interval
}

func (w *DataWatcher) isRelevant(event fsnotify.Event) bool {
	if w.file == "" {
		return false
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	return pathutil.SamePath(event.Name, w.file)
}
