package monitoring

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ArtifactWatcher watches the model artifact on disk and raises operator
// alerts when it is modified, removed or becomes unreadable. The in-memory
// model is never hot-swapped: the process keeps serving the artifact it
// loaded at startup, and operators decide whether to restart.
type ArtifactWatcher struct {
	path    string
	verify  func(string) error
	logger  *zap.Logger
	alerter func(AlertMessage)
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewArtifactWatcher watches path. verify re-validates the artifact after a
// change; alerter receives the resulting operator alerts.
func NewArtifactWatcher(path string, verify func(string) error, logger *zap.Logger, alerter func(AlertMessage)) (*ArtifactWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors and deploy tools typically replace the
	// file by rename, which drops a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, err
	}
	return &ArtifactWatcher{
		path:    path,
		verify:  verify,
		logger:  logger,
		alerter: alerter,
		watcher: watcher,
		done:    make(chan struct{}),
	}, nil
}

// Run consumes filesystem events until Stop is called.
func (w *ArtifactWatcher) Run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			w.handle(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("artifact watcher error", zap.Error(err))
		case <-w.done:
			return
		}
	}
}

// Stop ends the watch.
func (w *ArtifactWatcher) Stop() {
	close(w.done)
	w.watcher.Close()
}

func (w *ArtifactWatcher) handle(event fsnotify.Event) {
	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		w.alert("error", "model artifact removed from disk; process keeps serving the loaded model")
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	if err := w.verify(w.path); err != nil {
		w.alert("error", "model artifact changed on disk and no longer validates: "+err.Error())
		return
	}
	w.alert("warning", "model artifact changed on disk; restart to pick up the new model")
}

func (w *ArtifactWatcher) alert(level, message string) {
	w.logger.Warn("artifact alert", zap.String("level", level), zap.String("message", message), zap.String("path", w.path))
	if w.alerter != nil {
		w.alerter(AlertMessage{Level: level, Source: "artifact_watcher", Message: message})
	}
}
