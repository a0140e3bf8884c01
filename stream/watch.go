package stream

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Watch refreshes the stream whenever its file is written and calls fn with
// the new frame count when it changed. It blocks until ctx is done.
func (s *Stream) Watch(ctx context.Context, fn func(frames int)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	path := s.Info().Path
	// watching the directory survives editors that replace the file
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}
	target := filepath.Clean(path)
	logrus.WithFields(logrus.Fields{
		"function": "Watch",
		"path":     path,
	}).Info("Watching stream")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			changed, err := s.Refresh()
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"function": "Watch",
					"path":     path,
					"error":    err.Error(),
				}).Warn("Failed to refresh stream")
				continue
			}
			if changed && fn != nil {
				fn(s.FrameCount())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.WithFields(logrus.Fields{
				"function": "Watch",
				"error":    err.Error(),
			}).Warn("Watcher error")
		}
	}
}
