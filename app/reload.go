package app

import (
	"path/filepath"

	"diesel.com/sph2d/config"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

//WatchConfig re-reads the config file whenever it is written and delivers every
//valid result on out, dropping a pending one that was not consumed yet. Invalid
//files are logged and skipped. The returned func stops the watcher.
func WatchConfig(fname string, out chan config.Config) (func() error, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "config watcher")
	}

	//Editors replace files on save, so watch the directory
	fname = filepath.Clean(fname)
	if err := watcher.Add(filepath.Dir(fname)); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "watching %s", fname)
	}

	log := logrus.WithField("config", fname)
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != fname {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}

				c, err := config.Read(fname)
				if err != nil {
					log.WithError(err).Warn("config reload skipped")
					continue
				}
				log.Info("config changed")

				select {
				case <-out:
				default:
				}
				out <- c

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.WithError(err).Warn("config watcher")
			}
		}
	}()

	return watcher.Close, nil
}
