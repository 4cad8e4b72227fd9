package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/qiangli/pye/internal/log"
)

// Runner runs one script source and returns its captured output.
type Runner func(src string) string

// WatchFile watches a script file and re-runs it on every change.
// The parent directory is watched instead of the file itself, so editors
// that rename on save do not break the watch.
func WatchFile(file string, run Runner) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()

	st, err := os.Lstat(file)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return errors.Errorf("%q is a directory, not a file", file)
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watch %q", file)
	}

	// run once up front, then on every write
	runFile(abs, run)

	log.Infof("watching %s; press ^C to exit\n", file)

	var last time.Time
	for {
		select {
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch: %v\n", err)
		case e, ok := <-w.Events:
			if !ok {
				return nil
			}
			if e.Name != abs {
				continue
			}
			if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
				continue
			}
			// editors fire bursts of events per save
			if time.Since(last) < 100*time.Millisecond {
				continue
			}
			last = time.Now()
			runFile(abs, run)
		}
	}
}

func runFile(file string, run Runner) {
	src, err := os.ReadFile(file)
	if err != nil {
		log.Errorf("read %s: %v\n", file, err)
		return
	}
	log.Infof("%s %s\n", time.Now().Format("15:04:05.0000"), file)
	log.Print(run(string(src)))
}
