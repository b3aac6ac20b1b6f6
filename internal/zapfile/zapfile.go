// Package zapfile opens the files zap and unzap work on.  Output is staged in
// a temporary file next to its destination and only renamed into place by
// Commit, so a failed run leaves no truncated output behind.
package zapfile

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrOutputExists = errors.New("output file already exists")
	ErrSameFile     = errors.New("input and output are the same file")
)

// OpenSource opens path for reading.  The returned file must be closed by the
// caller.
func OpenSource(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open input file %s", path)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "unable to stat input file %s", path)
	}

	if info.IsDir() {
		f.Close()
		return nil, errors.Errorf("input file %s is a directory", path)
	}

	return f, nil
}

// Sink is an output file under construction.
type Sink struct {
	path string
	mode os.FileMode
	tmp  *os.File
	done bool
	log  *logrus.Entry
}

// CreateSink prepares to write path.  Unless overwrite is set, an existing
// file at path is an error.  src, if non-nil, is the input file; writing over
// it is always refused.
func CreateSink(path string, mode os.FileMode, overwrite bool, src *os.File) (*Sink, error) {
	llog := logrus.WithFields(logrus.Fields{
		"pkg":    "zapfile",
		"output": path,
	})

	info, err := os.Stat(path)
	switch {
	case err == nil:
		if info.IsDir() {
			return nil, errors.Errorf("output file %s is a directory", path)
		}

		if src != nil {
			if srcInfo, err := src.Stat(); err == nil && os.SameFile(info, srcInfo) {
				return nil, errors.Wrap(ErrSameFile, path)
			}
		}

		if !overwrite {
			return nil, errors.Wrap(ErrOutputExists, path)
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrapf(err, "unable to stat output file %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, errors.Wrapf(err, "cannot create output file %s", path)
	}

	llog.Debugf("staging output in '%s'", tmp.Name())

	return &Sink{
		path: path,
		mode: mode,
		tmp:  tmp,
		log:  llog,
	}, nil
}

// Write implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	return s.tmp.Write(p)
}

// Path returns the final destination path.
func (s *Sink) Path() string {
	return s.path
}

// Commit flushes the staged output and moves it to its final path.
func (s *Sink) Commit() error {
	if s.done {
		return errors.New("sink already finished")
	}
	s.done = true

	name := s.tmp.Name()

	if err := s.tmp.Chmod(s.mode); err != nil {
		s.discard(name)
		return errors.Wrap(err, "unable to set output file mode")
	}

	if err := s.tmp.Sync(); err != nil {
		s.discard(name)
		return errors.Wrap(err, "unable to sync output file")
	}

	if err := s.tmp.Close(); err != nil {
		_ = os.Remove(name)
		return errors.Wrap(err, "unable to close output file")
	}

	if err := os.Rename(name, s.path); err != nil {
		_ = os.Remove(name)
		return errors.Wrapf(err, "unable to move output into place at %s", s.path)
	}

	s.log.Debug("output committed")

	return nil
}

// Abort discards the staged output.  It is a no-op after Commit, so it is
// safe to defer.
func (s *Sink) Abort() {
	if s.done {
		return
	}
	s.done = true
	s.discard(s.tmp.Name())
	s.log.Debug("output discarded")
}

func (s *Sink) discard(name string) {
	_ = s.tmp.Close()
	if err := os.Remove(name); err != nil && !os.IsNotExist(err) {
		s.log.Warnf("unable to remove temporary file '%s': %s", name, err)
	}
}
