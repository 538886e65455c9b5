package recorder

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/mj1618/a11y-check/internal/filelock"
	"github.com/mj1618/a11y-check/internal/logging"
)

// Load reads the setting at path. A missing file is replaced by Default(cat)
// and persisted. Otherwise events new to cat are merged in and the file is
// rewritten when any were added. ListenAll is always false after Load.
func Load(path string, cat Catalog, logger hclog.Logger) (*Setting, error) {
	logger = logging.OrNull(logger)
	var s *Setting
	err := filelock.WithLock(path, func() error {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			s = Default(cat)
			logger.Info("writing default recorder setting", "path", path)
			return write(path, s)
		}
		if err != nil {
			return fmt.Errorf("read recorder setting: %w", err)
		}
		s, err = Decode(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if added := Merge(s, cat.Events); added > 0 {
			logger.Info("merged new events into recorder setting", "path", path, "added", added)
			if err := write(path, s); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.ListenAll = false
	return s, nil
}

// Save persists s to path atomically under the document lock.
func Save(path string, s *Setting) error {
	data, err := s.marshal()
	if err != nil {
		return err
	}
	return filelock.LockAndWrite(path, data)
}

func write(path string, s *Setting) error {
	data, err := s.marshal()
	if err != nil {
		return err
	}
	return filelock.AtomicWrite(path, data)
}
