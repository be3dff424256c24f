package textfile

import (
	"os"
	"path/filepath"

	"github.com/aalvaropc/usbsim/internal/domain"
	"github.com/aalvaropc/usbsim/internal/ports"
)

const defaultPerm = 0o644

// Store reads and writes the transfer's plain-text files.
type Store struct {
	perm   os.FileMode
	mkdirs bool
}

type Option func(*Store)

// WithPerm sets the mode used for newly written files.
func WithPerm(perm os.FileMode) Option {
	return func(s *Store) { s.perm = perm }
}

// WithMkdirs creates missing parent directories before writing.
func WithMkdirs(enabled bool) Option {
	return func(s *Store) { s.mkdirs = enabled }
}

func New(opts ...Option) *Store {
	s := &Store{perm: defaultPerm}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.TextStore = (*Store)(nil)

// WriteText replaces path with content. The file is written next to the
// target and renamed into place, so readers never see a partial write.
func (s *Store) WriteText(path, content string) error {
	if s.mkdirs {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{
				Op:   "textfile.mkdir",
				Kind: domain.KindIO,
				Path: dir,
				Err:  err,
			}
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), s.perm); err != nil {
		return &domain.OpError{
			Op:   "textfile.write",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "textfile.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

func (s *Store) ReadText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.OpError{
			Op:   "textfile.read",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}
	return string(b), nil
}
