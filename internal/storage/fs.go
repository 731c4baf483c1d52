package storage

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./data"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

// canonical rejects empty keys and keys escaping the base directory.
func canonical(key string) (string, error) {
	k := path.Clean("/" + strings.ReplaceAll(key, `\`, "/"))
	k = strings.TrimPrefix(k, "/")
	if k == "" || k == "." {
		return "", ErrBadKey
	}
	return k, nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	k, err := canonical(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.base, filepath.FromSlash(k))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", err
	}
	return k, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	k, err := canonical(key)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.base, filepath.FromSlash(k)))
}
