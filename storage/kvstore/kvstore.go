// Package kvstore is the persistence boundary: a key-value store of JSON
// documents, one key per entity collection. It mirrors the single-writer
// whole-collection read-modify-write model the data was designed around.
package kvstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Store reads and writes JSON documents by key. Get on a missing key is not
// an error: dst is left at its default, the way the UI treated an empty
// collection.
type Store interface {
	Get(key string, dst interface{}) error
	Set(key string, v interface{}) error
}

// fileStore keeps one JSON file per key under a data directory.
type fileStore struct {
	mu  sync.RWMutex
	dir string
}

var _ Store = (*fileStore)(nil)

// OpenFile opens (creating if needed) a file-backed store rooted at dir.
func OpenFile(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating data dir")
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) path(key string) string {
	// keys are internal constants; just guard against path separators
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) Get(key string, dst interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := ioutil.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "reading %s", key)
	}
	return errors.Wrapf(json.Unmarshal(data, dst), "decoding %s", key)
}

func (s *fileStore) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", key)
	}

	// write-then-rename so a crash never leaves a half-written document
	path := s.path(key)
	tmp := path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", key)
	}
	return errors.Wrapf(os.Rename(tmp, path), "committing %s", key)
}
