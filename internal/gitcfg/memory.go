package gitcfg

import "strings"

// MemStore is an in-memory Store that preserves insertion order, matching
// the order git reports keys from a config file. Used by tests.
type MemStore struct {
	keys   []string
	values map[string]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

func (s *MemStore) Get(key string) (string, error) {
	return s.values[key], nil
}

func (s *MemStore) Set(key, value string) error {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
	return nil
}

func (s *MemStore) Unset(key string) error {
	if _, ok := s.values[key]; !ok {
		return ErrUnset
	}
	delete(s.values, key)
	s.deleteKey(key)
	return nil
}

func (s *MemStore) List(prefix string) ([]Entry, error) {
	var entries []Entry
	for _, key := range s.keys {
		if strings.HasPrefix(key, prefix) {
			entries = append(entries, Entry{Key: key, Value: s.values[key]})
		}
	}
	return entries, nil
}

func (s *MemStore) RemoveSection(name string) error {
	prefix := name + "."
	removed := false
	for _, key := range append([]string(nil), s.keys...) {
		if strings.HasPrefix(key, prefix) {
			delete(s.values, key)
			s.deleteKey(key)
			removed = true
		}
	}
	if !removed {
		return ErrNoSection
	}
	return nil
}

func (s *MemStore) deleteKey(key string) {
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return
		}
	}
}
