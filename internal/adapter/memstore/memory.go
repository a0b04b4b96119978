package memstore

import (
	"fmt"
	"sort"
	"sync"

	"slidergraph/internal/domain"
)

// MemoryStore keeps descriptors in memory. It backs the wasm build, which
// has no file system for bbolt.
type MemoryStore struct {
	mu          sync.RWMutex
	descriptors map[string]domain.StoredDescriptor
	pathKeys    map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		descriptors: make(map[string]domain.StoredDescriptor),
		pathKeys:    make(map[string][]string),
	}
}

func (s *MemoryStore) Put(d domain.StoredDescriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.descriptors[d.Key]
	if ok && old.Path != d.Path {
		s.removePathKey(old.Path, d.Key)
	}
	if !ok || old.Path != d.Path {
		s.pathKeys[d.Path] = append(s.pathKeys[d.Path], d.Key)
	}
	s.descriptors[d.Key] = d
	return nil
}

func (s *MemoryStore) Get(key string) (domain.StoredDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.descriptors[key]
	if !ok {
		return domain.StoredDescriptor{}, fmt.Errorf("descriptor not found: %s", key)
	}
	return d, nil
}

// List returns all descriptors ordered by key.
func (s *MemoryStore) List() ([]domain.StoredDescriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.StoredDescriptor, 0, len(s.descriptors))
	for _, d := range s.descriptors {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.descriptors[key]
	if !ok {
		return nil
	}
	s.removePathKey(d.Path, key)
	delete(s.descriptors, key)
	return nil
}

func (s *MemoryStore) KeysByPath(path string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.pathKeys[path]...), nil
}

func (s *MemoryStore) Paths() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	paths := make([]string, 0, len(s.pathKeys))
	for p := range s.pathKeys {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.descriptors = make(map[string]domain.StoredDescriptor)
	s.pathKeys = make(map[string][]string)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// caller holds the lock
func (s *MemoryStore) removePathKey(path, key string) {
	keys := s.pathKeys[path]
	for i, k := range keys {
		if k == key {
			keys = append(keys[:i], keys[i+1:]...)
			break
		}
	}
	if len(keys) == 0 {
		delete(s.pathKeys, path)
		return
	}
	s.pathKeys[path] = keys
}
