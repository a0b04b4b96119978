package store

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.etcd.io/bbolt"
	"slidergraph/internal/domain"
)

var (
	bucketDescriptors = []byte("descriptors")
	bucketPaths       = []byte("path_descriptors")
	bucketMeta        = []byte("meta")
)

// BoltStore persists generated descriptors in a bbolt file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, b := range [][]byte{bucketDescriptors, bucketPaths, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(b); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", b, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Key builds the store key of one function in one file.
func Key(path, function string) string {
	return path + "#" + function
}

func (s *BoltStore) Put(d domain.StoredDescriptor) error {
	if d.Key == "" {
		d.Key = Key(d.Path, d.Function)
	}
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketDescriptors).Put([]byte(d.Key), data); err != nil {
			return err
		}
		return addPathKey(tx, d.Path, d.Key)
	})
}

func (s *BoltStore) Get(key string) (domain.StoredDescriptor, error) {
	var d domain.StoredDescriptor
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketDescriptors).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("descriptor not found: %s", key)
		}
		return json.Unmarshal(data, &d)
	})
	return d, err
}

// List returns all descriptors ordered by key.
func (s *BoltStore) List() ([]domain.StoredDescriptor, error) {
	var out []domain.StoredDescriptor
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDescriptors).ForEach(func(k, v []byte) error {
			var d domain.StoredDescriptor
			if err := json.Unmarshal(v, &d); err != nil {
				return fmt.Errorf("decode %s: %w", k, err)
			}
			out = append(out, d)
			return nil
		})
	})
	return out, err
}

// KeysByPath returns the descriptor keys generated from one file.
func (s *BoltStore) KeysByPath(path string) ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPaths).Get([]byte(path))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &keys)
	})
	return keys, err
}

// Paths returns every source path that has descriptors.
func (s *BoltStore) Paths() ([]string, error) {
	var paths []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPaths).ForEach(func(k, _ []byte) error {
			paths = append(paths, string(k))
			return nil
		})
	})
	return paths, err
}

func (s *BoltStore) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketDescriptors)
		data := b.Get([]byte(key))
		if data == nil {
			return nil
		}
		var d domain.StoredDescriptor
		if err := json.Unmarshal(data, &d); err == nil {
			if err := removePathKey(tx, d.Path, key); err != nil {
				return err
			}
		}
		return b.Delete([]byte(key))
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func addPathKey(tx *bbolt.Tx, path, key string) error {
	b := tx.Bucket(bucketPaths)
	var keys []string
	if existing := b.Get([]byte(path)); existing != nil {
		if err := json.Unmarshal(existing, &keys); err != nil {
			return err
		}
	}
	for _, k := range keys {
		if k == key {
			return nil
		}
	}
	keys = append(keys, key)
	sort.Strings(keys)
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return b.Put([]byte(path), data)
}

func removePathKey(tx *bbolt.Tx, path, key string) error {
	b := tx.Bucket(bucketPaths)
	existing := b.Get([]byte(path))
	if existing == nil {
		return nil
	}
	var keys []string
	if err := json.Unmarshal(existing, &keys); err != nil {
		return err
	}
	kept := keys[:0]
	for _, k := range keys {
		if k != key {
			kept = append(kept, k)
		}
	}
	if len(kept) == 0 {
		return b.Delete([]byte(path))
	}
	data, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return b.Put([]byte(path), data)
}
