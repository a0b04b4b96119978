package port

import "slidergraph/internal/domain"

// DescriptorStore persists generated descriptors.
type DescriptorStore interface {
	Put(d domain.StoredDescriptor) error

	Get(key string) (domain.StoredDescriptor, error)

	List() ([]domain.StoredDescriptor, error)

	Delete(key string) error

	KeysByPath(path string) ([]string, error)

	Paths() ([]string, error)

	Clear() error

	Close() error
}
