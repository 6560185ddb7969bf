package imaging

import (
	"sort"
	"sync"
)

// Store maps image names to images.
//
// Storing under an existing name replaces the previous image (last write
// wins). Nothing is ever evicted; a name is only superseded.
//
// Store is safe for concurrent use by multiple goroutines. Because an Image
// never changes after construction, a Get hands out a stable snapshot and
// the lock is only held while the map itself is read or written.
//
// # Example Usage
//
//	store := imaging.NewStore()
//	store.Put("koala", img)
//	img, ok := store.Get("koala")
//	if !ok {
//	    log.Fatal("koala not loaded")
//	}
type Store struct {
	mu     sync.RWMutex
	images map[string]*Image
}

// NewStore creates an empty store, ready for immediate use.
func NewStore() *Store {
	return &Store{
		images: make(map[string]*Image),
	}
}

// Put stores img under name, replacing any image already stored there.
func (s *Store) Put(name string, img *Image) {
	s.mu.Lock()
	s.images[name] = img
	s.mu.Unlock()
}

// Get returns the image stored under name and whether it was present.
func (s *Store) Get(name string) (*Image, bool) {
	s.mu.RLock()
	img, ok := s.images[name]
	s.mu.RUnlock()
	return img, ok
}

// Has reports whether an image is stored under name.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Len returns the number of stored images.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Names returns the stored image names in lexical order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.images))
	for name := range s.images {
		names = append(names, name)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names
}
