// internal/appstate/store.go
package appstate

import (
	"sync"

	"github.com/javajoker/jewelry-atelier/internal/models"
)

type Listener func(State)

// Store owns one session's state. Every mutator replaces the snapshot and
// then calls all subscribers synchronously, in the mutating goroutine, with
// the new snapshot. Mutations and their notifications are serialized, so
// listeners see snapshots in the order they were produced. Listeners may
// call Snapshot but must not call mutators.
type Store struct {
	notifyMu  sync.Mutex
	mu        sync.RWMutex
	state     State
	listeners map[uint64]Listener
	nextID    uint64

	// in-flight counts behind IsLoading and IsGenerating
	loading    int
	generating int
}

func NewStore() *Store {
	return &Store{
		state:     initialState(),
		listeners: make(map[uint64]Listener),
	}
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) update(reduce func(State) State) State {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	next := reduce(s.state)
	s.state = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

func (s *Store) ToggleTheme() State {
	return s.update(toggleTheme)
}

func (s *Store) SetUser(user *models.User) State {
	return s.update(setUser(user))
}

func (s *Store) AddDesign(design models.Design) State {
	return s.update(addDesign(design))
}

func (s *Store) RemoveDesign(id string) State {
	return s.update(removeDesign(id))
}

func (s *Store) ToggleFavorite(id string) State {
	return s.update(toggleFavorite(id))
}

func (s *Store) AddToCart(item models.CartItem) State {
	return s.update(addToCart(item))
}

func (s *Store) RemoveFromCart(designID string) State {
	return s.update(removeFromCart(designID))
}

func (s *Store) UpdateCartQuantity(designID string, quantity int) State {
	return s.update(updateCartQuantity(designID, quantity))
}

// RemoveCartLines settles the given lines, typically the snapshot a
// checkout priced, without touching anything added since.
func (s *Store) RemoveCartLines(lines []models.CartItem) State {
	return s.update(removeCartLines(lines))
}

func (s *Store) ClearCart() State {
	return s.update(clearCart)
}

func (s *Store) SetFilters(filters models.FilterOptions) State {
	return s.update(setFilters(filters))
}

func (s *Store) SetGalleryImages(images []models.GalleryImage) State {
	return s.update(setGalleryImages(images))
}

func (s *Store) AddGalleryImage(image models.GalleryImage) State {
	return s.update(addGalleryImage(image))
}

func (s *Store) AddGeneratedImage(image models.GeneratedImage) State {
	return s.update(addGeneratedImage(image))
}

func (s *Store) RemoveGeneratedImage(id string) State {
	return s.update(removeGeneratedImage(id))
}

func (s *Store) ClearGeneratedImages() State {
	return s.update(clearGeneratedImages)
}

func (s *Store) SetIsLoading(v bool) State {
	return s.update(setIsLoading(v))
}

func (s *Store) SetIsGenerating(v bool) State {
	return s.update(setIsGenerating(v))
}

// BeginLoading raises IsLoading until the returned func is called. Overlapping
// calls keep the flag up until the last one finishes.
func (s *Store) BeginLoading() (done func()) {
	return s.beginBusy(&s.loading, setIsLoading)
}

// BeginGenerating is BeginLoading for IsGenerating.
func (s *Store) BeginGenerating() (done func()) {
	return s.beginBusy(&s.generating, setIsGenerating)
}

func (s *Store) beginBusy(counter *int, set func(bool) func(State) State) func() {
	s.update(func(st State) State {
		*counter++
		return set(true)(st)
	})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.update(func(st State) State {
				*counter--
				return set(*counter > 0)(st)
			})
		})
	}
}
