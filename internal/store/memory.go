package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
)

// MemoryStore is an in-memory Store used by tests and local runs
// without Firestore credentials. Listings are returned in insertion
// order to mirror a stable store scan.
type MemoryStore struct {
	mu          sync.Mutex
	listings    map[string]housing.Listing
	order       []string
	preferences map[string]housing.Preference
	bookings    map[string]housing.Booking
	nextBooking int

	// now is swappable in tests.
	now func() time.Time

	// GetListingCalls counts GetListing invocations, letting tests
	// verify cache hits bypass the store.
	GetListingCalls int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		listings:    make(map[string]housing.Listing),
		preferences: make(map[string]housing.Preference),
		bookings:    make(map[string]housing.Booking),
		now:         time.Now,
	}
}

// PutListing inserts or replaces a listing. Test seeding helper.
func (s *MemoryStore) PutListing(id string, l housing.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listings[id]; !ok {
		s.order = append(s.order, id)
	}
	l.ID = id
	s.listings[id] = l
}

func (s *MemoryStore) GetListing(_ context.Context, id string) (*housing.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.GetListingCalls++
	l, ok := s.listings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &l, nil
}

func (s *MemoryStore) QueryListings(_ context.Context, q ListingQuery) ([]housing.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []housing.Listing
	for _, id := range s.order {
		l := s.listings[id]
		if q.Room != nil && *q.Room != 0 {
			if l.Room == nil || *l.Room != *q.Room {
				continue
			}
		}
		if q.Genre != "" && l.Genre != q.Genre {
			continue
		}
		if q.Top != nil && l.Top != *q.Top {
			continue
		}
		out = append(out, l)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

func (s *MemoryStore) GetPreference(_ context.Context, userID string) (*housing.Preference, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.preferences[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) SetPreference(_ context.Context, userID string, p *housing.Preference) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.preferences[userID]
	stored := housing.Preference{
		UserID:    userID,
		Budget:    p.Budget,
		Room:      p.Room,
		Genre:     p.Genre,
		UpdatedAt: s.now(),
	}
	if ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = stored.UpdatedAt
	}
	s.preferences[userID] = stored
	return !ok, nil
}

func (s *MemoryStore) AddBooking(_ context.Context, b *housing.Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextBooking++
	id := fmt.Sprintf("booking-%d", s.nextBooking)

	stored := *b
	stored.CreatedAt = s.now()
	s.bookings[id] = stored
	return id, nil
}

// Bookings returns a copy of all stored bookings keyed by document ID.
func (s *MemoryStore) Bookings() map[string]housing.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]housing.Booking, len(s.bookings))
	for id, b := range s.bookings {
		out[id] = b
	}
	return out
}

func (s *MemoryStore) Ready(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
