// Package store provides repository access to the document database
// backing listings, subscription preferences, and viewing bookings.
// The Store interface decouples handlers from the concrete Firestore
// client so tests can run against the in-memory implementation.
package store

import (
	"context"

	"github.com/chungli-bot/house-linebot-go/internal/housing"
)

// Collection names in the document database.
const (
	CollectionListings = "listings"
	CollectionForms    = "forms"
	CollectionBookings = "bookings"
)

// ListingQuery narrows a listings scan. Zero values impose no
// constraint: a nil Room or a room count of 0 matches any layout,
// an empty Genre matches any category.
type ListingQuery struct {
	Room  *int
	Genre string
	Top   *bool
	Limit int
}

// Store defines the data operations the bot and form handlers need.
type Store interface {
	// GetListing fetches a single listing by document ID.
	// Returns errors.ErrNotFound when the document does not exist.
	GetListing(ctx context.Context, id string) (*housing.Listing, error)

	// QueryListings returns listings matching the query, in store order.
	QueryListings(ctx context.Context, q ListingQuery) ([]housing.Listing, error)

	// GetPreference fetches the subscription preference for a user.
	// Returns errors.ErrNotFound when the user has never subscribed.
	GetPreference(ctx context.Context, userID string) (*housing.Preference, error)

	// SetPreference upserts the preference keyed by user ID. The
	// created timestamp is written only on first subscription; the
	// updated timestamp is refreshed on every call. Reports whether
	// the document was newly created.
	SetPreference(ctx context.Context, userID string, p *housing.Preference) (created bool, err error)

	// AddBooking appends a viewing booking and returns its document ID.
	AddBooking(ctx context.Context, b *housing.Booking) (string, error)

	// Ready verifies connectivity to the backing database.
	Ready(ctx context.Context) error

	// Close releases the underlying client.
	Close() error
}

// Compile-time interface checks.
var (
	_ Store = (*FirestoreStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
