package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

func TestMemoryStoreListings(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	s.PutListing("a", housing.Listing{Title: "A", Genre: "華廈", Room: intPtr(3), Top: true})
	s.PutListing("b", housing.Listing{Title: "B", Genre: "透天", Room: intPtr(4)})
	s.PutListing("c", housing.Listing{Title: "C", Genre: "華廈", Room: intPtr(2), Top: true})
	s.PutListing("d", housing.Listing{Title: "D", Genre: "華廈", Room: intPtr(3)})

	t.Run("get by id", func(t *testing.T) {
		l, err := s.GetListing(ctx, "b")
		require.NoError(t, err)
		assert.Equal(t, "B", l.Title)
		assert.Equal(t, "b", l.ID)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := s.GetListing(ctx, "nope")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("query by genre and room", func(t *testing.T) {
		got, err := s.QueryListings(ctx, ListingQuery{Genre: "華廈", Room: intPtr(3)})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "d", got[1].ID)
	})

	t.Run("room zero matches any", func(t *testing.T) {
		got, err := s.QueryListings(ctx, ListingQuery{Room: intPtr(0)})
		require.NoError(t, err)
		assert.Len(t, got, 4)
	})

	t.Run("top with limit", func(t *testing.T) {
		got, err := s.QueryListings(ctx, ListingQuery{Top: boolPtr(true), Limit: 1})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})
}

func TestMemoryStorePreferenceUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	created, err := s.SetPreference(ctx, "u1", &housing.Preference{Budget: "1000-1500", Room: "3", Genre: "華廈"})
	require.NoError(t, err)
	assert.True(t, created)

	first, err := s.GetPreference(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "1000-1500", first.Budget)
	assert.Equal(t, clock, first.CreatedAt)
	assert.Equal(t, clock, first.UpdatedAt)

	// Resubmission updates in place, keeps the creation timestamp.
	clock = clock.Add(time.Hour)
	created, err = s.SetPreference(ctx, "u1", &housing.Preference{Budget: "2000萬以下", Room: "0", Genre: ""})
	require.NoError(t, err)
	assert.False(t, created)

	second, err := s.GetPreference(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "2000萬以下", second.Budget)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.True(t, second.UpdatedAt.After(second.CreatedAt))
}

func TestMemoryStoreBookings(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	id, err := s.AddBooking(ctx, &housing.Booking{
		UserID:     "u1",
		Name:       "王先生",
		Phone:      "0912345678",
		Timeslot:   "weekend-morning",
		TimeslotCN: "假日早上",
		HouseID:    "h1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	all := s.Bookings()
	require.Len(t, all, 1)
	assert.Equal(t, "u1", all[id].UserID)
	assert.False(t, all[id].CreatedAt.IsZero())
}
