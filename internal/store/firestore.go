package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/chungli-bot/house-linebot-go/internal/config"
	apperrors "github.com/chungli-bot/house-linebot-go/internal/errors"
	"github.com/chungli-bot/house-linebot-go/internal/housing"
	"github.com/chungli-bot/house-linebot-go/internal/logger"
	"github.com/chungli-bot/house-linebot-go/internal/metrics"
)

// FirestoreStore implements Store on Google Cloud Firestore.
type FirestoreStore struct {
	client  *firestore.Client
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewFirestore initializes the Firebase app and opens a Firestore
// client using the credentials from cfg. Inline JSON credentials take
// precedence over a credentials file path.
func NewFirestore(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (*FirestoreStore, error) {
	var opts []option.ClientOption
	switch {
	case cfg.FirebaseCredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON)))
	case cfg.FirebaseCredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	var fbCfg *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbCfg = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		return nil, apperrors.NewStoreError("", "init", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, apperrors.NewStoreError("", "init", err)
	}

	return &FirestoreStore{
		client:  client,
		log:     log.WithModule("store"),
		metrics: m,
	}, nil
}

// opContext bounds a single request-path Firestore operation so a hung
// read cannot pin a webhook worker (and its singleflight waiters).
func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, config.StoreRequest)
}

func (s *FirestoreStore) observe(collection, op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		outcome = "not_found"
	case err != nil:
		outcome = "error"
	}
	s.metrics.RecordStore(collection, op, outcome, time.Since(start).Seconds())
}

func (s *FirestoreStore) GetListing(ctx context.Context, id string) (*housing.Listing, error) {
	start := time.Now()
	ctx, cancel := opContext(ctx)
	defer cancel()

	snap, err := s.client.Collection(CollectionListings).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		s.observe(CollectionListings, "get", start, apperrors.ErrNotFound)
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		s.observe(CollectionListings, "get", start, err)
		return nil, apperrors.NewStoreError(CollectionListings, "get", err)
	}

	var l housing.Listing
	if err := snap.DataTo(&l); err != nil {
		s.observe(CollectionListings, "get", start, err)
		return nil, apperrors.NewStoreError(CollectionListings, "decode", err)
	}
	l.ID = snap.Ref.ID

	s.observe(CollectionListings, "get", start, nil)
	return &l, nil
}

func (s *FirestoreStore) QueryListings(ctx context.Context, q ListingQuery) ([]housing.Listing, error) {
	start := time.Now()
	ctx, cancel := opContext(ctx)
	defer cancel()

	query := s.client.Collection(CollectionListings).Query
	if q.Room != nil && *q.Room != 0 {
		query = query.Where("room", "==", *q.Room)
	}
	if q.Genre != "" {
		query = query.Where("genre", "==", q.Genre)
	}
	if q.Top != nil {
		query = query.Where("top", "==", *q.Top)
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	var listings []housing.Listing
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.observe(CollectionListings, "query", start, err)
			return nil, apperrors.NewStoreError(CollectionListings, "query", err)
		}

		var l housing.Listing
		if err := snap.DataTo(&l); err != nil {
			s.log.WithError(err).WithField("doc_id", snap.Ref.ID).Warnf("skipping undecodable listing")
			continue
		}
		l.ID = snap.Ref.ID
		listings = append(listings, l)
	}

	s.observe(CollectionListings, "query", start, nil)
	return listings, nil
}

func (s *FirestoreStore) GetPreference(ctx context.Context, userID string) (*housing.Preference, error) {
	start := time.Now()
	ctx, cancel := opContext(ctx)
	defer cancel()

	snap, err := s.client.Collection(CollectionForms).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		s.observe(CollectionForms, "get", start, apperrors.ErrNotFound)
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		s.observe(CollectionForms, "get", start, err)
		return nil, apperrors.NewStoreError(CollectionForms, "get", err)
	}

	var p housing.Preference
	if err := snap.DataTo(&p); err != nil {
		s.observe(CollectionForms, "get", start, err)
		return nil, apperrors.NewStoreError(CollectionForms, "decode", err)
	}

	s.observe(CollectionForms, "get", start, nil)
	return &p, nil
}

func (s *FirestoreStore) SetPreference(ctx context.Context, userID string, p *housing.Preference) (bool, error) {
	start := time.Now()
	ctx, cancel := opContext(ctx)
	defer cancel()
	ref := s.client.Collection(CollectionForms).Doc(userID)

	_, err := ref.Get(ctx)
	created := status.Code(err) == codes.NotFound
	if err != nil && !created {
		s.observe(CollectionForms, "set", start, err)
		return false, apperrors.NewStoreError(CollectionForms, "get", err)
	}

	data := map[string]any{
		"user_id":    userID,
		"budget":     p.Budget,
		"room":       p.Room,
		"genre":      p.Genre,
		"updated_at": firestore.ServerTimestamp,
	}
	if created {
		data["created_at"] = firestore.ServerTimestamp
	}

	if _, err := ref.Set(ctx, data, firestore.MergeAll); err != nil {
		s.observe(CollectionForms, "set", start, err)
		return false, apperrors.NewStoreError(CollectionForms, "set", err)
	}

	s.observe(CollectionForms, "set", start, nil)
	return created, nil
}

func (s *FirestoreStore) AddBooking(ctx context.Context, b *housing.Booking) (string, error) {
	start := time.Now()
	ctx, cancel := opContext(ctx)
	defer cancel()

	ref := s.client.Collection(CollectionBookings).NewDoc()
	data := map[string]any{
		"userId":      b.UserID,
		"displayName": b.DisplayName,
		"name":        b.Name,
		"phone":       b.Phone,
		"timeslot":    b.Timeslot,
		"timeslot_cn": b.TimeslotCN,
		"houseId":     b.HouseID,
		"houseTitle":  b.HouseTitle,
		"created_at":  firestore.ServerTimestamp,
	}

	if _, err := ref.Set(ctx, data); err != nil {
		s.observe(CollectionBookings, "add", start, err)
		return "", apperrors.NewStoreError(CollectionBookings, "add", err)
	}

	s.observe(CollectionBookings, "add", start, nil)
	return ref.ID, nil
}

// BulkUpsertListings writes listing documents keyed by id with merge
// semantics, so reseeding the same file is idempotent. Each document
// gets a server-assigned updated_at.
func (s *FirestoreStore) BulkUpsertListings(ctx context.Context, docs map[string]map[string]any) (int, error) {
	start := time.Now()
	bw := s.client.BulkWriter(ctx)

	count := 0
	for id, data := range docs {
		data["updated_at"] = firestore.ServerTimestamp
		ref := s.client.Collection(CollectionListings).Doc(id)
		if _, err := bw.Set(ref, data, firestore.MergeAll); err != nil {
			s.observe(CollectionListings, "bulk_set", start, err)
			return count, apperrors.NewStoreError(CollectionListings, "bulk_set", err)
		}
		count++
	}
	bw.End()

	s.observe(CollectionListings, "bulk_set", start, nil)
	return count, nil
}

// Ready issues a one-document read against the listings collection to
// confirm the client can reach Firestore.
func (s *FirestoreStore) Ready(ctx context.Context) error {
	ctx, cancel := opContext(ctx)
	defer cancel()

	iter := s.client.Collection(CollectionListings).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && err != iterator.Done {
		return apperrors.NewStoreError(CollectionListings, "ready", err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
