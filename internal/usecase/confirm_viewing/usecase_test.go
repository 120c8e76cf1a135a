package confirm_viewing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	reservationRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
)

type fakeReservationRepo struct {
	byID map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	f.byID[id].Status = status
	return nil
}

type fakeIssuer struct {
	issued []int64
}

func (f *fakeIssuer) Issue(_ context.Context, res *domain.Reservation) (*domain.AccessCredential, error) {
	f.issued = append(f.issued, res.ID)
	return &domain.AccessCredential{ReservationID: res.ID, Code: "12345678"}, nil
}

type fakeListingClient struct {
	properties map[int64]*listingservice.Property
}

func (f *fakeListingClient) GetProperty(_ context.Context, propertyID int64) (*listingservice.Property, error) {
	p, ok := f.properties[propertyID]
	if !ok {
		return nil, listingservice.ErrPropertyNotFound
	}
	return p, nil
}

type fakeNotifier struct {
	events []notifier.ViewingEvent
}

func (f *fakeNotifier) PublishTransition(_ context.Context, event notifier.ViewingEvent) error {
	f.events = append(f.events, event)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ at time.Time }

func (f fixedTime) Now() time.Time { return f.at }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const (
	testVisitorID  = int64(100)
	testOwnerID    = int64(200)
	testPropertyID = int64(10)
)

func newFixture(status domain.ReservationStatus) (*UseCase, *fakeReservationRepo, *fakeIssuer, *fakeNotifier, time.Time) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	repo := &fakeReservationRepo{byID: map[int64]*domain.Reservation{
		1: {
			ID:          1,
			SlotID:      1,
			PropertyID:  testPropertyID,
			VisitorID:   testVisitorID,
			Status:      status,
			SlotStartAt: start,
			SlotEndAt:   start.Add(time.Hour),
		},
	}}
	issuer := &fakeIssuer{}
	notif := &fakeNotifier{}
	listing := &fakeListingClient{properties: map[int64]*listingservice.Property{
		testPropertyID: {ID: testPropertyID, OwnerID: testOwnerID, Status: "available", SelfViewingEnabled: true},
	}}

	uc := New(repo, issuer, listing, notif, fakeTxManager{}, fixedTime{at: now}, nopLogger{})
	return uc, repo, issuer, notif, now
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("OwnerConfirmsPending", func(t *testing.T) {
		uc, repo, issuer, notif, _ := newFixture(domain.StatusPending)

		resp, err := uc.Execute(ctx, &ConfirmRequest{ReservationID: 1, UserID: testOwnerID})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.Equal(t, domain.StatusConfirmed, repo.byID[1].Status)
		// Код доступа выпускается вместе с подтверждением
		assert.Equal(t, []int64{1}, issuer.issued)
		require.Len(t, notif.events, 1)
		assert.Equal(t, domain.TransitionConfirmed, notif.events[0].Transition)
	})

	t.Run("VisitorCannotConfirm", func(t *testing.T) {
		uc, _, issuer, _, _ := newFixture(domain.StatusPending)

		_, err := uc.Execute(ctx, &ConfirmRequest{ReservationID: 1, UserID: testVisitorID})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Empty(t, issuer.issued)
	})

	t.Run("AlreadyConfirmed", func(t *testing.T) {
		uc, _, _, _, _ := newFixture(domain.StatusConfirmed)

		_, err := uc.Execute(ctx, &ConfirmRequest{ReservationID: 1, UserID: testOwnerID})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("CancelledCannotBeConfirmed", func(t *testing.T) {
		uc, _, _, _, _ := newFixture(domain.StatusCancelled)

		_, err := uc.Execute(ctx, &ConfirmRequest{ReservationID: 1, UserID: testOwnerID})
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("StartedSlotCannotBeConfirmed", func(t *testing.T) {
		uc, repo, _, _, now := newFixture(domain.StatusPending)
		repo.byID[1].SlotStartAt = now.Add(-time.Minute)

		_, err := uc.Execute(ctx, &ConfirmRequest{ReservationID: 1, UserID: testOwnerID})
		assert.ErrorIs(t, err, ErrSlotExpired)
	})

	t.Run("UnknownReservation", func(t *testing.T) {
		uc, _, _, _, _ := newFixture(domain.StatusPending)

		_, err := uc.Execute(ctx, &ConfirmRequest{ReservationID: 404, UserID: testOwnerID})
		assert.ErrorIs(t, err, ErrViewingNotFound)
	})
}
