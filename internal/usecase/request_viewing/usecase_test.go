package request_viewing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	reservationRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	slotRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/slot"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/notifier"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/userservice"
)

type fakeSlotRepo struct {
	byID map[int64]*domain.Slot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

type fakeReservationRepo struct {
	activeBySlot map[int64]bool
	created      []*domain.Reservation
	statuses     map[int64]domain.ReservationStatus
	nextID       int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		activeBySlot: make(map[int64]bool),
		statuses:     make(map[int64]domain.ReservationStatus),
		nextID:       1,
	}
}

func (f *fakeReservationRepo) CreateExclusive(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	if f.activeBySlot[res.SlotID] {
		return nil, reservationRepo.ErrSlotTaken
	}
	f.activeBySlot[res.SlotID] = true

	created := *res
	created.ID = f.nextID
	f.nextID++
	f.created = append(f.created, &created)
	f.statuses[created.ID] = created.Status
	return &created, nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	f.statuses[id] = status
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

type fakeUserClient struct {
	profile *userservice.Profile
	err     error
}

func (f *fakeUserClient) GetProfileWithGracefulDegradation(_ context.Context, _ int64) (*userservice.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
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
	testSlotID     = int64(1)
)

type fixture struct {
	uc       *UseCase
	slots    *fakeSlotRepo
	resRepo  *fakeReservationRepo
	issuer   *fakeIssuer
	notifier *fakeNotifier
	now      time.Time
}

func newFixture(verified bool) *fixture {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	slots := &fakeSlotRepo{byID: map[int64]*domain.Slot{
		testSlotID: {
			ID:         testSlotID,
			PropertyID: testPropertyID,
			OwnerID:    testOwnerID,
			StartAt:    start,
			EndAt:      start.Add(time.Hour),
		},
	}}
	resRepo := newFakeReservationRepo()
	issuer := &fakeIssuer{}
	notif := &fakeNotifier{}
	listing := &fakeListingClient{properties: map[int64]*listingservice.Property{
		testPropertyID: {ID: testPropertyID, OwnerID: testOwnerID, Status: "available", SelfViewingEnabled: true},
	}}
	user := &fakeUserClient{profile: &userservice.Profile{ID: testVisitorID, IsVerified: verified}}

	uc := New(slots, resRepo, issuer, listing, user, notif, fakeTxManager{}, fixedTime{at: now}, nopLogger{})
	return &fixture{uc: uc, slots: slots, resRepo: resRepo, issuer: issuer, notifier: notif, now: now}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("UnverifiedVisitorGetsPending", func(t *testing.T) {
		f := newFixture(false)

		resp, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.False(t, resp.AutoConfirmed)
		assert.Empty(t, f.issuer.issued)
		assert.Empty(t, f.notifier.events)
	})

	t.Run("VerifiedVisitorAutoConfirmedWithCredential", func(t *testing.T) {
		f := newFixture(true)

		resp, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
		assert.True(t, resp.AutoConfirmed)
		assert.Equal(t, []int64{resp.ID}, f.issuer.issued)
		require.Len(t, f.notifier.events, 1)
		assert.Equal(t, domain.TransitionConfirmed, f.notifier.events[0].Transition)
	})

	t.Run("DegradedUserServiceLeavesPending", func(t *testing.T) {
		f := newFixture(false)
		// Graceful degradation: UserService недоступен
		f.uc.userClient = &fakeUserClient{err: fmt.Errorf("%w: user_id=%d", userservice.ErrServiceDegraded, testVisitorID)}

		resp, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.False(t, resp.AutoConfirmed)
		assert.Empty(t, f.issuer.issued)
		assert.Empty(t, f.notifier.events)
	})

	t.Run("MissingProfileLeavesPending", func(t *testing.T) {
		f := newFixture(false)
		f.uc.userClient = &fakeUserClient{err: userservice.ErrProfileNotFound}

		resp, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.False(t, resp.AutoConfirmed)
	})

	t.Run("SecondReservationConflicts", func(t *testing.T) {
		f := newFixture(false)

		_, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: 101, SlotID: testSlotID})
		assert.ErrorIs(t, err, ErrSlotConflict)
	})

	t.Run("UnknownSlot", func(t *testing.T) {
		f := newFixture(false)

		_, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: 404})
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("StartedSlotRejected", func(t *testing.T) {
		f := newFixture(false)
		f.slots.byID[testSlotID].StartAt = f.now.Add(-time.Minute)

		_, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		assert.ErrorIs(t, err, ErrSlotExpired)
	})

	t.Run("OwnerCannotReserveOwnSlot", func(t *testing.T) {
		f := newFixture(false)

		_, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testOwnerID, SlotID: testSlotID})
		assert.ErrorIs(t, err, ErrOwnViewing)
	})

	t.Run("DenormalizedSlotTimesStored", func(t *testing.T) {
		f := newFixture(false)

		_, err := f.uc.Execute(ctx, &RequestViewingRequest{VisitorID: testVisitorID, SlotID: testSlotID})
		require.NoError(t, err)

		created := f.resRepo.created[0]
		assert.Equal(t, f.slots.byID[testSlotID].StartAt, created.SlotStartAt)
		assert.Equal(t, f.slots.byID[testSlotID].EndAt, created.SlotEndAt)
	})
}
