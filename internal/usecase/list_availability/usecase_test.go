package list_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/internal/integrations/listingservice"
)

type fakeSlotRepo struct {
	slots []*domain.Slot
}

func (f *fakeSlotRepo) ListByProperty(_ context.Context, propertyID int64, from, to *time.Time) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range f.slots {
		if s.PropertyID != propertyID {
			continue
		}
		if from != nil && !s.EndAt.After(*from) {
			continue
		}
		if to != nil && !s.StartAt.Before(*to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeReservationRepo struct {
	activeBySlot map[int64]*domain.Reservation
	sweepCalls   int
}

func (f *fakeReservationRepo) ListActiveBySlots(_ context.Context, slotIDs []int64) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, id := range slotIDs {
		if res, ok := f.activeBySlot[id]; ok {
			out = append(out, res)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ExpirePendingDue(_ context.Context, _ time.Time) (int64, error) {
	f.sweepCalls++
	return 0, nil
}

func (f *fakeReservationRepo) CompleteConfirmedDue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
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

type fixedTime struct{ at time.Time }

func (f fixedTime) Now() time.Time { return f.at }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const testPropertyID = int64(10)

func newFixture(now time.Time, slots []*domain.Slot, active map[int64]*domain.Reservation) (*UseCase, *fakeReservationRepo) {
	resRepo := &fakeReservationRepo{activeBySlot: active}
	if resRepo.activeBySlot == nil {
		resRepo.activeBySlot = make(map[int64]*domain.Reservation)
	}
	listing := &fakeListingClient{properties: map[int64]*listingservice.Property{
		testPropertyID: {ID: testPropertyID, Status: "available", SelfViewingEnabled: true},
	}}
	uc := New(&fakeSlotRepo{slots: slots}, resRepo, listing, fixedTime{at: now}, nopLogger{})
	return uc, resRepo
}

func slot(id int64, start time.Time) *domain.Slot {
	return &domain.Slot{
		ID:         id,
		PropertyID: testPropertyID,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("AnnotatesReservedSlots", func(t *testing.T) {
		future := now.Add(time.Hour)
		slots := []*domain.Slot{slot(1, future), slot(2, future.Add(2*time.Hour))}
		active := map[int64]*domain.Reservation{
			1: {ID: 5, SlotID: 1, Status: domain.StatusConfirmed},
		}
		uc, _ := newFixture(now, slots, active)

		resp, err := uc.Execute(ctx, &ListRequest{PropertyID: testPropertyID})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)

		assert.True(t, resp.Slots[0].Reserved)
		assert.False(t, resp.Slots[0].Bookable)
		require.NotNil(t, resp.Slots[0].ReservationStatus)
		assert.Equal(t, string(domain.StatusConfirmed), *resp.Slots[0].ReservationStatus)

		assert.False(t, resp.Slots[1].Reserved)
		assert.True(t, resp.Slots[1].Bookable)
		assert.Nil(t, resp.Slots[1].ReservationStatus)
	})

	t.Run("StartedSlotNotBookable", func(t *testing.T) {
		uc, _ := newFixture(now, []*domain.Slot{slot(1, now.Add(-time.Minute))}, nil)

		resp, err := uc.Execute(ctx, &ListRequest{PropertyID: testPropertyID})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 1)
		assert.False(t, resp.Slots[0].Bookable)
	})

	t.Run("SweepRunsBeforeListing", func(t *testing.T) {
		uc, resRepo := newFixture(now, nil, nil)

		_, err := uc.Execute(ctx, &ListRequest{PropertyID: testPropertyID})
		require.NoError(t, err)
		assert.Equal(t, 1, resRepo.sweepCalls)
	})

	t.Run("InvalidWindow", func(t *testing.T) {
		uc, _ := newFixture(now, nil, nil)
		from := now.Add(time.Hour)
		to := now

		_, err := uc.Execute(ctx, &ListRequest{PropertyID: testPropertyID, From: &from, To: &to})
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		uc, _ := newFixture(now, nil, nil)

		_, err := uc.Execute(ctx, &ListRequest{PropertyID: 404})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}
