package publish_availability

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
	existing []*domain.Slot
	nextID   int64
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	out := make([]*domain.Slot, 0, len(slots))
	for _, s := range slots {
		created := *s
		if f.nextID == 0 {
			f.nextID = 1
		}
		created.ID = f.nextID
		f.nextID++
		f.existing = append(f.existing, &created)
		out = append(out, &created)
	}
	return out, nil
}

func (f *fakeSlotRepo) ListByProperty(_ context.Context, propertyID int64, from, to *time.Time) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, s := range f.existing {
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
	testOwnerID    = int64(200)
	testPropertyID = int64(10)
)

func newFixture() (*UseCase, *fakeSlotRepo, time.Time) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeSlotRepo{}
	listing := &fakeListingClient{properties: map[int64]*listingservice.Property{
		testPropertyID: {ID: testPropertyID, OwnerID: testOwnerID, Status: "available", SelfViewingEnabled: true},
	}}
	uc := New(repo, listing, fakeTxManager{}, fixedTime{at: now}, nopLogger{})
	return uc, repo, now
}

func interval(start time.Time, minutes int) domain.Interval {
	return domain.Interval{StartAt: start, EndAt: start.Add(time.Duration(minutes) * time.Minute)}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("PublishesBatchInOrder", func(t *testing.T) {
		uc, _, now := newFixture()
		first := now.Add(time.Hour)
		second := now.Add(3 * time.Hour)

		resp, err := uc.Execute(ctx, &PublishRequest{
			OwnerID:    testOwnerID,
			PropertyID: testPropertyID,
			Intervals:  []domain.Interval{interval(first, 60), interval(second, 30)},
		})
		require.NoError(t, err)
		require.Len(t, resp.Slots, 2)
		assert.Equal(t, first, resp.Slots[0].StartAt)
		assert.Equal(t, second, resp.Slots[1].StartAt)
	})

	t.Run("BackToBackIntervalsAllowed", func(t *testing.T) {
		uc, _, now := newFixture()
		start := now.Add(time.Hour)

		_, err := uc.Execute(ctx, &PublishRequest{
			OwnerID:    testOwnerID,
			PropertyID: testPropertyID,
			Intervals:  []domain.Interval{interval(start, 60), interval(start.Add(time.Hour), 60)},
		})
		assert.NoError(t, err)
	})

	t.Run("OverlapWithinRequestRejected", func(t *testing.T) {
		uc, repo, now := newFixture()
		start := now.Add(time.Hour)

		_, err := uc.Execute(ctx, &PublishRequest{
			OwnerID:    testOwnerID,
			PropertyID: testPropertyID,
			Intervals:  []domain.Interval{interval(start, 60), interval(start.Add(30*time.Minute), 60)},
		})
		assert.ErrorIs(t, err, ErrOverlapConflict)
		// Батч атомарен: ни один слот не создан
		assert.Empty(t, repo.existing)
	})

	t.Run("OverlapWithExistingSlotRejected", func(t *testing.T) {
		uc, repo, now := newFixture()
		start := now.Add(time.Hour)

		_, err := uc.Execute(ctx, &PublishRequest{
			OwnerID:    testOwnerID,
			PropertyID: testPropertyID,
			Intervals:  []domain.Interval{interval(start, 60)},
		})
		require.NoError(t, err)

		_, err = uc.Execute(ctx, &PublishRequest{
			OwnerID:    testOwnerID,
			PropertyID: testPropertyID,
			Intervals:  []domain.Interval{interval(start.Add(30*time.Minute), 60)},
		})
		assert.ErrorIs(t, err, ErrOverlapConflict)
		assert.Len(t, repo.existing, 1)
	})

	t.Run("NotOwnerDenied", func(t *testing.T) {
		uc, _, now := newFixture()

		_, err := uc.Execute(ctx, &PublishRequest{
			OwnerID:    999,
			PropertyID: testPropertyID,
			Intervals:  []domain.Interval{interval(now.Add(time.Hour), 60)},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("UnknownProperty", func(t *testing.T) {
		uc, _, now := newFixture()

		_, err := uc.Execute(ctx, &PublishRequest{
			OwnerID:    testOwnerID,
			PropertyID: 404,
			Intervals:  []domain.Interval{interval(now.Add(time.Hour), 60)},
		})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})
}

func TestValidateIntervals(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)

	t.Run("EmptyList", func(t *testing.T) {
		err := validateIntervals(nil, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("TooManyIntervals", func(t *testing.T) {
		intervals := make([]domain.Interval, domain.MaxIntervalsPerPublish+1)
		cursor := start
		for i := range intervals {
			intervals[i] = interval(cursor, 30)
			cursor = cursor.Add(time.Hour)
		}
		err := validateIntervals(intervals, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("InvertedInterval", func(t *testing.T) {
		err := validateIntervals([]domain.Interval{
			{StartAt: start, EndAt: start.Add(-time.Minute)},
		}, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("TooShort", func(t *testing.T) {
		err := validateIntervals([]domain.Interval{interval(start, domain.MinSlotDurationMinutes-1)}, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("TooLong", func(t *testing.T) {
		err := validateIntervals([]domain.Interval{interval(start, domain.MaxSlotDurationMinutes+1)}, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("PastInterval", func(t *testing.T) {
		err := validateIntervals([]domain.Interval{interval(now.Add(-time.Hour), 30)}, now)
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("DurationBoundsInclusive", func(t *testing.T) {
		assert.NoError(t, validateIntervals([]domain.Interval{interval(start, domain.MinSlotDurationMinutes)}, now))
		assert.NoError(t, validateIntervals([]domain.Interval{interval(start, domain.MaxSlotDurationMinutes)}, now))
	})
}
