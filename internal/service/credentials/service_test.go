package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	credentialRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/credential"
	reservationRepo "github.com/keyvisit/KV-ViewingService/internal/infra/storage/reservation"
	"github.com/keyvisit/KV-ViewingService/internal/service/credentials/models"
)

type fakeCredentialRepo struct {
	byReservation map[int64]*domain.AccessCredential
	nextID        int64
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{byReservation: make(map[int64]*domain.AccessCredential), nextID: 1}
}

func (f *fakeCredentialRepo) Create(_ context.Context, cred *domain.AccessCredential) (*domain.AccessCredential, error) {
	if existing, ok := f.byReservation[cred.ReservationID]; ok && existing.RevokedAt == nil {
		return nil, credentialRepo.ErrAlreadyIssued
	}
	created := *cred
	created.ID = f.nextID
	f.nextID++
	f.byReservation[cred.ReservationID] = &created
	return &created, nil
}

func (f *fakeCredentialRepo) GetLiveByReservation(_ context.Context, reservationID int64) (*domain.AccessCredential, error) {
	cred, ok := f.byReservation[reservationID]
	if !ok || cred.RevokedAt != nil {
		return nil, credentialRepo.ErrCredentialNotFound
	}
	return cred, nil
}

func (f *fakeCredentialRepo) Revoke(_ context.Context, reservationID int64) error {
	cred, ok := f.byReservation[reservationID]
	if !ok || cred.RevokedAt != nil {
		return credentialRepo.ErrCredentialNotFound
	}
	now := time.Now()
	cred.RevokedAt = &now
	return nil
}

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

func (f *fakeReservationRepo) ExpirePendingDue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeReservationRepo) CompleteConfirmedDue(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(reservations ...*domain.Reservation) (*Service, *fakeCredentialRepo) {
	credRepo := newFakeCredentialRepo()
	resRepo := &fakeReservationRepo{byID: make(map[int64]*domain.Reservation)}
	for _, r := range reservations {
		resRepo.byID[r.ID] = r
	}
	svc := NewService(credRepo, resRepo, domain.DefaultAccessWindowPolicy(), nopLogger{})
	return svc, credRepo
}

func confirmedReservation(id, visitorID int64, start time.Time) *domain.Reservation {
	return &domain.Reservation{
		ID:          id,
		SlotID:      id,
		PropertyID:  10,
		VisitorID:   visitorID,
		Status:      domain.StatusConfirmed,
		SlotStartAt: start,
		SlotEndAt:   start.Add(time.Hour),
	}
}

func TestIssue(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("IssuesForConfirmed", func(t *testing.T) {
		res := confirmedReservation(1, 100, start)
		svc, _ := newTestService(res)

		cred, err := svc.Issue(ctx, res)
		require.NoError(t, err)
		assert.Len(t, cred.Code, domain.AccessCodeLength)
		assert.Equal(t, start.Add(-15*time.Minute), cred.ValidFrom)
		assert.Equal(t, start.Add(time.Hour), cred.ValidUntil)
	})

	t.Run("RejectsPending", func(t *testing.T) {
		res := confirmedReservation(1, 100, start)
		res.Status = domain.StatusPending
		svc, _ := newTestService(res)

		_, err := svc.Issue(ctx, res)
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("RejectsDoubleIssue", func(t *testing.T) {
		res := confirmedReservation(1, 100, start)
		svc, _ := newTestService(res)

		_, err := svc.Issue(ctx, res)
		require.NoError(t, err)
		_, err = svc.Issue(ctx, res)
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestReveal(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*Service, *domain.Reservation) {
		res := confirmedReservation(1, 100, start)
		svc, _ := newTestService(res)
		_, err := svc.Issue(ctx, res)
		require.NoError(t, err)
		return svc, res
	}

	t.Run("InsideWindow", func(t *testing.T) {
		svc, res := setup(t)

		resp, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: res.ID,
			UserID:        res.VisitorID,
			At:            start.Add(10 * time.Minute),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Code, domain.AccessCodeLength)
	})

	t.Run("GraceBeforeStart", func(t *testing.T) {
		svc, res := setup(t)

		_, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: res.ID,
			UserID:        res.VisitorID,
			At:            start.Add(-15 * time.Minute),
		})
		assert.NoError(t, err)
	})

	t.Run("TooEarly", func(t *testing.T) {
		svc, res := setup(t)

		_, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: res.ID,
			UserID:        res.VisitorID,
			At:            start.Add(-16 * time.Minute),
		})
		assert.ErrorIs(t, err, ErrOutsideWindow)
	})

	t.Run("TooLate", func(t *testing.T) {
		svc, res := setup(t)

		_, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: res.ID,
			UserID:        res.VisitorID,
			At:            start.Add(time.Hour + time.Second),
		})
		assert.ErrorIs(t, err, ErrOutsideWindow)
	})

	t.Run("OnlyVisitorReads", func(t *testing.T) {
		svc, res := setup(t)

		_, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: res.ID,
			UserID:        999,
			At:            start.Add(10 * time.Minute),
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("RevokedCode", func(t *testing.T) {
		svc, res := setup(t)
		require.NoError(t, svc.Revoke(ctx, res.ID))

		_, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: res.ID,
			UserID:        res.VisitorID,
			At:            start.Add(10 * time.Minute),
		})
		assert.ErrorIs(t, err, ErrCredentialNotFound)
	})

	t.Run("UnknownReservation", func(t *testing.T) {
		svc, _ := setup(t)

		_, err := svc.Reveal(ctx, &models.RevealRequest{
			ReservationID: 404,
			UserID:        100,
			At:            start,
		})
		assert.ErrorIs(t, err, ErrReservationNotFound)
	})
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("NoCredentialIsNotAnError", func(t *testing.T) {
		res := confirmedReservation(1, 100, start)
		svc, _ := newTestService(res)

		// У pending-записи кода ещё нет
		assert.NoError(t, svc.Revoke(ctx, res.ID))
	})

	t.Run("RevokeIsIdempotent", func(t *testing.T) {
		res := confirmedReservation(1, 100, start)
		svc, _ := newTestService(res)
		_, err := svc.Issue(ctx, res)
		require.NoError(t, err)

		assert.NoError(t, svc.Revoke(ctx, res.ID))
		assert.NoError(t, svc.Revoke(ctx, res.ID))
	})
}
