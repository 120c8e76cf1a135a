package credential

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/pkg/dbmetrics"
	"github.com/keyvisit/KV-ViewingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL при нарушении уникальности
const pgUniqueViolation = "23505"

// Repository репозиторий для работы с кодами доступа
// Код хранится только в таблице access_credentials и читается единственным
// путём - через Reveal сервиса credentials. В выборки слотов и записей
// этот репозиторий не участвует.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория кодов доступа
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет выпущенный код доступа
// Уникальный индекс по reservation_id гарантирует не более одного живого
// кода на запись; повторный выпуск возвращает ErrAlreadyIssued
func (r *Repository) Create(ctx context.Context, cred *domain.AccessCredential) (*domain.AccessCredential, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("access_credentials").
		Columns(
			"reservation_id",
			"code",
			"valid_from",
			"valid_until",
		).
		Values(
			cred.ReservationID,
			cred.Code,
			cred.ValidFrom,
			cred.ValidUntil,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cred.ID,
		&createdAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
			return nil, ErrAlreadyIssued
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	cred.CreatedAt = createdAt.Time

	return cred, nil
}

// GetLiveByReservation получает неотозванный код доступа записи
// Проверка окна действия выполняется сервисом, не репозиторием
func (r *Repository) GetLiveByReservation(ctx context.Context, reservationID int64) (*domain.AccessCredential, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"reservation_id",
		"code",
		"valid_from",
		"valid_until",
		"revoked_at",
		"created_at",
	).
		From("access_credentials").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"revoked_at": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByReservation - build select query: %v", ErrBuildQuery, err)
	}

	var cred domain.AccessCredential
	var revokedAt, createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cred.ID,
		&cred.ReservationID,
		&cred.Code,
		&cred.ValidFrom,
		&cred.ValidUntil,
		&revokedAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetLiveByReservation - scan credential: %v", ErrScanRow, err)
	}

	if revokedAt.Valid {
		cred.RevokedAt = &revokedAt.Time
	}
	cred.CreatedAt = createdAt.Time

	return &cred, nil
}

// Revoke немедленно отзывает код доступа записи независимо от окна действия
// Возвращает ErrCredentialNotFound, если живого кода нет - вызывающая
// сторона решает, считать ли это ошибкой (для pending-записей кода
// ещё не существует)
func (r *Repository) Revoke(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("access_credentials").
		Set("revoked_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		Where(squirrel.Eq{"revoked_at": nil}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Revoke - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Revoke - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Revoke - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}
