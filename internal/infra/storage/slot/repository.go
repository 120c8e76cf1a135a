package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/keyvisit/KV-ViewingService/internal/domain"
	"github.com/keyvisit/KV-ViewingService/pkg/dbmetrics"
	"github.com/keyvisit/KV-ViewingService/pkg/psqlbuilder"
)

// Код ошибки PostgreSQL при нарушении CHECK-ограничения
const pgCheckViolation = "23514"

// Repository репозиторий для работы со слотами просмотров
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch вставляет пачку слотов одного объекта
// Вызывается только внутри транзакции публикации доступности: проверка
// пересечений с уже существующими слотами выполняется usecase-ом под
// блокировкой FOR UPDATE до вставки.
// Возвращает созданные слоты в порядке входных интервалов.
func (r *Repository) CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	if len(slots) == 0 {
		return slots, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns(
			"property_id",
			"owner_id",
			"start_at",
			"end_at",
		)

	for _, s := range slots {
		builder = builder.Values(
			s.PropertyID,
			s.OwnerID,
			s.StartAt,
			s.EndAt,
		)
	}

	query, args, err := builder.
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pgCheckViolation {
			return nil, ErrInvalidInterval
		}
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		var createdAt sql.NullTime
		if err := rows.Scan(&slots[i].ID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returned row: %v", ErrScanRow, err)
		}
		slots[i].CreatedAt = createdAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется через FOR UPDATE
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"property_id",
		"owner_id",
		"start_at",
		"end_at",
		"created_at",
	).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var slot domain.Slot
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.PropertyID,
		&slot.OwnerID,
		&slot.StartAt,
		&slot.EndAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	slot.CreatedAt = createdAt.Time

	return &slot, nil
}

// ListByProperty получает слоты объекта, пересекающиеся с окном [from, to)
// Обе границы опциональны. Слоты упорядочены по времени начала (ASC).
// Внутри транзакции выборка блокируется через FOR UPDATE - этим пользуется
// публикация доступности, чтобы исключить параллельную вставку
// пересекающегося слота.
func (r *Repository) ListByProperty(ctx context.Context, propertyID int64, from, to *time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"property_id",
		"owner_id",
		"start_at",
		"end_at",
		"created_at",
	).
		From("slots").
		Where(squirrel.Eq{"property_id": propertyID}).
		OrderBy("start_at ASC")

	// Пересечение с окном: start_at < to AND end_at > from
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *to})
	}
	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *from})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProperty - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProperty - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var slot domain.Slot
		var createdAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.PropertyID,
			&slot.OwnerID,
			&slot.StartAt,
			&slot.EndAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByProperty - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByProperty - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Delete удаляет слот
// Слоты неизменяемы, поэтому отзыв доступности - единственная операция
// записи после создания. Вызывается usecase-ом отзыва после проверки
// активных записей на просмотр.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}
