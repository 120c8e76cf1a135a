package domain

import "time"

// ReservationStatus represents the status of a viewing reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// CancelActor identifies who triggered a cancellation
type CancelActor string

const (
	ActorVisitor CancelActor = "visitor"
	ActorOwner   CancelActor = "owner"
	ActorSystem  CancelActor = "system"
)

// Reservation represents a visitor's exclusive claim on a Slot.
// At most one reservation per slot may be in a non-terminal status
// at any time; the storage layer enforces this with a partial unique
// index and the reserve flow with an atomic conditional insert.
type Reservation struct {
	ID         int64
	SlotID     int64
	PropertyID int64
	VisitorID  int64
	Status     ReservationStatus

	// Denormalized slot interval; drives the lazy expiry/completion sweep
	// without joining the slots table
	SlotStartAt time.Time
	SlotEndAt   time.Time

	CancellationReason *string
	CancelledBy        *CancelActor
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation holds the slot
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsTerminal returns true if no transition leaves the current status
func (r *Reservation) IsTerminal() bool {
	return r.Status == StatusCancelled || r.Status == StatusCompleted
}

// CanBeConfirmed returns true if the reservation may transition to confirmed
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if the reservation may transition to cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// PropertyViewingsFilter фильтр для получения записей на просмотр по объекту
type PropertyViewingsFilter struct {
	PropertyID      int64              // Обязательный параметр
	SlotID          *int64             // Фильтр по слоту (опционально)
	From            *time.Time         // Начало периода по времени слота (опционально)
	To              *time.Time         // Конец периода по времени слота (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeTerminal bool               // Включать ли отменённые и завершённые записи
}
