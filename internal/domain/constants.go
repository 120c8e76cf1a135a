package domain

// Default access window policy values
const (
	// DefaultGraceBeforeMinutes сколько минут до начала слота открывается
	// окно действия кода доступа
	DefaultGraceBeforeMinutes = 15

	// AccessCodeLength длина генерируемого кода (цифровая клавиатура локбокса)
	AccessCodeLength = 8
)

// Business validation constants
const (
	MinSlotDurationMinutes = 15
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxIntervalsPerPublish = 50
	MaxCancelReasonLength  = 500
)

// Reason recorded when the lazy sweep cancels a pending reservation
// whose slot start has passed
const ReasonExpired = "expired"

// Reason recorded when a forced slot revocation cascades cancellation
const ReasonSlotRevoked = "slot revoked by owner"

// Transition names published to the notification queue
const (
	TransitionConfirmed = "reservation.confirmed"
	TransitionCancelled = "reservation.cancelled"
	TransitionCompleted = "reservation.completed"
)

// ActiveStatuses статусы, при которых запись удерживает слот
// Используется при проверке эксклюзивности и при отзыве слотов
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// TerminalStatuses статусы, из которых нет переходов
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
}
