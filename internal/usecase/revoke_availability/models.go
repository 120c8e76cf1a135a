package revoke_availability

// RevokeRequest запрос на отзыв слота владельцем.
// Force разрешает отзыв слота с активным бронированием:
// бронирование отменяется каскадно с отзывом кода доступа.
type RevokeRequest struct {
	SlotID  int64
	OwnerID int64
	Force   bool
}

// RevokeResponse результат отзыва слота
type RevokeResponse struct {
	SlotID                 int64  `json:"slot_id"`
	CancelledReservationID *int64 `json:"cancelled_reservation_id,omitempty"`
}
