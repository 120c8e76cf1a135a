package listingservice

// Property модель объекта недвижимости из ListingService
type Property struct {
	ID                 int64  `json:"id"`
	OwnerID            int64  `json:"owner_id"`
	Title              string `json:"title"`
	Location           string `json:"location"`
	Status             string `json:"status"` // available, pending, sold, rented
	SelfViewingEnabled bool   `json:"self_viewing_enabled"`
}

// IsListed сообщает, принимает ли объект новые просмотры
func (p *Property) IsListed() bool {
	return p.Status == "available" || p.Status == "pending"
}

// ErrorResponse модель ошибки от ListingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
