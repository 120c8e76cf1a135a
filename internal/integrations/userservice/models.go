package userservice

// Profile модель профиля из UserService
type Profile struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"` // user, agent, admin
	IsVerified bool   `json:"is_verified"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
