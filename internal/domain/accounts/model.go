package accounts

import "time"

// Account es un usuario del staff. PasswordHash es bcrypt; nunca se expone por HTTP.
type Account struct {
	ID           string
	Username     string
	PasswordHash string
	EmployeeName string

	CreatedAt time.Time
	UpdatedAt time.Time
}
