package auth

// Claims representa la identidad de una cuenta autenticada.
type Claims struct {
	UserID       string
	Username     string
	EmployeeName string
}
