package domain

const RoleUser = "ROLE_USER"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Roles        []string
}
