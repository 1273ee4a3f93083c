package dto

type CreateUserInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// UpdateUserInput leaves nil fields unchanged.
type UpdateUserInput struct {
	ID       string
	Name     *string
	Email    *string
	Phone    *string
	Password *string
}
