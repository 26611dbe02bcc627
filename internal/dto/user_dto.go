package dto

// UserRequest is the admin create payload. The same validation applies to
// partial updates, field by field.
type UserRequest struct {
	Username  string  `json:"username" validate:"required,max=50"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Bio       *string `json:"bio"`
	Role      string  `json:"role" validate:"omitempty,oneof=user moderator admin"`
}

// UserUpdateRequest is a partial update; only present fields change.
type UserUpdateRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
	FirstName *string `json:"first_name" validate:"omitempty,max=50"`
	LastName  *string `json:"last_name" validate:"omitempty,max=50"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitempty,oneof=user moderator admin"`
}
