package dto

import "time"

// SignupRequest registro de una empresa nueva junto con su usuario owner.
type SignupRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	TaxID       string `json:"tax_id" validate:"omitempty,max=20"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"omitempty,max=200"`
	Timezone    string `json:"timezone" validate:"omitempty,max=64"`
}

// CreateUserRequest alta de un usuario en la empresa del principal (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=owner admin member"`
	Timezone string `json:"timezone" validate:"omitempty,max=64"`
}

// ChangeRoleRequest cambio de rol de un usuario de la empresa.
type ChangeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=owner admin member"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Slug      string    `json:"slug"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
