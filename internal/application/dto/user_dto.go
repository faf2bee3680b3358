package dto

import "time"

// RegisterRequest entrada para registro (auth): email, password.
type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=200"`
}

// ProfileResponse salida de un perfil (sin password).
type ProfileResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

// CreateUserRequest entrada del panel de administración para aprovisionar un usuario.
type CreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"omitempty,min=8"`
	DisplayName string `json:"display_name" validate:"omitempty,max=200"`
	Role        string `json:"role" validate:"required"`
	SendWelcome bool   `json:"send_welcome"`
}

// ImportUsersRequest lote de usuarios a importar. Cada registro se procesa de
// forma independiente: el fallo de uno no aborta el lote.
type ImportUsersRequest struct {
	Users []CreateUserRequest `json:"users" validate:"required,min=1"`
}

// ImportUserResult resultado por registro de la importación.
type ImportUserResult struct {
	Email   string `json:"email"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PasswordResetRequest entrada para emitir un enlace de restablecimiento.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetResponse salida con el enlace de un solo uso.
type PasswordResetResponse struct {
	Success bool   `json:"success"`
	Link    string `json:"link"`
}

// ResetPasswordRequest canje del enlace de restablecimiento.
type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
