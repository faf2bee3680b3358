package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Profile representa la identidad visible de un usuario autenticado y su rol asignado.
type Profile struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  string
	Role         Role
	Status       string // active, suspended, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PasswordReset es un enlace de acción de un solo uso. Solo se persiste el
// hash del token; el token plano únicamente viaja en el correo.
type PasswordReset struct {
	ID        string
	ProfileID string
	TokenHash string
	ExpiresAt time.Time
	UsedAt    *time.Time // nil mientras no se canjee
	CreatedAt time.Time
}

// HashResetToken hash SHA-256 en hex del token plano del enlace.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
