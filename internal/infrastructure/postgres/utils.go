package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation reporta si err proviene de un índice único violado
// (SQLSTATE 23505). Los repos lo traducen al sentinela de dominio que
// corresponda (email duplicado, factura duplicada...).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// Errores envueltos fuera de la cadena de pgconn conservan el SQLSTATE en el texto.
	return strings.Contains(err.Error(), "23505")
}
