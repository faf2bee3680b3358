package attachments

import (
	"context"
	"io"
	"time"
)

// ObjectStorage es el puerto hacia el almacenamiento de objetos (buckets).
// Lo implementa infrastructure/storage sobre la API REST del servicio.
type ObjectStorage interface {
	// Upload escribe el objeto en el path dado (relativo al bucket de adjuntos).
	Upload(ctx context.Context, path, mimeType string, r io.Reader, size int64) error
	// Remove elimina el objeto. Eliminar un objeto ya inexistente no es error
	// (la limpieza de compensación debe ser idempotente).
	Remove(ctx context.Context, path string) error
	// CreateSignedURL devuelve una URL de descarga con vencimiento. Los
	// adjuntos viven en un bucket privado: solo se sirven por URL firmada.
	CreateSignedURL(ctx context.Context, path string, expiresIn time.Duration) (string, error)
}
