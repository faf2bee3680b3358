package admin

import "context"

// Mailer puerto hacia el correo transaccional (SMTP).
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// IngestTrigger puerto hacia el workflow externo que indexa documentos de la
// base de conocimiento. Un disparo fallido devuelve error; no hay reintentos.
type IngestTrigger interface {
	Trigger(ctx context.Context, documentID, storagePath string) error
}

// PublicURLResolver resuelve la URL pública de un objeto del bucket de la
// base de conocimiento (bucket público, sin firma).
type PublicURLResolver interface {
	GetPublicURL(path string) string
}
