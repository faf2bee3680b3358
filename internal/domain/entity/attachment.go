package entity

import "time"

// Tipos de entidad a la que se puede adjuntar un archivo.
// Cada tipo tiene su propia columna FK en la tabla attachments.
const (
	AttachPurchaseRequest = "purchase_request"
	AttachPurchaseInvoice = "purchase_invoice"
	AttachRDRequest       = "rd_request"
)

// Attachment representa un archivo subido más su fila de metadatos,
// vinculado a una solicitud de compra, una factura o una solicitud de I+D.
// Invariante: el objeto en storage y la fila de metadatos nacen y mueren juntos;
// si falla el insert tras subir el objeto, el objeto huérfano se elimina (compensación).
type Attachment struct {
	ID          string
	EntityType  string // ver constantes Attach*
	EntityID    string
	FileName    string // nombre original, solo informativo; nunca se usa como clave de storage
	StoragePath string
	MimeType    string
	SizeBytes   int64
	UploadedBy  string
	CreatedAt   time.Time
}
