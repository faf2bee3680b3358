package procurement

import (
	"context"
	"fmt"

	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

// InvoicePDFGenerator es el puerto hacia el generador de PDF de facturas de compra.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.PurchaseInvoice, request *entity.PurchaseRequest, uploader *entity.Profile) ([]byte, error)
}

// PDFUseCase genera la representación imprimible (PDF) de una factura de compra.
type PDFUseCase struct {
	invoiceRepo repository.PurchaseInvoiceRepository
	requestRepo repository.PurchaseRequestRepository
	profileRepo repository.ProfileRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.PurchaseInvoiceRepository,
	requestRepo repository.PurchaseRequestRepository,
	profileRepo repository.ProfileRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo: invoiceRepo,
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF recupera la factura con su solicitud y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura o su solicitud no existen.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	req, err := uc.requestRepo.GetByID(ctx, inv.RequestID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener solicitud: %w", err)
	}
	if req == nil {
		return nil, "", domain.ErrNotFound
	}

	// El perfil del que subió la factura es informativo; si no existe se omite.
	uploader, err := uc.profileRepo.GetByID(ctx, inv.UploadedBy)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener perfil: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, req, uploader)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("factura_compra_%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
