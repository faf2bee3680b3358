package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/application/procurement"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// PurchaseHandler maneja el flujo de compras: solicitudes, facturas y transiciones.
type PurchaseHandler struct {
	uc    *procurement.UseCase
	pdfUC *procurement.PDFUseCase
}

// NewPurchaseHandler construye el handler de compras.
func NewPurchaseHandler(uc *procurement.UseCase, pdfUC *procurement.PDFUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, pdfUC: pdfUC}
}

// CreateRequest crea una solicitud de compra en estado draft.
// POST /api/purchase/requests
func (h *PurchaseHandler) CreateRequest(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title es requerido"})
	}
	out, err := h.uc.CreateRequest(c.Context(), in, GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetRequest obtiene una solicitud por id.
// GET /api/purchase/requests/:id
func (h *PurchaseHandler) GetRequest(c *fiber.Ctx) error {
	out, err := h.uc.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "solicitud no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListRequests lista solicitudes con filtro opcional ?status= y paginación.
// GET /api/purchase/requests
func (h *PurchaseHandler) ListRequests(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListRequests(c.Context(), c.Query("status"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TransitionRequest aplica una acción de workflow sobre la solicitud.
// POST /api/purchase/requests/:id/transition
func (h *PurchaseHandler) TransitionRequest(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil || in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action es requerido"})
	}
	out, err := h.uc.Transition(c.Context(), c.Params("id"), in.Action, GetUserID(c))
	if err != nil {
		// La DB rechaza transiciones ilegales; se reporta como conflicto.
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()})
	}
	return c.JSON(out)
}

// CreateInvoice registra una factura asociada a una solicitud.
// POST /api/purchase/invoices
func (h *PurchaseHandler) CreateInvoice(c *fiber.Ctx) error {
	var in dto.CreatePurchaseInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.RequestID == "" || in.Number == "" || in.Supplier == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "request_id, number y supplier son requeridos"})
	}
	out, err := h.uc.CreateInvoice(c.Context(), in, GetUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "REQUEST_NOT_FOUND", Message: "la solicitud no existe"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "la factura ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetInvoice obtiene una factura por id.
// GET /api/purchase/invoices/:id
func (h *PurchaseHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.uc.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListInvoicesByRequest facturas de una solicitud.
// GET /api/purchase/requests/:id/invoices
func (h *PurchaseHandler) ListInvoicesByRequest(c *fiber.Ctx) error {
	out, err := h.uc.ListInvoicesByRequest(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TransitionInvoice aplica una acción de la cadena de aprobación de facturas.
// POST /api/purchase/invoices/:id/transition
func (h *PurchaseHandler) TransitionInvoice(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil || in.Action == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "action es requerido"})
	}
	out, err := h.uc.TransitionInvoice(c.Context(), c.Params("id"), in.Action, GetUserID(c))
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ILLEGAL_TRANSITION", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadInvoicePDF descarga la representación imprimible de la factura.
// GET /api/purchase/invoices/:id/pdf
func (h *PurchaseHandler) DownloadInvoicePDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdfUC.DownloadInvoicePDF(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "factura no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ListRequestLogs historial de acciones de una solicitud.
// GET /api/purchase/requests/:id/logs
func (h *PurchaseHandler) ListRequestLogs(c *fiber.Ctx) error {
	out, err := h.uc.ListLogs(c.Context(), entity.AttachPurchaseRequest, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
