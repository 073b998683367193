package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sonitraders/invoicify-api/internal/application/service"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/dto/response"
	"github.com/sonitraders/invoicify-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Generate handles generating a new invoice
// @Summary Generate Invoice
// @Description Validate the submitted form, store the invoice and dispatch its document
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.GenerateInvoiceInput true "Invoice form"
// @Success 201 {object} response.APIResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Generate(c *gin.Context) {
	var input service.GenerateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.invoiceService.GenerateInvoice(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Warning != "" {
		response.SuccessWithWarning(c, 201, "Invoice generated", result, result.Warning)
		return
	}
	response.Created(c, "Invoice generated", result)
}

// Preview handles previewing an invoice without storing it
// @Summary Preview Invoice
// @Description Compute totals and the document for a draft without persisting
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body service.GenerateInvoiceInput true "Invoice form"
// @Success 200 {object} response.APIResponse
// @Router /invoices/preview [post]
func (h *InvoiceHandler) Preview(c *gin.Context) {
	var input service.GenerateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.invoiceService.PreviewInvoice(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice preview computed", result)
}

// List handles listing invoices
// @Summary List Invoices
// @Description Get stored invoices with pagination, search and status filtering
// @Tags invoices
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query string false "Status filter (Pending, Paid, Overdue)"
// @Success 200 {object} response.APIResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid pagination parameters")
		return
	}
	params.Validate()

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), &service.ListInvoicesInput{
		Pagination: params,
		Search:     c.Query("search"),
		Status:     c.Query("status"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice
// @Summary Get Invoice
// @Description Get an invoice with its line items by ID
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Document handles downloading a rendered invoice document
// @Summary Get Invoice Document
// @Description Render a stored invoice as HTML or PDF
// @Tags invoices
// @Produce html,application/pdf
// @Param id path string true "Invoice ID"
// @Param format query string false "Document format (html or pdf)"
// @Success 200 {file} binary
// @Router /invoices/{id}/document [get]
func (h *InvoiceHandler) Document(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, renderer, err := h.invoiceService.RenderDocument(c.Request.Context(), id, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.%s", c.Param("id"), renderer.FileExt())
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	c.Data(200, renderer.ContentType(), data)
}

// Print handles sending a stored invoice to the output sink
// @Summary Print Invoice
// @Description Render a stored invoice and dispatch it to the configured output sink
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/print [post]
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	doc, err := h.invoiceService.PrintInvoice(c.Request.Context(), id)
	if err != nil {
		if doc != nil {
			// The document was built; only dispatch failed.
			response.SuccessWithWarning(c, 200, "Invoice document built", doc, err.Error())
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice dispatched successfully", doc)
}

// UpdateStatusRequest represents the update status request body
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles changing an invoice's payment status
// @Summary Update Invoice Status
// @Description Set an invoice's status to Pending, Paid or Overdue
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id}/status [patch]
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated", invoice)
}

// Delete handles deleting an invoice
// @Summary Delete Invoice
// @Description Delete an invoice and its line items
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} response.APIResponse
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice deleted successfully", nil)
}
