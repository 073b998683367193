package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sonitraders/invoicify-api/internal/application/service"
	"github.com/sonitraders/invoicify-api/internal/presentation/http/dto/response"
)

// PrintHandler handles output sink HTTP requests.
type PrintHandler struct {
	dispatchService *service.DispatchService
}

// NewPrintHandler creates a new print handler.
func NewPrintHandler(dispatchService *service.DispatchService) *PrintHandler {
	return &PrintHandler{dispatchService: dispatchService}
}

// GetStatus returns the current output sink status.
func (h *PrintHandler) GetStatus(c *gin.Context) {
	status := h.dispatchService.GetStatus()
	response.OK(c, "Output sink status retrieved", status)
}

// Test sends a sample invoice document to the output sink.
func (h *PrintHandler) Test(c *gin.Context) {
	doc, err := h.dispatchService.TestDispatch()
	if err != nil {
		// Return the document anyway (useful when the sink type is "none")
		response.OK(c, "Test dispatch completed (sink may be disabled)", gin.H{
			"document": doc,
			"warning":  err.Error(),
		})
		return
	}

	response.OK(c, "Test document sent to output sink", gin.H{
		"document": doc,
	})
}
