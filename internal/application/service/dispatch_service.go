package service

import (
	"fmt"

	"github.com/sonitraders/invoicify-api/internal/application/render"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/pkg/printout"
)

// DispatchService sends rendered invoice documents to the configured output
// sink. The sink is wrapped so at most one dispatch runs at a time.
type DispatchService struct {
	sink     printout.Sink
	sinkType string
}

// NewDispatchService creates a new dispatch service.
func NewDispatchService(sink printout.Sink, sinkType string) *DispatchService {
	return &DispatchService{
		sink:     printout.Serialize(sink),
		sinkType: sinkType,
	}
}

// DispatchStatus reports the current output sink configuration.
type DispatchStatus struct {
	Configured bool   `json:"configured"`
	Ready      bool   `json:"ready"`
	Type       string `json:"type"`
}

// GetStatus returns the sink configuration and readiness.
func (s *DispatchService) GetStatus() *DispatchStatus {
	return &DispatchStatus{
		Configured: s.sinkType != "none" && s.sinkType != "",
		Ready:      s.sink.IsReady(),
		Type:       s.sinkType,
	}
}

// Dispatch sends one rendered document to the sink.
func (s *DispatchService) Dispatch(name, contentType string, data []byte) error {
	return s.sink.Dispatch(printout.Document{
		Name:        name,
		ContentType: contentType,
		Data:        data,
	})
}

// TestDispatch renders a fixed sample invoice and sends it to the sink.
// The document is returned so the handler can show it when the sink is
// disabled.
func (s *DispatchService) TestDispatch() (*entity.InvoiceDocument, error) {
	doc := &entity.InvoiceDocument{
		InvoiceNumber: "TEST-001",
		Date:          "01/01/2026",
		Seller: entity.DocumentSeller{
			ShopName: "OUTPUT TEST",
			Address:  "Test Address",
			Phone:    "0000000000",
		},
		Buyer: entity.DocumentBuyer{Name: "Test Customer"},
		Items: []entity.DocumentItem{
			{Description: "Test Item 1", Quantity: 1, Rate: 10, Amount: 10},
			{Description: "Test Item 2", Quantity: 2, Rate: 5, Amount: 10},
		},
		Subtotal: 20,
		Total:    20,
	}

	renderer := render.NewHTMLRenderer()
	data, err := renderer.Render(doc)
	if err != nil {
		return doc, err
	}
	if err := s.Dispatch("invoice-TEST-001.html", renderer.ContentType(), data); err != nil {
		return doc, fmt.Errorf("test dispatch failed: %w", err)
	}
	return doc, nil
}

// Close releases the underlying sink.
func (s *DispatchService) Close() error {
	return s.sink.Close()
}
