package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sonitraders/invoicify-api/internal/application/render"
	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/internal/domain/repository"
	"github.com/sonitraders/invoicify-api/pkg/apperror"
	"github.com/sonitraders/invoicify-api/pkg/pagination"
	"github.com/sonitraders/invoicify-api/pkg/qr"
	"github.com/sonitraders/invoicify-api/pkg/upi"
)

// Placeholder UPI values encoded when no VPA and no stored QR are configured.
const (
	demoVpa       = "demo@paytm"
	demoPayeeName = "Your Business"
)

// docDateLayout is the dd/mm/yyyy format printed on invoices.
const docDateLayout = "02/01/2006"

// InvoiceService drives the invoice lifecycle: drafting, totals, numbering,
// payment artifact resolution, rendering, persistence and dispatch.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	profileRepo repository.SellerProfileRepository
	catalog     CatalogFetcher
	dispatch    *DispatchService
	qrWidth     int
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	profileRepo repository.SellerProfileRepository,
	catalog CatalogFetcher,
	dispatch *DispatchService,
	qrWidth int,
) *InvoiceService {
	if qrWidth <= 0 {
		qrWidth = qr.DefaultWidth
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		profileRepo: profileRepo,
		catalog:     catalog,
		dispatch:    dispatch,
		qrWidth:     qrWidth,
	}
}

// InvoiceItemInput is one submitted line item row. Quantity and rate arrive
// as strings and degrade to safe defaults on bad input, mirroring the form
// fields they come from.
type InvoiceItemInput struct {
	CatalogID   string `json:"catalog_id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
}

// GenerateInvoiceInput carries a submitted invoice form. Nil discount or tax
// means "use the profile default"; an explicit value (including "0")
// overrides it.
type GenerateInvoiceInput struct {
	CustomerName    string             `json:"customer_name"`
	CustomerAddress string             `json:"customer_address"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerEmail   string             `json:"customer_email"`
	CustomerGstin   string             `json:"customer_gstin"`
	Items           []InvoiceItemInput `json:"items"`

	DiscountPercentage *string `json:"discount_percentage"`
	TaxRate            *string `json:"tax_rate"`
}

// GenerateInvoiceResult is the outcome of generating an invoice. Warning is
// set when the invoice was created but the document could not be dispatched.
type GenerateInvoiceResult struct {
	Invoice  *entity.Invoice         `json:"invoice"`
	Document *entity.InvoiceDocument `json:"document"`
	Warning  string                  `json:"warning,omitempty"`
}

// GenerateInvoice validates the submitted form, assigns the next invoice
// number, computes totals, persists the invoice and sends the rendered
// document to the output sink. A dispatch failure does not fail the
// generation: the invoice is already stored and the warning carries the
// failure.
func (s *InvoiceService) GenerateInvoice(ctx context.Context, input *GenerateInvoiceInput) (*GenerateInvoiceResult, error) {
	prepared, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	nextNum, err := s.invoiceRepo.GetNextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	invoice := s.buildInvoice(fmt.Sprintf("INV-%06d", nextNum), input, prepared)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	artifact := s.resolveArtifact(ctx, prepared.profile, invoice.Total, invoice.InvoiceNumber)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	doc := buildDocument(invoice, prepared.profile, artifact)

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	result := &GenerateInvoiceResult{Invoice: invoice, Document: doc}
	if err := s.dispatchDocument(doc); err != nil {
		log.Printf("Dispatch error (invoice %s): %v", invoice.InvoiceNumber, err)
		result.Warning = fmt.Sprintf("invoice created but document dispatch failed: %v", err)
	}
	return result, nil
}

// PreviewInvoice runs the same pipeline as GenerateInvoice but persists and
// dispatches nothing. The returned invoice carries the number the next
// generation would get.
func (s *InvoiceService) PreviewInvoice(ctx context.Context, input *GenerateInvoiceInput) (*GenerateInvoiceResult, error) {
	prepared, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	nextNum, err := s.invoiceRepo.GetNextInvoiceNumber(ctx)
	if err != nil {
		return nil, err
	}
	invoice := s.buildInvoice(fmt.Sprintf("INV-%06d", nextNum), input, prepared)

	artifact := s.resolveArtifact(ctx, prepared.profile, invoice.Total, invoice.InvoiceNumber)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &GenerateInvoiceResult{
		Invoice:  invoice,
		Document: buildDocument(invoice, prepared.profile, artifact),
	}, nil
}

// preparedInvoice is the validated intermediate state shared by generate and
// preview.
type preparedInvoice struct {
	profile *entity.SellerProfile
	draft   *entity.InvoiceDraft
	totals  entity.Totals
}

func (s *InvoiceService) prepare(ctx context.Context, input *GenerateInvoiceInput) (*preparedInvoice, error) {
	if strings.TrimSpace(input.CustomerName) == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "customer_name", Message: "Customer name is required"},
		})
	}

	profile, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := s.buildDraft(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	if len(draft.FilledItems()) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "At least one line item with a name is required"},
		})
	}

	discount := decimal.NewFromFloat(profile.DiscountPercentage)
	if input.DiscountPercentage != nil {
		discount = entity.ParsePercent(*input.DiscountPercentage)
	}
	taxRate := decimal.NewFromFloat(profile.TaxPercentage)
	if input.TaxRate != nil {
		taxRate = entity.ParsePercent(*input.TaxRate)
	}

	return &preparedInvoice{
		profile: profile,
		draft:   draft,
		totals:  draft.ComputeTotals(discount, taxRate),
	}, nil
}

// buildDraft replays the submitted rows through the draft so every row ends
// up with the clamped quantity and derived amount. Catalog lookups that fail
// degrade to the submitted description and rate; only rows that reference a
// catalog item and carry nothing else are lost that way, and they fall out
// as unfilled.
func (s *InvoiceService) buildDraft(ctx context.Context, items []InvoiceItemInput) (*entity.InvoiceDraft, error) {
	var catalogByID map[string]*entity.CatalogItem
	for _, in := range items {
		if in.CatalogID == "" {
			continue
		}
		fetched, err := s.catalog.FetchItems(ctx)
		if err != nil {
			log.Printf("Catalog fetch failed, continuing without item lookup: %v", err)
			break
		}
		catalogByID = make(map[string]*entity.CatalogItem, len(fetched))
		for i := range fetched {
			catalogByID[fetched[i].ID] = &fetched[i]
		}
		break
	}

	draft := entity.NewInvoiceDraft()
	for i, in := range items {
		if i > 0 {
			draft.AddLineItem()
		}
		item := catalogByID[in.CatalogID]
		if item != nil {
			draft.UpdateLineItem(i, entity.LineItemFieldCatalog, "", item)
		}
		if in.Description != "" {
			draft.UpdateLineItem(i, entity.LineItemFieldDescription, in.Description, nil)
		}
		draft.UpdateLineItem(i, entity.LineItemFieldQuantity, in.Quantity, item)
		if strings.TrimSpace(in.Rate) != "" {
			draft.UpdateLineItem(i, entity.LineItemFieldRate, in.Rate, nil)
		}
	}
	return draft, nil
}

func (s *InvoiceService) buildInvoice(number string, input *GenerateInvoiceInput, prepared *preparedInvoice) *entity.Invoice {
	totals := prepared.totals
	invoice := &entity.Invoice{
		InvoiceNumber: number,
		Date:          time.Now(),

		CustomerName:    strings.TrimSpace(input.CustomerName),
		CustomerAddress: input.CustomerAddress,
		CustomerPhone:   input.CustomerPhone,
		CustomerEmail:   input.CustomerEmail,
		CustomerGstin:   input.CustomerGstin,

		Subtotal:           totals.Subtotal.InexactFloat64(),
		DiscountPercentage: totals.DiscountPercentage.InexactFloat64(),
		DiscountAmount:     totals.DiscountAmount.InexactFloat64(),
		TaxRate:            totals.TaxRate.InexactFloat64(),
		TaxAmount:          totals.TaxAmount.InexactFloat64(),
		Total:              totals.Total.InexactFloat64(),

		Status: entity.InvoiceStatusPending,
	}

	for i, li := range prepared.draft.FilledItems() {
		invoice.LineItems = append(invoice.LineItems, entity.InvoiceLineItem{
			Position:    i + 1,
			CatalogID:   li.CatalogID,
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate.InexactFloat64(),
			Amount:      li.Amount.InexactFloat64(),
		})
	}
	return invoice
}

// resolveArtifact picks the payment QR for a document. A stored profile QR
// wins outright; otherwise the profile VPA produces a UPI link that gets
// encoded; with neither, a placeholder link is encoded so the printed
// invoice still shows a scannable box. Encoding failures drop the QR rather
// than failing the invoice.
func (s *InvoiceService) resolveArtifact(ctx context.Context, profile *entity.SellerProfile, total float64, invoiceNumber string) entity.PaymentArtifact {
	if profile.PaymentQrCode != "" {
		return entity.PaymentArtifact{
			QRImage: profile.PaymentQrCode,
			Source:  entity.ArtifactSourceStored,
		}
	}

	amount := decimal.NewFromFloat(total)
	note := "Invoice " + invoiceNumber
	source := entity.ArtifactSourceGenerated

	link := upi.BuildPaymentURL(profile.UpiVpa, s.payeeName(profile), amount, note)
	if link == "" {
		link = upi.BuildPaymentURL(demoVpa, demoPayeeName, amount, note)
		source = entity.ArtifactSourceDemo
	}

	image, err := qr.EncodeDataURI(ctx, link, qr.Options{Width: s.qrWidth, Margin: 1})
	if err != nil {
		log.Printf("QR encode failed (invoice %s): %v", invoiceNumber, err)
		return entity.PaymentArtifact{Source: entity.ArtifactSourceNone}
	}
	return entity.PaymentArtifact{QRImage: image, Link: link, Source: source}
}

func (s *InvoiceService) payeeName(profile *entity.SellerProfile) string {
	if profile.ShopName != "" {
		return profile.ShopName
	}
	return DefaultShopName
}

func (s *InvoiceService) getProfile(ctx context.Context) (*entity.SellerProfile, error) {
	profile, err := s.profileRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &entity.SellerProfile{ShopName: DefaultShopName}
	}
	return profile, nil
}

// buildDocument composes the render model from the invoice snapshot, the
// profile and the resolved payment artifact.
func buildDocument(invoice *entity.Invoice, profile *entity.SellerProfile, artifact entity.PaymentArtifact) *entity.InvoiceDocument {
	doc := &entity.InvoiceDocument{
		InvoiceNumber: invoice.InvoiceNumber,
		Date:          invoice.Date.Format(docDateLayout),
		Seller: entity.DocumentSeller{
			ShopName: profile.ShopName,
			Address:  profile.Address,
			City:     profile.City,
			State:    profile.State,
			District: profile.District,
			Phone:    profile.Phone,
			Gstin:    profile.Gstin,
			UpiVpa:   profile.UpiVpa,
		},
		Buyer: entity.DocumentBuyer{
			Name:    invoice.CustomerName,
			Address: invoice.CustomerAddress,
			Phone:   invoice.CustomerPhone,
			Email:   invoice.CustomerEmail,
			Gstin:   invoice.CustomerGstin,
		},
		Payment: entity.DocumentPayment{
			BankName:          profile.BankName,
			BankAccountHolder: profile.BankAccountHolder,
			BankAccountNumber: profile.BankAccountNumber,
			BankIfsc:          profile.BankIfsc,
			BankBranch:        profile.BankBranch,
			QRImage:           artifact.QRImage,
			UpiVpa:            profile.UpiVpa,
		},
		Subtotal:           invoice.Subtotal,
		DiscountPercentage: invoice.DiscountPercentage,
		DiscountAmount:     invoice.DiscountAmount,
		TaxRate:            invoice.TaxRate,
		TaxAmount:          invoice.TaxAmount,
		Total:              invoice.Total,
	}

	for _, li := range invoice.LineItems {
		doc.Items = append(doc.Items, entity.DocumentItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
		})
	}
	return doc
}

func (s *InvoiceService) dispatchDocument(doc *entity.InvoiceDocument) error {
	renderer := render.NewHTMLRenderer()
	data, err := renderer.Render(doc)
	if err != nil {
		return err
	}
	name := fmt.Sprintf("invoice-%s.%s", doc.InvoiceNumber, renderer.FileExt())
	return s.dispatch.Dispatch(name, renderer.ContentType(), data)
}

// GetInvoice retrieves an invoice with its line items.
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithLineItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     string
}

// ListInvoices lists stored invoices with search and status filtering.
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceStatus changes an invoice's payment status.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Invoice, error) {
	switch status {
	case entity.InvoiceStatusPending, entity.InvoiceStatusPaid, entity.InvoiceStatusOverdue:
	default:
		return nil, apperror.NewBadRequestError(fmt.Sprintf("invalid invoice status: %s", status))
	}

	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	invoice.Status = status
	return invoice, nil
}

// DeleteInvoice removes an invoice and its line items.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}
	return s.invoiceRepo.Delete(ctx, id)
}

// RenderDocument rebuilds a stored invoice's document and renders it in the
// requested format. The payment artifact is re-resolved from the current
// profile, so a VPA configured after generation still produces a QR.
func (s *InvoiceService) RenderDocument(ctx context.Context, id uuid.UUID, format string) ([]byte, render.Renderer, error) {
	renderer, err := render.ForFormat(format)
	if err != nil {
		return nil, nil, err
	}

	doc, err := s.documentFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	data, err := renderer.Render(doc)
	if err != nil {
		return nil, nil, err
	}
	return data, renderer, nil
}

// PrintInvoice renders a stored invoice and sends it to the output sink.
// The document is returned even when dispatch fails so the caller can fall
// back to showing it.
func (s *InvoiceService) PrintInvoice(ctx context.Context, id uuid.UUID) (*entity.InvoiceDocument, error) {
	doc, err := s.documentFor(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.dispatchDocument(doc); err != nil {
		log.Printf("Dispatch error (invoice %s): %v", doc.InvoiceNumber, err)
		return doc, fmt.Errorf("failed to dispatch invoice document: %w", err)
	}
	return doc, nil
}

func (s *InvoiceService) documentFor(ctx context.Context, id uuid.UUID) (*entity.InvoiceDocument, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.getProfile(ctx)
	if err != nil {
		return nil, err
	}
	artifact := s.resolveArtifact(ctx, profile, invoice.Total, invoice.InvoiceNumber)
	return buildDocument(invoice, profile, artifact), nil
}
