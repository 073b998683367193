package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/internal/domain/repository"
	"github.com/sonitraders/invoicify-api/pkg/apperror"
	"github.com/sonitraders/invoicify-api/pkg/printout"
)

type stubInvoiceRepo struct {
	created []*entity.Invoice
	byID    map[uuid.UUID]*entity.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{byID: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *stubInvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == uuid.Nil {
		invoice.ID = uuid.New()
	}
	r.created = append(r.created, invoice)
	r.byID[invoice.ID] = invoice
	return nil
}

func (r *stubInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.byID[id], nil
}

func (r *stubInvoiceRepo) GetWithLineItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	return r.byID[id], nil
}

func (r *stubInvoiceRepo) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.created {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if inv, ok := r.byID[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *stubInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *stubInvoiceRepo) GetNextInvoiceNumber(ctx context.Context) (int, error) {
	return len(r.created) + 1, nil
}

type stubProfileRepo struct {
	profile *entity.SellerProfile
}

func (r *stubProfileRepo) Get(ctx context.Context) (*entity.SellerProfile, error) {
	return r.profile, nil
}

func (r *stubProfileRepo) Create(ctx context.Context, profile *entity.SellerProfile) error {
	r.profile = profile
	return nil
}

func (r *stubProfileRepo) Update(ctx context.Context, profile *entity.SellerProfile) error {
	r.profile = profile
	return nil
}

type stubCatalog struct {
	items []entity.CatalogItem
	err   error
}

func (c *stubCatalog) FetchItems(ctx context.Context) ([]entity.CatalogItem, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.items, nil
}

// captureSink records dispatched documents.
type captureSink struct {
	docs []printout.Document
	err  error
}

func (s *captureSink) Dispatch(doc printout.Document) error {
	if s.err != nil {
		return s.err
	}
	s.docs = append(s.docs, doc)
	return nil
}

func (s *captureSink) Close() error  { return nil }
func (s *captureSink) IsReady() bool { return true }

type fixture struct {
	svc      *InvoiceService
	invoices *stubInvoiceRepo
	profiles *stubProfileRepo
	catalog  *stubCatalog
	sink     *captureSink
}

func newFixture(profile *entity.SellerProfile) *fixture {
	f := &fixture{
		invoices: newStubInvoiceRepo(),
		profiles: &stubProfileRepo{profile: profile},
		catalog:  &stubCatalog{},
		sink:     &captureSink{},
	}
	dispatch := NewDispatchService(f.sink, "spool")
	f.svc = NewInvoiceService(f.invoices, f.profiles, f.catalog, dispatch, 0)
	return f
}

func TestGenerateInvoiceEndToEnd(t *testing.T) {
	// No VPA and no stored QR: the placeholder link gets encoded.
	f := newFixture(&entity.SellerProfile{ShopName: ""})

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items: []InvoiceItemInput{
			{Description: "Widget", Quantity: "3", Rate: "50"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Invoice)
	require.NotNil(t, result.Document)
	assert.Empty(t, result.Warning)

	assert.Equal(t, "INV-000001", result.Invoice.InvoiceNumber)
	assert.Equal(t, "Acme", result.Invoice.CustomerName)
	assert.Equal(t, entity.InvoiceStatusPending, result.Invoice.Status)
	assert.Equal(t, 150.0, result.Invoice.Subtotal)
	assert.Equal(t, 150.0, result.Invoice.Total)

	require.Len(t, result.Invoice.LineItems, 1)
	assert.Equal(t, 3, result.Invoice.LineItems[0].Quantity)
	assert.Equal(t, 150.0, result.Invoice.LineItems[0].Amount)

	// The placeholder QR still renders a scannable box.
	assert.True(t, strings.HasPrefix(result.Document.Payment.QRImage, "data:image/png;base64,"))

	require.Len(t, f.invoices.created, 1)
	require.Len(t, f.sink.docs, 1)
	assert.Equal(t, "invoice-INV-000001.html", f.sink.docs[0].Name)
	assert.Contains(t, string(f.sink.docs[0].Data), "TAX INVOICE")
}

func TestGenerateInvoiceRequiresCustomerName(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})

	_, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "   ",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Empty(t, f.invoices.created)
	assert.Empty(t, f.sink.docs)
}

func TestGenerateInvoiceRequiresFilledItem(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})

	_, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Quantity: "2", Rate: "10"}},
	})
	require.Error(t, err)
	assert.Empty(t, f.invoices.created)
}

func TestGenerateInvoiceProfileDefaults(t *testing.T) {
	f := newFixture(&entity.SellerProfile{
		ShopName:           "Soni Traders",
		DiscountPercentage: 10,
		TaxPercentage:      5,
	})

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items: []InvoiceItemInput{
			{Description: "Cable", Quantity: "1", Rate: "100"},
			{Description: "Switch", Quantity: "1", Rate: "250"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 350.0, result.Invoice.Subtotal)
	assert.Equal(t, 35.0, result.Invoice.DiscountAmount)
	assert.Equal(t, 15.75, result.Invoice.TaxAmount)
	assert.Equal(t, 330.75, result.Invoice.Total)
}

func TestGenerateInvoiceExplicitZeroOverridesDefaults(t *testing.T) {
	f := newFixture(&entity.SellerProfile{DiscountPercentage: 10, TaxPercentage: 5})

	zero := "0"
	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName:       "Acme",
		Items:              []InvoiceItemInput{{Description: "Cable", Quantity: "1", Rate: "100"}},
		DiscountPercentage: &zero,
		TaxRate:            &zero,
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Invoice.Total)
	assert.Zero(t, result.Invoice.DiscountAmount)
	assert.Zero(t, result.Invoice.TaxAmount)
}

func TestGenerateInvoiceSeedsFromCatalog(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})
	f.catalog.items = []entity.CatalogItem{
		{ID: "7", Name: "Widget", Price: decimal.NewFromInt(50)},
	}

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{CatalogID: "7", Quantity: "3"}},
	})
	require.NoError(t, err)

	require.Len(t, result.Invoice.LineItems, 1)
	li := result.Invoice.LineItems[0]
	assert.Equal(t, "Widget", li.Description)
	assert.Equal(t, "7", li.CatalogID)
	assert.Equal(t, 50.0, li.Rate)
	assert.Equal(t, 150.0, li.Amount)
}

func TestGenerateInvoiceSurvivesCatalogOutage(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})
	f.catalog.err = errors.New("connection refused")

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items: []InvoiceItemInput{
			{CatalogID: "7", Description: "Widget", Quantity: "2", Rate: "50"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, result.Invoice.Total)
}

func TestGenerateInvoiceStoredQRTakesPriority(t *testing.T) {
	stored := "data:image/png;base64,c3RvcmVk"
	f := newFixture(&entity.SellerProfile{
		UpiVpa:        "shop@bank",
		PaymentQrCode: stored,
	})

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.NoError(t, err)
	assert.Equal(t, stored, result.Document.Payment.QRImage)
}

func TestGenerateInvoiceSurvivesQREncodeFailure(t *testing.T) {
	// An oversized VPA pushes the payload past QR capacity.
	f := newFixture(&entity.SellerProfile{UpiVpa: strings.Repeat("x", 8000) + "@bank"})

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Document.Payment.QRImage)
	assert.Len(t, f.invoices.created, 1)
}

func TestGenerateInvoiceDispatchFailureWarns(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})
	f.sink.err = errors.New("spool directory unwritable")

	result, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Warning)
	assert.Len(t, f.invoices.created, 1, "invoice must be stored despite dispatch failure")
}

func TestGenerateInvoiceCancelledContext(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.GenerateInvoice(ctx, &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.invoices.created)
	assert.Empty(t, f.sink.docs)
}

func TestPreviewInvoiceDoesNotPersist(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})

	result, err := f.svc.PreviewInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Quantity: "3", Rate: "50"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "INV-000001", result.Invoice.InvoiceNumber)
	assert.Equal(t, 150.0, result.Invoice.Total)
	assert.Empty(t, f.invoices.created)
	assert.Empty(t, f.sink.docs)
}

func TestPrintInvoiceDispatchesStoredInvoice(t *testing.T) {
	f := newFixture(&entity.SellerProfile{ShopName: "Soni Traders"})

	generated, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.NoError(t, err)
	f.sink.docs = nil

	doc, err := f.svc.PrintInvoice(context.Background(), generated.Invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, generated.Invoice.InvoiceNumber, doc.InvoiceNumber)
	require.Len(t, f.sink.docs, 1)
}

func TestPrintInvoiceNotFound(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})

	_, err := f.svc.PrintInvoice(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}

func TestRenderDocumentRejectsUnknownFormat(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})

	_, _, err := f.svc.RenderDocument(context.Background(), uuid.New(), "docx")
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestUpdateInvoiceStatus(t *testing.T) {
	f := newFixture(&entity.SellerProfile{})

	generated, err := f.svc.GenerateInvoice(context.Background(), &GenerateInvoiceInput{
		CustomerName: "Acme",
		Items:        []InvoiceItemInput{{Description: "Widget", Rate: "10"}},
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateInvoiceStatus(context.Background(), generated.Invoice.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, updated.Status)

	_, err = f.svc.UpdateInvoiceStatus(context.Background(), generated.Invoice.ID, "Shipped")
	require.Error(t, err)
}
