package printing

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
)

type MockPDFRenderer struct {
	mock.Mock
}

func (m *MockPDFRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RenderResult), args.Error(1)
}

func (m *MockPDFRenderer) Close() error {
	return m.Called().Error(0)
}

func sampleOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		order.Customer{Name: "grace hopper", Email: "grace@example.com", Phone: "+1 555 0101"},
		"7 Navy Yard",
		false,
		[]order.LineInput{
			{ProductID: "p-1", Quantity: 1, Price: decimal.RequireFromString("1250.00"), Variant: "Steel"},
			{ProductID: "p-gone", Quantity: 2, Price: decimal.NewFromInt(40)},
		},
		decimal.RequireFromString("1330.00"),
	)
	require.NoError(t, err)
	o.Items[0].Product = &order.ProductRef{ID: uuid.New(), Name: "Seamaster Diver"}
	return o
}

func TestBuildInvoice(t *testing.T) {
	o := sampleOrder(t)
	s := settings.DefaultStoreSettings()

	inv := BuildInvoice(o, s)

	assert.Equal(t, o.ID.String(), inv.OrderID)
	assert.Equal(t, "Horologe", inv.StoreName)
	require.Len(t, inv.Lines, 2)
	assert.Equal(t, "Seamaster Diver", inv.Lines[0].Description)
	assert.Equal(t, "p-gone", inv.Lines[1].Description)
	assert.True(t, decimal.NewFromInt(80).Equal(inv.Lines[1].Amount))
	assert.True(t, o.Total.Equal(inv.Total))
}

func TestInvoicePrinter_HTMLWithoutRenderer(t *testing.T) {
	o := sampleOrder(t)
	p := NewInvoicePrinter(NewTemplateEngine(), nil, zap.NewNop())

	doc, err := p.Print(context.Background(), BuildInvoice(o, settings.DefaultStoreSettings()))

	require.NoError(t, err)
	assert.Equal(t, ContentTypeHTML, doc.ContentType)
	assert.Equal(t, "invoice-"+o.ID.String()+".html", doc.Filename)
	body := string(doc.Data)
	assert.Contains(t, body, "Seamaster Diver")
	assert.Contains(t, body, "(Steel)")
	assert.Contains(t, body, "$1,250.00")
	assert.Contains(t, body, "$1,330.00")
	assert.Contains(t, body, "Status: Pending")
	assert.NotContains(t, body, "tax")
}

func TestInvoicePrinter_EscapesCustomerInput(t *testing.T) {
	o := sampleOrder(t)
	o.Customer.Name = "<script>alert(1)</script>"
	p := NewInvoicePrinter(NewTemplateEngine(), nil, zap.NewNop())

	doc, err := p.Print(context.Background(), BuildInvoice(o, settings.DefaultStoreSettings()))
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(doc.Data), "<script>alert(1)</script>"))
}

func TestInvoicePrinter_PDF(t *testing.T) {
	o := sampleOrder(t)
	renderer := new(MockPDFRenderer)
	renderer.On("Render", mock.Anything, mock.MatchedBy(func(r *RenderRequest) bool {
		return strings.Contains(r.HTML, "Seamaster Diver") && r.FooterHTML != ""
	})).Return(&RenderResult{PDFData: []byte("%PDF-1.7"), PageCount: 1}, nil)

	p := NewInvoicePrinter(NewTemplateEngine(), renderer, zap.NewNop())
	doc, err := p.Print(context.Background(), BuildInvoice(o, settings.DefaultStoreSettings()))

	require.NoError(t, err)
	assert.Equal(t, ContentTypePDF, doc.ContentType)
	assert.Equal(t, []byte("%PDF-1.7"), doc.Data)
	renderer.AssertExpectations(t)
}

func TestInvoicePrinter_FallsBackToHTML(t *testing.T) {
	renderer := new(MockPDFRenderer)
	renderer.On("Render", mock.Anything, mock.Anything).Return(nil, errors.New("no chrome"))

	p := NewInvoicePrinter(NewTemplateEngine(), renderer, zap.NewNop())
	doc, err := p.Print(context.Background(), BuildInvoice(sampleOrder(t), settings.DefaultStoreSettings()))

	require.NoError(t, err)
	assert.Equal(t, ContentTypeHTML, doc.ContentType)
}

func TestTemplateEngine_Helpers(t *testing.T) {
	assert.Equal(t, "$1,234,567.50", formatMoney("$", decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-€3.00", formatMoney("€", decimal.NewFromInt(-3)))
	assert.Equal(t, "999.00", formatMoneyRaw(decimal.NewFromInt(999)))
	assert.Equal(t, "Grace Hopper", titleCase("grace hopper"))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "", formatDate(time.Time{}))
	assert.Equal(t, "Mar 5, 2026", formatDate(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)))
}

func TestTemplateEngine_RenderStringErrors(t *testing.T) {
	e := NewTemplateEngine()

	_, err := e.RenderString(context.Background(), "x", "", nil)
	assert.Error(t, err)

	_, err = e.RenderString(context.Background(), "x", "{{.Missing", nil)
	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
}

func TestTemplateEngine_WithFuncs(t *testing.T) {
	e := NewTemplateEngine(WithFuncs(map[string]any{"shout": func(s string) string { return s + "!" }}))
	out, err := e.RenderString(context.Background(), "x", `{{shout "hi"}}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)
}
