package printing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/horologe/storefront/internal/domain/order"
	"github.com/horologe/storefront/internal/domain/settings"
)

// Content types of printed documents
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
)

// InvoiceLine is one row of the invoice table
type InvoiceLine struct {
	Description string
	Variant     string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// InvoiceData is everything the invoice template renders
type InvoiceData struct {
	StoreName       string
	SupportEmail    string
	CurrencySymbol  string
	TaxPercentage   decimal.Decimal
	OrderID         string
	Status          string
	IssuedAt        time.Time
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	ShippingAddress string
	Lines           []InvoiceLine
	Total           decimal.Decimal
}

// BuildInvoice projects an order and the store settings onto invoice data.
// Lines whose product was deleted fall back to the stored product id.
func BuildInvoice(o *order.Order, s *settings.StoreSettings) InvoiceData {
	lines := make([]InvoiceLine, 0, len(o.Items))
	for _, item := range o.Items {
		desc := item.ProductID
		if item.Product != nil && item.Product.Name != "" {
			desc = item.Product.Name
		}
		lines = append(lines, InvoiceLine{
			Description: desc,
			Variant:     item.Variant,
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
			Amount:      item.Subtotal(),
		})
	}

	return InvoiceData{
		StoreName:       s.StoreName,
		SupportEmail:    s.SupportEmail,
		CurrencySymbol:  s.CurrencySymbol,
		TaxPercentage:   s.TaxPercentage,
		OrderID:         o.ID.String(),
		Status:          o.Status.String(),
		IssuedAt:        o.CreatedAt,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		ShippingAddress: o.ShippingAddress,
		Lines:           lines,
		Total:           o.Total,
	}
}

// Document is a printed invoice ready to be served
type Document struct {
	ContentType string
	Filename    string
	Data        []byte
}

// InvoicePrinter renders invoices to HTML and, with a PDF renderer, to PDF
type InvoicePrinter struct {
	engine   *TemplateEngine
	renderer PDFRenderer
	template string
	logger   *zap.Logger
}

// NewInvoicePrinter creates a printer. renderer may be nil.
func NewInvoicePrinter(engine *TemplateEngine, renderer PDFRenderer, logger *zap.Logger) *InvoicePrinter {
	return &InvoicePrinter{
		engine:   engine,
		renderer: renderer,
		template: invoiceTemplate,
		logger:   logger,
	}
}

// Print renders the invoice. A PDF failure falls back to HTML.
func (p *InvoicePrinter) Print(ctx context.Context, data InvoiceData) (*Document, error) {
	html, err := p.engine.RenderString(ctx, "invoice", p.template, data)
	if err != nil {
		return nil, err
	}

	name := "invoice-" + data.OrderID
	if p.renderer == nil {
		return &Document{ContentType: ContentTypeHTML, Filename: name + ".html", Data: []byte(html)}, nil
	}

	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:       html,
		Margins:    DefaultMargins(),
		Title:      "Invoice " + data.OrderID,
		FooterHTML: invoiceFooter,
	})
	if err != nil {
		p.logger.Warn("Falling back to HTML invoice",
			zap.String("order_id", data.OrderID),
			zap.Error(err),
		)
		return &Document{ContentType: ContentTypeHTML, Filename: name + ".html", Data: []byte(html)}, nil
	}
	return &Document{ContentType: ContentTypePDF, Filename: name + ".pdf", Data: result.PDFData}, nil
}

const invoiceFooter = `<div style="font-size:8px;width:100%;text-align:center;">` +
	`<span class="pageNumber"></span> / <span class="totalPages"></span></div>`

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Invoice {{.OrderID}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 20px; margin: 0 0 4px; }
table { width: 100%; border-collapse: collapse; margin-top: 16px; }
th, td { padding: 6px 4px; border-bottom: 1px solid #ddd; text-align: left; }
td.num, th.num { text-align: right; }
.total { font-weight: bold; font-size: 14px; }
.muted { color: #777; }
</style>
</head>
<body>
<h1>{{.StoreName}}</h1>
{{if .SupportEmail}}<div class="muted">{{.SupportEmail}}</div>{{end}}
<h2>Invoice</h2>
<div>Order <strong>{{.OrderID}}</strong></div>
<div>Date: {{formatDate .IssuedAt}}</div>
<div>Status: {{title .Status}}</div>
<h3>Bill to</h3>
<div>{{.CustomerName}}</div>
<div>{{.CustomerEmail}}</div>
{{if .CustomerPhone}}<div>{{.CustomerPhone}}</div>{{end}}
<div>{{.ShippingAddress}}</div>
<table>
<thead><tr><th>#</th><th>Item</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr></thead>
<tbody>
{{range $i, $l := .Lines}}<tr>
<td>{{add $i 1}}</td>
<td>{{truncate $l.Description 80}}{{if $l.Variant}} <span class="muted">({{$l.Variant}})</span>{{end}}</td>
<td class="num">{{$l.Quantity}}</td>
<td class="num">{{formatMoney $.CurrencySymbol $l.UnitPrice}}</td>
<td class="num">{{formatMoney $.CurrencySymbol $l.Amount}}</td>
</tr>{{end}}
</tbody>
<tfoot><tr><td colspan="4" class="num total">Total</td><td class="num total">{{formatMoney .CurrencySymbol .Total}}</td></tr></tfoot>
</table>
{{if .TaxPercentage.IsPositive}}<p class="muted">Prices include {{.TaxPercentage.String}}% tax.</p>{{end}}
</body>
</html>
`
