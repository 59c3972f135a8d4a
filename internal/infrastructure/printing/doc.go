// Package printing renders order invoices.
//
// Invoices are produced as HTML by the TemplateEngine and, when a
// PDFRenderer is configured, converted to PDF by headless Chrome:
//
//	renderer, err := NewChromedpRenderer(&ChromedpConfig{NoSandbox: true})
//	if err != nil {
//	    return err
//	}
//	printer := NewInvoicePrinter(NewTemplateEngine(), renderer, logger)
//	doc, err := printer.Print(ctx, invoice)
//
// Without a renderer the printer returns the HTML document.
package printing
