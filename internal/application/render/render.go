package render

import (
	"fmt"

	"github.com/sonitraders/invoicify-api/internal/domain/entity"
	"github.com/sonitraders/invoicify-api/pkg/apperror"
)

// Supported document formats.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
)

// Renderer turns a finalized invoice document into bytes in one output
// format. Renderers are stateless and safe for concurrent use.
type Renderer interface {
	Render(doc *entity.InvoiceDocument) ([]byte, error)
	ContentType() string
	FileExt() string
}

// ForFormat returns the renderer for the given format. An empty format
// defaults to HTML, matching the browser print flow this replaces.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case FormatHTML, "":
		return NewHTMLRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, apperror.NewBadRequestError(fmt.Sprintf("unsupported document format: %s", format))
	}
}
