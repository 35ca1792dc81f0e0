package bundle

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/lex-tools/ledes-forge/pkg/export/ledes"
	"github.com/lex-tools/ledes-forge/pkg/export/pdf"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

// Builder turns generated invoices into named output files. The XML
// encoder (and any schema) is constructed once so batch runs do not
// re-parse the XSD per invoice.
type Builder struct {
	format  domain.Format
	xml     *ledes.XMLEncoder
	withPDF bool
}

func NewBuilder(logger zerolog.Logger, format domain.Format, xsd []byte, withPDF bool) *Builder {
	b := &Builder{format: format, withPDF: withPDF}
	if format == domain.FormatXML21 {
		b.xml = ledes.NewXMLEncoder(logger, xsd)
	}
	return b
}

// Files renders the invoice into its export artifacts, named with the
// run timestamp.
func (b *Builder) Files(inv *domain.Invoice, ts time.Time) ([]File, error) {
	var files []File

	switch b.format {
	case domain.FormatXML21:
		data, err := b.xml.Encode(inv)
		if err != nil {
			return nil, fmt.Errorf("failed to encode invoice %s: %w", inv.Number, err)
		}
		files = append(files, File{Name: XMLFileName(inv.Number, ts), Data: data})
	default:
		files = append(files, File{Name: FlatFileName(inv.Number, ts), Data: ledes.Encode1998B(inv)})
	}

	if b.withPDF {
		data, err := pdf.Render(inv)
		if err != nil {
			return nil, fmt.Errorf("failed to render invoice %s: %w", inv.Number, err)
		}
		files = append(files, File{Name: PDFFileName(inv.Number, ts), Data: data})
	}

	return files, nil
}
