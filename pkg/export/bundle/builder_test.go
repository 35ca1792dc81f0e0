package bundle

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

func builderInvoice() *domain.Invoice {
	return &domain.Invoice{
		Number:       "2025-000777",
		MatterNumber: "2025-000777",
		ClientID:     domain.DefaultClientID,
		LawFirmID:    domain.DefaultLawFirmID,
		Description:  domain.DefaultInvoiceDescription,
		BillingStart: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		BillingEnd:   time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
		Total:        30,
		Lines: []domain.LineItem{
			{
				Kind:        domain.ItemExpense,
				Date:        time.Date(2025, time.July, 10, 0, 0, 0, 0, time.UTC),
				Description: "Copying",
				Quantity:    150,
				Rate:        0.20,
				Total:       30,
				Expense:     &domain.ExpenseDetail{Code: "E101"},
			},
		},
	}
}

func TestBuilder_FlatWithPDF(t *testing.T) {
	ts := time.Date(2025, time.July, 31, 14, 5, 9, 0, time.UTC)
	b := NewBuilder(zerolog.Nop(), domain.Format1998B, nil, true)

	files, err := b.Files(builderInvoice(), ts)

	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "LEDES98B_2025-000777_20250731140509.txt", files[0].Name)
	assert.Contains(t, string(files[0].Data), "LEDES1998B[]")
	assert.Equal(t, "Invoice_2025-000777_20250731140509.pdf", files[1].Name)
	assert.True(t, len(files[1].Data) > 4 && string(files[1].Data[:4]) == "%PDF")
}

func TestBuilder_XMLWithoutPDF(t *testing.T) {
	ts := time.Date(2025, time.July, 31, 14, 5, 9, 0, time.UTC)
	b := NewBuilder(zerolog.Nop(), domain.FormatXML21, nil, false)

	files, err := b.Files(builderInvoice(), ts)

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "LEDES_XML21_2025-000777_20250731140509.xml", files[0].Name)
	assert.Contains(t, string(files[0].Data), "<LEDES")
	assert.Contains(t, string(files[0].Data), `<expense id="E1">`)
}
