package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

func TestReporter_Handle(t *testing.T) {
	inv := &domain.Invoice{
		Number:       "2025MMM-000123",
		MatterNumber: "2025-000123",
		BillingStart: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		BillingEnd:   time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
		Total:        1234.56,
		Lines: []domain.LineItem{
			{Kind: domain.ItemFee, Fee: &domain.FeeDetail{}},
			{Kind: domain.ItemExpense, Expense: &domain.ExpenseDetail{}},
		},
	}

	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Handle(&RunSummary{
		Invoices:  []InvoiceSummary{SummarizeInvoice(inv, []string{"LEDES98B_2025MMM-000123_20250731140509.txt"})},
		Format:    domain.Format1998B,
		Seed:      42,
		OutputDir: "/tmp/out",
		Archive:   "invoices_20250731140509.zip",
		MailMode:  "SSL",
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Generated 1 invoice(s)   Format: 1998B   Seed: 42")
	assert.Contains(t, out, "Invoice 2025MMM-000123 (matter 2025-000123)")
	assert.Contains(t, out, "Period: 2025-07-01 to 2025-07-31")
	assert.Contains(t, out, "Fee lines: 1   Expense lines: 1")
	assert.Contains(t, out, "Invoice Total: $1234.56")
	assert.Contains(t, out, "  LEDES98B_2025MMM-000123_20250731140509.txt")
	assert.Contains(t, out, "Archive: invoices_20250731140509.zip")
	assert.Contains(t, out, "Mail: sent via SSL")
	assert.Contains(t, out, "Output: /tmp/out")
}

func TestReporter_Handle_OmitsEmptySections(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Handle(&RunSummary{
		Invoices:  []InvoiceSummary{},
		Format:    domain.FormatXML21,
		OutputDir: ".",
	})

	require.NoError(t, err)
	out := buf.String()
	assert.NotContains(t, out, "Archive:")
	assert.NotContains(t, out, "Mail:")
}

func TestReporter_Tasks(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Tasks([]domain.TaskActivity{
		{TaskCode: "L100", ActivityCode: "A101", Description: "Legal Research: Analyze legal precedents"},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "| Task")
	assert.Contains(t, out, "| L100")
	assert.Contains(t, out, "| A101")
	assert.Equal(t, 5, strings.Count(out, "\n"), "header, separators and one row")
}

func TestReporter_Expenses(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Expenses([]domain.ExpenseCategory{
		{Code: "E101", Description: "Copying"},
		{Code: "E124", Description: "Other"},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "| Code")
	assert.Contains(t, out, "| E101")
	assert.Contains(t, out, "| E124")
}
