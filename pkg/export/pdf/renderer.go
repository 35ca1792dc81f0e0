package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

const (
	pageWidth  = 215.9 // US Letter, mm
	pageHeight = 279.4
	margin     = 25.4 // 1 inch
	lineHeight = 5.0
)

var tableWidths = []float64{18, 28, 62, 14, 10, 16, 17.1}

// Render produces a paginated companion document for an invoice: firm
// and client address blocks, the invoice header, a line-item table and
// a fee/expense/total summary.
func Render(inv *domain.Invoice) ([]byte, error) {
	doc := gofpdf.New("P", "mm", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, margin)
	doc.AddPage()

	addressBlocks(doc, tr, inv)
	invoiceDetails(doc, inv)
	totalFees, totalExpenses := lineItemTable(doc, tr, inv)
	summary(doc, totalFees, totalExpenses)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func firmLines(lawFirmID string) []string {
	if strings.TrimSpace(lawFirmID) == domain.DefaultLawFirmID {
		return []string{"Nelson and Murdock", lawFirmID, "One Park Avenue", "Manhattan, NY 10003"}
	}
	return []string{"Your Law Firm Name", lawFirmID, "1001 Main Street, Big City, CA 90000"}
}

func clientLines(clientID string) []string {
	if strings.TrimSpace(clientID) == domain.DefaultClientID {
		return []string{"A Onit Inc.", clientID, "1360 Post Oak Blvd", "Houston, TX 77056"}
	}
	return []string{"Your Company Name", clientID, "1000 Main Street, Big City, CA 90000"}
}

func addressBlocks(doc *gofpdf.Fpdf, tr func(string) string, inv *domain.Invoice) {
	usable := pageWidth - 2*margin
	boxWidth := usable / 2
	boxHeight := 4*lineHeight + 4
	top := doc.GetY()

	writeBlock := func(x float64, lines []string) {
		doc.Rect(x, top, boxWidth, boxHeight, "D")
		y := top + 2
		for i, line := range lines {
			if i == 0 {
				doc.SetFont("Arial", "B", 10)
			} else {
				doc.SetFont("Arial", "", 10)
			}
			doc.SetXY(x+2, y)
			doc.CellFormat(boxWidth-4, lineHeight, tr(line), "", 0, "L", false, 0, "")
			y += lineHeight
		}
	}

	writeBlock(margin, firmLines(inv.LawFirmID))
	writeBlock(margin+boxWidth, clientLines(inv.ClientID))
	doc.SetXY(margin, top+boxHeight+3)
}

func invoiceDetails(doc *gofpdf.Fpdf, inv *domain.Invoice) {
	usable := pageWidth - 2*margin
	doc.SetFont("Arial", "", 10)
	doc.CellFormat(usable, lineHeight, "Invoice #: "+inv.Number, "", 1, "R", false, 0, "")
	doc.CellFormat(usable, lineHeight, "Invoice Date: "+inv.BillingEnd.Format("2006-01-02"), "", 1, "R", false, 0, "")
	period := fmt.Sprintf("Billing Period: %s to %s",
		inv.BillingStart.Format("2006-01-02"), inv.BillingEnd.Format("2006-01-02"))
	doc.CellFormat(usable, lineHeight, period, "", 1, "R", false, 0, "")
	doc.Ln(4)
}

func tableHeader(doc *gofpdf.Fpdf) {
	headers := []string{"Date", "Timekeeper", "Description", "Code", "Hrs", "Rate", "Total"}
	doc.SetFont("Arial", "B", 9)
	doc.SetFillColor(211, 211, 211)
	for i, title := range headers {
		last := 0
		if i == len(headers)-1 {
			last = 1
		}
		doc.CellFormat(tableWidths[i], 7, title, "1", last, "C", true, 0, "")
	}
	doc.SetFont("Arial", "", 9)
}

func lineItemTable(doc *gofpdf.Fpdf, tr func(string) string, inv *domain.Invoice) (totalFees, totalExpenses float64) {
	tableHeader(doc)

	for _, item := range inv.Lines {
		var code, hrs string
		if item.Kind == domain.ItemExpense {
			totalExpenses += item.Total
			code = item.Expense.Code
			hrs = strconv.Itoa(int(item.Quantity))
		} else {
			totalFees += item.Total
			code = item.Fee.TaskCode
			hrs = fmt.Sprintf("%.1f", item.Quantity)
		}

		var tkName string
		if item.Fee != nil {
			tkName = item.Fee.TimekeeperName
		}

		desc := tr(item.Description)
		descLines := doc.SplitText(desc, tableWidths[2]-2)
		rowHeight := lineHeight * float64(max(1, len(descLines)))

		if doc.GetY()+rowHeight > pageHeight-margin {
			doc.AddPage()
			tableHeader(doc)
		}

		_, y := doc.GetX(), doc.GetY()
		doc.CellFormat(tableWidths[0], rowHeight, item.Date.Format("01/02/2006"), "1", 0, "L", false, 0, "")
		doc.CellFormat(tableWidths[1], rowHeight, tr(tkName), "1", 0, "L", false, 0, "")

		descX := doc.GetX()
		doc.Rect(descX, y, tableWidths[2], rowHeight, "D")
		doc.MultiCell(tableWidths[2], lineHeight, desc, "", "L", false)
		doc.SetXY(descX+tableWidths[2], y)

		doc.CellFormat(tableWidths[3], rowHeight, code, "1", 0, "C", false, 0, "")
		doc.CellFormat(tableWidths[4], rowHeight, hrs, "1", 0, "R", false, 0, "")
		doc.CellFormat(tableWidths[5], rowHeight, "$"+fmt.Sprintf("%.2f", item.Rate), "1", 0, "R", false, 0, "")
		doc.CellFormat(tableWidths[6], rowHeight, money(item.Total), "1", 1, "R", false, 0, "")
		doc.SetX(margin)
	}

	doc.Ln(6)
	return totalFees, totalExpenses
}

func summary(doc *gofpdf.Fpdf, totalFees, totalExpenses float64) {
	usable := pageWidth - 2*margin
	labelWidth, valueWidth := 50.0, 35.0
	indent := usable - labelWidth - valueWidth

	if doc.GetY()+3*7 > pageHeight-margin {
		doc.AddPage()
	}

	row := func(label string, value float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		doc.SetX(margin + indent)
		doc.SetFont("Arial", "B", 10)
		doc.CellFormat(labelWidth, 7, label, "1", 0, "L", false, 0, "")
		doc.SetFont("Arial", style, 10)
		doc.CellFormat(valueWidth, 7, money(value), "1", 1, "R", false, 0, "")
	}

	row("Total Fees:", totalFees, false)
	row("Total Expenses:", totalExpenses, false)
	row("Invoice Total:", totalFees+totalExpenses, true)
}

// money formats a dollar amount with thousands separators.
func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + "$" + b.String() + frac
}
