package ledes

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	ledesNamespace = "http://www.ledes.org/LEDES214"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = "http://www.ledes.org/LEDES214 LEDES214.xsd"
)

// XMLEncoder renders invoices as LEDES XML 2.1 documents. An optional
// schema supplied at construction time is parsed once; encoded
// documents are then checked against it. Validation failures are
// warnings only, the document is always returned.
type XMLEncoder struct {
	schema *schemaIndex
	logger zerolog.Logger
}

func NewXMLEncoder(logger zerolog.Logger, xsd []byte) *XMLEncoder {
	enc := &XMLEncoder{logger: logger}
	if len(xsd) == 0 {
		return enc
	}

	idx, err := parseSchema(xsd)
	if err != nil {
		logger.Warn().Err(err).Msg("schema unusable, validation disabled")
		return enc
	}
	enc.schema = idx
	return enc
}

// Validates reports whether encoded documents get schema-checked.
func (e *XMLEncoder) Validates() bool {
	return e.schema != nil
}

func (e *XMLEncoder) Encode(inv *domain.Invoice) ([]byte, error) {
	doc := buildDocument(inv)

	if e.schema != nil {
		if err := e.schema.validate(doc); err != nil {
			e.logger.Warn().Err(err).Msg("schema validation failed, returning document anyway")
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize LEDES XML: %w", err)
	}
	return out, nil
}

func buildDocument(inv *domain.Invoice) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("LEDES")
	root.CreateAttr("xmlns", ledesNamespace)
	root.CreateAttr("xmlns:xsi", xsiNamespace)
	root.CreateAttr("version", "2.1")
	root.CreateAttr("xsi:schemaLocation", schemaLocation)

	clientID, desc := inv.ClientID, inv.Description
	if len(inv.Lines) == 0 {
		clientID, desc = "", ""
	}

	seg := root.CreateElement("invoice")
	seg.CreateElement("inv_number").SetText(inv.Number)
	seg.CreateElement("client_id").SetText(clientID)
	seg.CreateElement("matter_id").SetText(inv.MatterNumber)
	seg.CreateElement("inv_total").SetText(fmt.Sprintf("%.2f", inv.Total))
	seg.CreateElement("bill_start_date").SetText(inv.BillingStart.Format("2006-01-02"))
	seg.CreateElement("bill_end_date").SetText(inv.BillingEnd.Format("2006-01-02"))
	seg.CreateElement("inv_date").SetText(inv.BillingEnd.Format("2006-01-02"))
	seg.CreateElement("inv_desc").SetText(desc)

	fees := seg.CreateElement("fees")
	expenses := seg.CreateElement("expenses")

	feeSeq, expenseSeq := 0, 0
	for _, item := range inv.Lines {
		if item.Kind == domain.ItemExpense {
			expenseSeq++
			appendExpense(expenses, item, expenseSeq)
		} else {
			feeSeq++
			appendFee(fees, item, feeSeq)
		}
	}

	return doc
}

func appendFee(fees *etree.Element, item domain.LineItem, seq int) {
	fee := fees.CreateElement("fee")
	fee.CreateAttr("id", fmt.Sprintf("F%d", seq))
	fee.CreateElement("date").SetText(item.Date.Format("2006-01-02"))

	tk := fee.CreateElement("tk")
	tk.CreateAttr("id", item.Fee.TimekeeperID)
	tk.CreateElement("name").SetText(item.Fee.TimekeeperName)
	tk.CreateElement("level").SetText(item.Fee.TimekeeperClassification)

	fee.CreateElement("task").CreateAttr("id", item.Fee.TaskCode)
	fee.CreateElement("activity").CreateAttr("id", item.Fee.ActivityCode)
	fee.CreateElement("desc").SetText(item.Description)
	fee.CreateElement("quant").SetText(fmt.Sprintf("%.1f", item.Quantity))
	fee.CreateElement("rate").SetText(fmt.Sprintf("%.2f", item.Rate))
	fee.CreateElement("cost").SetText(fmt.Sprintf("%.2f", item.Total))
}

func appendExpense(expenses *etree.Element, item domain.LineItem, seq int) {
	expense := expenses.CreateElement("expense")
	expense.CreateAttr("id", fmt.Sprintf("E%d", seq))
	expense.CreateElement("date").SetText(item.Date.Format("2006-01-02"))
	expense.CreateElement("exp_code").CreateAttr("id", item.Expense.Code)
	expense.CreateElement("desc").SetText(item.Description)
	expense.CreateElement("quant").SetText(strconv.Itoa(int(item.Quantity)))
	expense.CreateElement("rate").SetText(fmt.Sprintf("%.2f", item.Rate))
	expense.CreateElement("cost").SetText(fmt.Sprintf("%.2f", item.Total))
}
