package ledes

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

const (
	flatFormatLine   = "LEDES1998B[]"
	recordTerminator = "[]"
)

var flatFieldNames = []string{
	"INVOICE_DATE",
	"INVOICE_NUMBER",
	"CLIENT_ID",
	"LAW_FIRM_MATTER_ID",
	"INVOICE_TOTAL",
	"BILLING_START_DATE",
	"BILLING_END_DATE",
	"INVOICE_DESCRIPTION",
	"LINE_ITEM_NUMBER",
	"EXP/FEE/INV_ADJ_TYPE",
	"LINE_ITEM_NUMBER_OF_UNITS",
	"LINE_ITEM_ADJUSTMENT_AMOUNT",
	"LINE_ITEM_TOTAL",
	"LINE_ITEM_DATE",
	"LINE_ITEM_TASK_CODE",
	"LINE_ITEM_EXPENSE_CODE",
	"LINE_ITEM_ACTIVITY_CODE",
	"TIMEKEEPER_ID",
	"LINE_ITEM_DESCRIPTION",
	"LAW_FIRM_ID",
	"LINE_ITEM_UNIT_COST",
	"TIMEKEEPER_NAME",
	"TIMEKEEPER_CLASSIFICATION",
	"CLIENT_MATTER_ID",
}

// Encode1998B renders an invoice as LEDES 1998B flat text: the format
// line, the field-name header, then one pipe-delimited record per line
// item, each terminated by "[]". Output is ASCII with non-ASCII bytes
// dropped, and ends with a newline.
func Encode1998B(inv *domain.Invoice) []byte {
	lines := make([]string, 0, len(inv.Lines)+2)
	lines = append(lines, flatFormatLine)
	lines = append(lines, strings.Join(flatFieldNames, "|")+recordTerminator)

	for i, item := range inv.Lines {
		record := flatRecord(inv, item, i+1)
		lines = append(lines, strings.Join(record, "|")+recordTerminator)
	}

	return toASCII(strings.Join(lines, "\n") + "\n")
}

func flatRecord(inv *domain.Invoice, item domain.LineItem, seq int) []string {
	var units, taskCode, expenseCode, activityCode, tkID, tkName, tkClass string
	if item.Kind == domain.ItemExpense {
		units = strconv.Itoa(int(item.Quantity))
		expenseCode = item.Expense.Code
	} else {
		units = fmt.Sprintf("%.1f", item.Quantity)
		taskCode = item.Fee.TaskCode
		activityCode = item.Fee.ActivityCode
		tkID = item.Fee.TimekeeperID
		tkName = item.Fee.TimekeeperName
		tkClass = item.Fee.TimekeeperClassification
	}

	return []string{
		inv.BillingEnd.Format("20060102"),
		inv.Number,
		inv.ClientID,
		inv.MatterNumber,
		fmt.Sprintf("%.2f", inv.Total),
		inv.BillingStart.Format("20060102"),
		inv.BillingEnd.Format("20060102"),
		inv.Description,
		strconv.Itoa(seq),
		string(item.Kind),
		units,
		"0.00",
		fmt.Sprintf("%.2f", item.Total),
		item.Date.Format("20060102"),
		taskCode,
		expenseCode,
		activityCode,
		tkID,
		item.Description,
		inv.LawFirmID,
		fmt.Sprintf("%.2f", item.Rate),
		tkName,
		tkClass,
		inv.MatterNumber,
	}
}

// toASCII drops every non-ASCII byte. Multi-byte UTF-8 sequences
// disappear entirely since each of their bytes is >= 0x80.
func toASCII(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] < utf8.RuneSelf {
			out = append(out, s[i])
		}
	}
	return out
}
