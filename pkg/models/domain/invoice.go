package domain

import (
	"strings"
	"time"
)

// ItemKind discriminates the two line item variants carried by an invoice.
type ItemKind string

const (
	ItemFee     ItemKind = "F"
	ItemExpense ItemKind = "E"
)

// FeeDetail holds the fields only fee lines carry.
type FeeDetail struct {
	TimekeeperID             string
	TimekeeperName           string
	TimekeeperClassification string
	TaskCode                 string // L110
	ActivityCode             string // A101
}

// ExpenseDetail holds the fields only expense lines carry.
type ExpenseDetail struct {
	Code string // E101
}

// LineItem is one billed line. Exactly one of Fee/Expense is set,
// matching Kind.
type LineItem struct {
	Kind        ItemKind
	Date        time.Time
	Description string
	Quantity    float64 // hours for fees, unit count for expenses
	Rate        float64
	Total       float64 // round(Quantity*Rate, 2)
	Fee         *FeeDetail
	Expense     *ExpenseDetail
}

type Invoice struct {
	Number       string
	MatterNumber string
	ClientID     string
	LawFirmID    string
	Description  string
	BillingStart time.Time
	BillingEnd   time.Time
	Total        float64
	Lines        []LineItem
}

// IsBlockBilled reports whether a description bundles several activities
// into one line ("Prepare motion; call with opposing counsel").
func IsBlockBilled(description string) bool {
	return strings.Contains(description, "; ")
}

func (i *Invoice) FeeCount() int {
	n := 0
	for _, l := range i.Lines {
		if l.Kind == ItemFee {
			n++
		}
	}
	return n
}

func (i *Invoice) ExpenseCount() int {
	n := 0
	for _, l := range i.Lines {
		if l.Kind == ItemExpense {
			n++
		}
	}
	return n
}
