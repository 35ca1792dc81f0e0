package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultClientID           = "02-4388252"
	DefaultLawFirmID          = "02-1234567"
	DefaultInvoiceDescription = "Monthly Legal Services"

	// Number bases may carry a run of X characters; batch runs replace it
	// with random digits, single runs emit the base verbatim.
	DefaultMatterNumberBase  = "2025-XXXXXX"
	DefaultInvoiceNumberBase = "2025MMM-XXXXXX"
)

// PreviousMonthWindow returns the first and last day of the month before
// the reference date, the default billing period.
func PreviousMonthWindow(ref time.Time) (time.Time, time.Time) {
	firstOfCurrent := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := firstOfCurrent.AddDate(0, 0, -1)
	start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, end
}

// Format selects the LEDES encoding an export run produces.
type Format string

const (
	Format1998B Format = "1998B"
	FormatXML21 Format = "XML21"
)

// ParseFormat accepts the user-facing spellings of the two formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1998b", "98b", "ledes1998b", "ledes98b":
		return Format1998B, nil
	case "xml21", "xml2.1", "xml 2.1", "ledesxml21":
		return FormatXML21, nil
	default:
		return "", fmt.Errorf("unknown LEDES format %q (expected 1998b or xml21)", s)
	}
}

// GenerateParams carries everything one invoice generation run needs.
type GenerateParams struct {
	FeeCount           int
	ExpenseCount       int
	Timekeepers        []Timekeeper
	ClientID           string
	LawFirmID          string
	InvoiceDescription string
	InvoiceNumber      string
	MatterNumber       string
	BillingStart       time.Time
	BillingEnd         time.Time
	Tasks              []TaskActivity
	MajorTaskCodes     map[string]struct{}
	IncludeBlockBilled bool
	MaxDailyHours      int // per timekeeper per day
}
