package api

// Timekeeper describes one billable person in catalog listings.
type Timekeeper struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Classification string  `json:"classification"`
	Rate           float64 `json:"rate"`
}

type TaskActivity struct {
	TaskCode     string `json:"task_code"`
	ActivityCode string `json:"activity_code"`
	Description  string `json:"description"`
}

type ExpenseCategory struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// GenerateRequest carries the scalar fields of the invoice form. File parts
// (timekeeper CSV, optional task CSV, optional XSD) travel alongside it in
// the multipart body.
type GenerateRequest struct {
	FeeCount           int     `json:"fee_count" validate:"min=0"`
	ExpenseCount       int     `json:"expense_count" validate:"min=1"`
	MaxDailyHours      int     `json:"max_daily_hours" validate:"min=1"`
	ClientID           string  `json:"client_id"`
	LawFirmID          string  `json:"law_firm_id"`
	InvoiceDescription string  `json:"invoice_description"`
	InvoiceNumber      string  `json:"invoice_number"`
	MatterNumber       string  `json:"matter_number"`
	BillingStart       string  `json:"billing_start" validate:"required"`
	BillingEnd         string  `json:"billing_end" validate:"required"`
	Format             string  `json:"format"`
	IncludeBlockBilled bool    `json:"include_block_billed"`
	GeneratePDF        bool    `json:"generate_pdf"`
	Seed               *uint64 `json:"seed,omitempty"`
	EmailTo            string  `json:"email_to"`
	SMTPProfile        string  `json:"smtp_profile"`
}

type Error struct {
	Error string `json:"error"`
}
