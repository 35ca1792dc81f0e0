package domain

// Timekeeper is one billing professional from the uploaded roster.
type Timekeeper struct {
	ID             string
	Name           string
	Classification string // Partner, Associate, Paralegal
	Rate           float64
}

// TaskActivity pairs a UTBMS task/activity code with a description
// template. Templates may embed MM/DD/YYYY date tokens and the
// {NAME_PLACEHOLDER} token, substituted at generation time.
type TaskActivity struct {
	TaskCode     string
	ActivityCode string
	Description  string
}

// ExpenseCategory maps a human-readable expense description to its
// UTBMS expense code.
type ExpenseCategory struct {
	Code        string
	Description string
}
