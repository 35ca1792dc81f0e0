package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

type TableConfig struct {
	CodeWidth        int
	ActivityWidth    int
	DescriptionWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		CodeWidth:        10,
		ActivityWidth:    10,
		DescriptionWidth: 60,
	}
}

// InvoiceSummary is the per-invoice slice of a run report.
type InvoiceSummary struct {
	Number       string
	MatterNumber string
	Start        time.Time
	End          time.Time
	FeeLines     int
	ExpenseLines int
	Total        float64
	Files        []string
}

func SummarizeInvoice(inv *domain.Invoice, files []string) InvoiceSummary {
	return InvoiceSummary{
		Number:       inv.Number,
		MatterNumber: inv.MatterNumber,
		Start:        inv.BillingStart,
		End:          inv.BillingEnd,
		FeeLines:     inv.FeeCount(),
		ExpenseLines: inv.ExpenseCount(),
		Total:        inv.Total,
		Files:        files,
	}
}

// RunSummary is everything one generate run reports back to the console.
type RunSummary struct {
	Invoices  []InvoiceSummary
	Format    domain.Format
	Seed      uint64
	OutputDir string
	Archive   string
	MailMode  string
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(summary *RunSummary) error {
	tmpl := `
Generated {{len .Invoices}} invoice(s)   Format: {{.Format}}   Seed: {{.Seed}}
{{range .Invoices}}
Invoice {{.Number}} (matter {{.MatterNumber}})
Period: {{.Start.Format "2006-01-02"}} to {{.End.Format "2006-01-02"}}
Fee lines: {{.FeeLines}}   Expense lines: {{.ExpenseLines}}
Invoice Total: {{printf "$%.2f" .Total}}
Files:
{{range .Files}}  {{.}}
{{end}}{{end}}{{if .Archive}}
Archive: {{.Archive}}
{{end}}{{if .MailMode}}
Mail: sent via {{.MailMode}}
{{end}}
Output: {{.OutputDir}}
`

	t, err := template.New("run").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, summary)
}

// Tasks renders the task/activity catalog as a bordered table.
func (c *Reporter) Tasks(tasks []domain.TaskActivity) error {
	funcMap := template.FuncMap{
		"formatRow": func(code, activity, desc string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s |",
				c.config.CodeWidth, code,
				c.config.ActivityWidth, activity,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.CodeWidth+2),
				strings.Repeat("-", c.config.ActivityWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	tmpl := `{{separator}}
{{formatRow "Task" "Activity" "Description"}}
{{separator}}
{{range .}}{{formatRow .TaskCode .ActivityCode .Description}}
{{end}}{{separator}}
`

	t, err := template.New("tasks").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, tasks)
}

// Expenses renders the expense category catalog as a bordered table.
func (c *Reporter) Expenses(categories []domain.ExpenseCategory) error {
	funcMap := template.FuncMap{
		"formatRow": func(code, desc string) string {
			return fmt.Sprintf("| %-*s | %-*s |",
				c.config.CodeWidth, code,
				c.config.DescriptionWidth, desc)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+",
				strings.Repeat("-", c.config.CodeWidth+2),
				strings.Repeat("-", c.config.DescriptionWidth+2))
		},
	}

	tmpl := `{{separator}}
{{formatRow "Code" "Description"}}
{{separator}}
{{range .}}{{formatRow .Code .Description}}
{{end}}{{separator}}
`

	t, err := template.New("expenses").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, categories)
}
