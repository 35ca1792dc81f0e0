package adapters

import (
	"fmt"
	"strings"
	"time"

	"github.com/lex-tools/ledes-forge/pkg/models/api"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

// dateLayout is the wire format for billing period bounds.
const dateLayout = "2006-01-02"

func MapTimekeeperDomainToApi(tk domain.Timekeeper) api.Timekeeper {
	return api.Timekeeper{
		ID:             tk.ID,
		Name:           tk.Name,
		Classification: tk.Classification,
		Rate:           tk.Rate,
	}
}

func MapTaskActivityDomainToApi(t domain.TaskActivity) api.TaskActivity {
	return api.TaskActivity{
		TaskCode:     t.TaskCode,
		ActivityCode: t.ActivityCode,
		Description:  t.Description,
	}
}

func MapExpenseCategoryDomainToApi(c domain.ExpenseCategory) api.ExpenseCategory {
	return api.ExpenseCategory{
		Code:        c.Code,
		Description: c.Description,
	}
}

// MapGenerateRequestToDomainParams turns validated form scalars plus the
// resolved catalogs into generator parameters. Blank identity fields fall
// back to the built-in defaults, matching the form placeholders.
func MapGenerateRequestToDomainParams(
	req api.GenerateRequest,
	timekeepers []domain.Timekeeper,
	tasks []domain.TaskActivity,
	majors map[string]struct{},
) (domain.GenerateParams, error) {
	start, err := time.Parse(dateLayout, req.BillingStart)
	if err != nil {
		return domain.GenerateParams{}, fmt.Errorf("invalid billing_start %q: expected YYYY-MM-DD", req.BillingStart)
	}
	end, err := time.Parse(dateLayout, req.BillingEnd)
	if err != nil {
		return domain.GenerateParams{}, fmt.Errorf("invalid billing_end %q: expected YYYY-MM-DD", req.BillingEnd)
	}

	return domain.GenerateParams{
		FeeCount:           req.FeeCount,
		ExpenseCount:       req.ExpenseCount,
		MaxDailyHours:      req.MaxDailyHours,
		Timekeepers:        timekeepers,
		Tasks:              tasks,
		MajorTaskCodes:     majors,
		ClientID:           valueOrDefault(req.ClientID, domain.DefaultClientID),
		LawFirmID:          valueOrDefault(req.LawFirmID, domain.DefaultLawFirmID),
		InvoiceDescription: valueOrDefault(req.InvoiceDescription, domain.DefaultInvoiceDescription),
		InvoiceNumber:      valueOrDefault(req.InvoiceNumber, domain.DefaultInvoiceNumberBase),
		MatterNumber:       valueOrDefault(req.MatterNumber, domain.DefaultMatterNumberBase),
		BillingStart:       start,
		BillingEnd:         end,
		IncludeBlockBilled: req.IncludeBlockBilled,
	}, nil
}

func valueOrDefault(value, def string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return def
	}
	return trimmed
}
