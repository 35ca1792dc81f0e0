package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lex-tools/ledes-forge/pkg/models/api"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
)

func TestMapTimekeeperDomainToApi(t *testing.T) {
	tk := domain.Timekeeper{ID: "MM001", Name: "Matt Murdock", Classification: "Partner", Rate: 450}

	got := MapTimekeeperDomainToApi(tk)

	assert.Equal(t, api.Timekeeper{ID: "MM001", Name: "Matt Murdock", Classification: "Partner", Rate: 450}, got)
}

func TestMapTaskActivityDomainToApi(t *testing.T) {
	task := domain.TaskActivity{TaskCode: "L110", ActivityCode: "A101", Description: "Legal Research: Review statutes and regulations"}

	got := MapTaskActivityDomainToApi(task)

	assert.Equal(t, "L110", got.TaskCode)
	assert.Equal(t, "A101", got.ActivityCode)
	assert.Equal(t, "Legal Research: Review statutes and regulations", got.Description)
}

func TestMapExpenseCategoryDomainToApi(t *testing.T) {
	got := MapExpenseCategoryDomainToApi(domain.ExpenseCategory{Code: "E101", Description: "Copying"})

	assert.Equal(t, api.ExpenseCategory{Code: "E101", Description: "Copying"}, got)
}

func TestMapGenerateRequestToDomainParams(t *testing.T) {
	timekeepers := []domain.Timekeeper{{ID: "MM001", Name: "Matt Murdock", Classification: "Partner", Rate: 450}}
	tasks := []domain.TaskActivity{{TaskCode: "L110", ActivityCode: "A101", Description: "Legal Research"}}
	majors := map[string]struct{}{"L110": {}}

	t.Run("maps all fields", func(t *testing.T) {
		req := api.GenerateRequest{
			FeeCount:           12,
			ExpenseCount:       4,
			MaxDailyHours:      10,
			ClientID:           "99-0000001",
			LawFirmID:          "99-0000002",
			InvoiceDescription: "July Services",
			InvoiceNumber:      "INV-42",
			MatterNumber:       "MAT-42",
			BillingStart:       "2025-07-01",
			BillingEnd:         "2025-07-31",
			IncludeBlockBilled: true,
		}

		params, err := MapGenerateRequestToDomainParams(req, timekeepers, tasks, majors)

		require.NoError(t, err)
		assert.Equal(t, 12, params.FeeCount)
		assert.Equal(t, 4, params.ExpenseCount)
		assert.Equal(t, 10, params.MaxDailyHours)
		assert.Equal(t, timekeepers, params.Timekeepers)
		assert.Equal(t, tasks, params.Tasks)
		assert.Equal(t, majors, params.MajorTaskCodes)
		assert.Equal(t, "99-0000001", params.ClientID)
		assert.Equal(t, "99-0000002", params.LawFirmID)
		assert.Equal(t, "July Services", params.InvoiceDescription)
		assert.Equal(t, "INV-42", params.InvoiceNumber)
		assert.Equal(t, "MAT-42", params.MatterNumber)
		assert.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), params.BillingStart)
		assert.Equal(t, time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC), params.BillingEnd)
		assert.True(t, params.IncludeBlockBilled)
	})

	t.Run("blank identity fields fall back to defaults", func(t *testing.T) {
		req := api.GenerateRequest{
			ExpenseCount:  5,
			MaxDailyHours: 16,
			ClientID:      "   ",
			BillingStart:  "2025-07-01",
			BillingEnd:    "2025-07-31",
		}

		params, err := MapGenerateRequestToDomainParams(req, timekeepers, tasks, majors)

		require.NoError(t, err)
		assert.Equal(t, domain.DefaultClientID, params.ClientID)
		assert.Equal(t, domain.DefaultLawFirmID, params.LawFirmID)
		assert.Equal(t, domain.DefaultInvoiceDescription, params.InvoiceDescription)
		assert.Equal(t, domain.DefaultInvoiceNumberBase, params.InvoiceNumber)
		assert.Equal(t, domain.DefaultMatterNumberBase, params.MatterNumber)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		req := api.GenerateRequest{BillingStart: "07/01/2025", BillingEnd: "2025-07-31"}

		_, err := MapGenerateRequestToDomainParams(req, timekeepers, tasks, majors)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "billing_start")

		req = api.GenerateRequest{BillingStart: "2025-07-01", BillingEnd: "tomorrow"}

		_, err = MapGenerateRequestToDomainParams(req, timekeepers, tasks, majors)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "billing_end")
	})
}
