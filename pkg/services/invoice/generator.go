package invoice

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
	"github.com/lex-tools/ledes-forge/pkg/services/catalog"
)

const (
	majorTaskWeight = 0.7
	maxFeeHours     = 8.0
	minFeeHours     = 0.5
)

// Generator produces synthetic invoices. Fee counts are a best-effort
// target (capacity exhaustion drops iterations); expense counts are
// exact as long as the non-Copying category set is non-empty.
type Generator interface {
	Generate(ctx context.Context, params domain.GenerateParams) (*domain.Invoice, error)
}

type generator struct {
	rnd   *rand.Rand
	faker *gofakeit.Faker
}

// NewGenerator creates a generator drawing all randomness, including
// synthetic person names, from the given source. The same seed
// reproduces the same invoice.
func NewGenerator(src rand.Source) Generator {
	return &generator{
		rnd:   rand.New(src),
		faker: gofakeit.NewFaker(src, false),
	}
}

// NewSeededSource builds the source both front-ends hand to NewGenerator,
// so a logged seed reproduces a run exactly.
func NewSeededSource(seed uint64) rand.Source {
	return rand.NewPCG(seed, seed)
}

func (g *generator) Generate(_ context.Context, params domain.GenerateParams) (*domain.Invoice, error) {
	if err := validateParams(params); err != nil {
		return nil, err
	}

	start := dateOnly(params.BillingStart)
	end := dateOnly(params.BillingEnd)
	windowDays := int(end.Sub(start).Hours()/24) + 1

	var major, other []domain.TaskActivity
	for _, task := range params.Tasks {
		if _, ok := params.MajorTaskCodes[task.TaskCode]; ok {
			major = append(major, task)
		} else {
			other = append(other, task)
		}
	}

	type tkDay struct {
		date       string
		timekeeper string
	}
	committed := make(map[tkDay]float64)

	var (
		lines []domain.LineItem
		total float64
	)

	for i := 0; i < params.FeeCount && len(params.Tasks) > 0; i++ {
		tk := params.Timekeepers[g.rnd.IntN(len(params.Timekeepers))]

		var task domain.TaskActivity
		switch {
		case len(major) > 0 && (len(other) == 0 || g.rnd.Float64() < majorTaskWeight):
			task = major[g.rnd.IntN(len(major))]
		case len(other) > 0:
			task = other[g.rnd.IntN(len(other))]
		default:
			continue
		}

		lineDate := start.AddDate(0, 0, g.rnd.IntN(windowDays))
		day := tkDay{date: lineDate.Format("2006-01-02"), timekeeper: tk.ID}

		remaining := float64(params.MaxDailyHours) - committed[day]
		upper := math.Min(maxFeeHours, remaining)
		if upper < minFeeHours {
			continue
		}

		hours := round1(minFeeHours + g.rnd.Float64()*(upper-minFeeHours))
		if hours <= 0 {
			continue
		}

		lineTotal := round2(hours * tk.Rate)
		total += lineTotal
		committed[day] += hours

		lines = append(lines, domain.LineItem{
			Kind:        domain.ItemFee,
			Date:        lineDate,
			Description: g.substitute(task.Description),
			Quantity:    hours,
			Rate:        tk.Rate,
			Total:       lineTotal,
			Fee: &domain.FeeDetail{
				TimekeeperID:             tk.ID,
				TimekeeperName:           tk.Name,
				TimekeeperClassification: tk.Classification,
				TaskCode:                 task.TaskCode,
				ActivityCode:             task.ActivityCode,
			},
		})
	}

	// Every invoice carries 1-3 Copying lines; the remaining expense
	// slots draw from the other categories.
	copyingCount := 1 + g.rnd.IntN(min(3, params.ExpenseCount))
	for i := 0; i < copyingCount; i++ {
		units := float64(1 + g.rnd.IntN(200))
		rate := round2(0.14 + g.rnd.Float64()*(0.25-0.14))
		lineDate := start.AddDate(0, 0, g.rnd.IntN(windowDays))
		lineTotal := round2(units * rate)
		total += lineTotal

		lines = append(lines, domain.LineItem{
			Kind:        domain.ItemExpense,
			Date:        lineDate,
			Description: "Copying",
			Quantity:    units,
			Rate:        rate,
			Total:       lineTotal,
			Expense:     &domain.ExpenseDetail{Code: catalog.CopyingExpenseCode},
		})
	}

	others := catalog.OtherExpenseCategories()
	for i := 0; i < params.ExpenseCount-copyingCount && len(others) > 0; i++ {
		category := others[g.rnd.IntN(len(others))]
		rate := round2(25 + g.rnd.Float64()*(200-25))
		lineDate := start.AddDate(0, 0, g.rnd.IntN(windowDays))
		lineTotal := round2(1 * rate)
		total += lineTotal

		lines = append(lines, domain.LineItem{
			Kind:        domain.ItemExpense,
			Date:        lineDate,
			Description: g.substitute(category.Description),
			Quantity:    1,
			Rate:        rate,
			Total:       lineTotal,
			Expense:     &domain.ExpenseDetail{Code: category.Code},
		})
	}

	if !params.IncludeBlockBilled {
		kept := lines[:0]
		for _, l := range lines {
			if !domain.IsBlockBilled(l.Description) {
				kept = append(kept, l)
			}
		}
		lines = kept
	}

	return &domain.Invoice{
		Number:       params.InvoiceNumber,
		MatterNumber: params.MatterNumber,
		ClientID:     params.ClientID,
		LawFirmID:    params.LawFirmID,
		Description:  params.InvoiceDescription,
		BillingStart: start,
		BillingEnd:   end,
		Total:        round2(total),
		Lines:        lines,
	}, nil
}

func validateParams(params domain.GenerateParams) error {
	if len(params.Timekeepers) == 0 {
		return fmt.Errorf("at least one timekeeper is required")
	}
	if params.FeeCount < 0 {
		return fmt.Errorf("fee count must not be negative, got %d", params.FeeCount)
	}
	if params.ExpenseCount < 1 {
		return fmt.Errorf("expense count must be at least 1, got %d", params.ExpenseCount)
	}
	if params.MaxDailyHours < 1 {
		return fmt.Errorf("max daily hours must be at least 1, got %d", params.MaxDailyHours)
	}
	if params.BillingStart.After(params.BillingEnd) {
		return fmt.Errorf("billing start date (%s) must not be after billing end date (%s)",
			params.BillingStart.Format("2006-01-02"),
			params.BillingEnd.Format("2006-01-02"))
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
