package commands

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/lex-tools/ledes-forge/pkg/export/bundle"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
	"github.com/lex-tools/ledes-forge/pkg/runtime/terminal/export"
	"github.com/lex-tools/ledes-forge/pkg/services/catalog"
	"github.com/lex-tools/ledes-forge/pkg/services/invoice"
	"github.com/lex-tools/ledes-forge/pkg/services/mail"
)

type GenerateCmd struct {
	timekeepersPath string
	tasksPath       string
	xsdPath         string
	format          string
	outputDir       string
	zipOutput       bool
	pdf             bool
	includeBlock    bool
	feeCount        int
	expenseCount    int
	maxDailyHours   int
	clientID        string
	lawFirmID       string
	invoiceDesc     string
	invoiceNumber   string
	matterNumber    string
	billingStart    string
	billingEnd      string
	seed            uint64
	count           int
	emailTo         string
	smtpProfiles    string
	smtpProfile     string

	logger   zerolog.Logger
	reporter *export.Reporter
}

func NewGenerateCmd(logger zerolog.Logger, reporter *export.Reporter) *cobra.Command {
	gc := &GenerateCmd{logger: logger, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic LEDES invoices",
		RunE:  gc.run,
	}

	// Define flags
	cmd.Flags().StringVar(&gc.timekeepersPath, "timekeepers", "", "Path to the timekeeper roster CSV")
	cmd.Flags().StringVar(&gc.tasksPath, "tasks", "", "Path to a custom task/activity CSV")
	cmd.Flags().StringVar(&gc.xsdPath, "xsd", "", "Path to a LEDES XML 2.1 schema used for validation")
	cmd.Flags().StringVar(&gc.format, "format", "1998b", "Output format: 1998b or xml21")
	cmd.Flags().StringVar(&gc.outputDir, "out", ".", "Directory for generated files")
	cmd.Flags().BoolVar(&gc.zipOutput, "zip", false, "Pack all outputs into one archive")
	cmd.Flags().BoolVar(&gc.pdf, "pdf", true, "Render a PDF companion per invoice")
	cmd.Flags().BoolVar(&gc.includeBlock, "include-block-billed", true, "Keep block-billed fee lines")
	cmd.Flags().IntVar(&gc.feeCount, "fees", 10, "Number of fee lines to target")
	cmd.Flags().IntVar(&gc.expenseCount, "expenses", 5, "Number of expense lines")
	cmd.Flags().IntVar(&gc.maxDailyHours, "max-daily-hours", 16, "Hour capacity per timekeeper per day")
	cmd.Flags().StringVar(&gc.clientID, "client-id", domain.DefaultClientID, "LEDES client id")
	cmd.Flags().StringVar(&gc.lawFirmID, "law-firm-id", domain.DefaultLawFirmID, "LEDES law firm id")
	cmd.Flags().StringVar(&gc.invoiceDesc, "description", domain.DefaultInvoiceDescription, "Invoice description")
	cmd.Flags().StringVar(&gc.invoiceNumber, "invoice-number", domain.DefaultInvoiceNumberBase, "Invoice number base")
	cmd.Flags().StringVar(&gc.matterNumber, "matter-number", domain.DefaultMatterNumberBase, "Matter number base")
	cmd.Flags().StringVar(&gc.billingStart, "start", "", "Billing start date YYYY-MM-DD (default: first day of last month)")
	cmd.Flags().StringVar(&gc.billingEnd, "end", "", "Billing end date YYYY-MM-DD (default: last day of last month)")
	cmd.Flags().Uint64Var(&gc.seed, "seed", 0, "Random seed (default: drawn at random, logged)")
	cmd.Flags().IntVar(&gc.count, "count", 1, "Number of invoices to generate")
	cmd.Flags().StringVar(&gc.emailTo, "email-to", "", "Email the outputs to this address")
	cmd.Flags().StringVar(&gc.smtpProfiles, "smtp-profiles", "", "Path to the SMTP profile file")
	cmd.Flags().StringVar(&gc.smtpProfile, "smtp-profile", "", "SMTP profile name to send with")

	// Mark required flags
	_ = cmd.MarkFlagRequired("timekeepers")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if gc.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", gc.count)
	}

	format, err := domain.ParseFormat(gc.format)
	if err != nil {
		return err
	}

	timekeepers, err := gc.loadTimekeepers()
	if err != nil {
		return err
	}
	tasks, majors, err := gc.loadTasks()
	if err != nil {
		return err
	}

	var xsd []byte
	if gc.xsdPath != "" {
		xsd, err = os.ReadFile(gc.xsdPath)
		if err != nil {
			return fmt.Errorf("failed to read schema %s: %w", gc.xsdPath, err)
		}
	}

	start, end, err := gc.billingWindow()
	if err != nil {
		return err
	}

	seed := gc.seed
	if !cmd.Flags().Changed("seed") {
		seed = rand.Uint64()
	}
	gc.logger.Info().Uint64("seed", seed).Int("count", gc.count).Msg("starting invoice run")

	src := invoice.NewSeededSource(seed)
	rnd := rand.New(src)
	gen := invoice.NewGenerator(src)
	builder := bundle.NewBuilder(gc.logger, format, xsd, gc.pdf)
	ts := time.Now()

	var (
		allFiles  []bundle.File
		summaries []export.InvoiceSummary
		numbers   []string
	)
	for i := 0; i < gc.count; i++ {
		params := domain.GenerateParams{
			FeeCount:           gc.feeCount,
			ExpenseCount:       gc.expenseCount,
			MaxDailyHours:      gc.maxDailyHours,
			Timekeepers:        timekeepers,
			Tasks:              tasks,
			MajorTaskCodes:     majors,
			ClientID:           gc.clientID,
			LawFirmID:          gc.lawFirmID,
			InvoiceDescription: gc.invoiceDesc,
			InvoiceNumber:      invoice.NumberFor(gc.invoiceNumber, i, gc.count, rnd),
			MatterNumber:       invoice.NumberFor(gc.matterNumber, i, gc.count, rnd),
			BillingStart:       start,
			BillingEnd:         end,
			IncludeBlockBilled: gc.includeBlock,
		}

		inv, err := gen.Generate(ctx, params)
		if err != nil {
			return err
		}

		files, err := builder.Files(inv, ts)
		if err != nil {
			return err
		}

		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name)
		}
		allFiles = append(allFiles, files...)
		summaries = append(summaries, export.SummarizeInvoice(inv, names))
		numbers = append(numbers, inv.Number)
	}

	summary := &export.RunSummary{
		Invoices:  summaries,
		Format:    format,
		Seed:      seed,
		OutputDir: gc.outputDir,
	}

	if err := os.MkdirAll(gc.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if gc.zipOutput {
		archive, err := bundle.Zip(allFiles)
		if err != nil {
			return err
		}
		name := bundle.ArchiveName(ts)
		if err := os.WriteFile(filepath.Join(gc.outputDir, name), archive, 0o644); err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}
		summary.Archive = name
	} else {
		for _, f := range allFiles {
			if err := os.WriteFile(filepath.Join(gc.outputDir, f.Name), f.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", f.Name, err)
			}
		}
	}

	if gc.emailTo != "" {
		mode, err := gc.email(ctx, numbers, allFiles)
		if err != nil {
			return err
		}
		summary.MailMode = mode
	}

	return gc.reporter.Handle(summary)
}

func (gc *GenerateCmd) loadTimekeepers() ([]domain.Timekeeper, error) {
	f, err := os.Open(gc.timekeepersPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open timekeeper CSV: %w", err)
	}
	defer f.Close()

	timekeepers, err := catalog.LoadTimekeepers(f)
	if err != nil {
		return nil, fmt.Errorf("error loading timekeepers: %w", err)
	}
	return timekeepers, nil
}

// loadTasks keeps the original fallback behavior: an unreadable custom
// catalog is a warning, not a failure.
func (gc *GenerateCmd) loadTasks() ([]domain.TaskActivity, map[string]struct{}, error) {
	var custom []domain.TaskActivity
	if gc.tasksPath != "" {
		f, err := os.Open(gc.tasksPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open task CSV: %w", err)
		}
		defer f.Close()

		custom, err = catalog.LoadTasks(f)
		if err != nil {
			gc.logger.Warn().Err(err).Msg("custom tasks file problem, using defaults")
			custom = nil
		}
	}

	tasks, majors := catalog.ResolveTasks(custom)
	return tasks, majors, nil
}

func (gc *GenerateCmd) billingWindow() (time.Time, time.Time, error) {
	start, end := domain.PreviousMonthWindow(time.Now())
	if gc.billingStart != "" {
		parsed, err := time.Parse("2006-01-02", gc.billingStart)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start %q: expected YYYY-MM-DD", gc.billingStart)
		}
		start = parsed
	}
	if gc.billingEnd != "" {
		parsed, err := time.Parse("2006-01-02", gc.billingEnd)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end %q: expected YYYY-MM-DD", gc.billingEnd)
		}
		end = parsed
	}
	return start, end, nil
}

func (gc *GenerateCmd) email(ctx context.Context, numbers []string, files []bundle.File) (string, error) {
	if gc.smtpProfiles == "" {
		return "", fmt.Errorf("--smtp-profiles is required to send mail")
	}
	if gc.smtpProfile == "" {
		return "", fmt.Errorf("--smtp-profile is required to send mail")
	}

	registry, err := mail.NewRegistry(gc.smtpProfiles)
	if err != nil {
		return "", fmt.Errorf("failed to load smtp profiles: %w", err)
	}
	acct, err := registry.GetAccount(ctx, gc.smtpProfile)
	if err != nil {
		return "", err
	}

	attachments := make([]mail.Attachment, 0, len(files))
	for _, f := range files {
		attachments = append(attachments, mail.Attachment{Name: f.Name, Data: f.Data})
	}

	msg := mail.InvoiceMessage(gc.emailTo, numbers[0], attachments)
	if len(numbers) > 1 {
		msg.Subject = fmt.Sprintf("LEDES Invoices (%d)", len(numbers))
		msg.Body = "Attached are the generated invoice files."
	}

	sender := mail.NewSender(gc.logger)
	return sender.Send(ctx, acct, msg)
}
