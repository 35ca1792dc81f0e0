package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lex-tools/ledes-forge/pkg/adapters"
	"github.com/lex-tools/ledes-forge/pkg/assets"
	"github.com/lex-tools/ledes-forge/pkg/config"
	"github.com/lex-tools/ledes-forge/pkg/export/bundle"
	"github.com/lex-tools/ledes-forge/pkg/models/api"
	"github.com/lex-tools/ledes-forge/pkg/models/domain"
	"github.com/lex-tools/ledes-forge/pkg/services/catalog"
	"github.com/lex-tools/ledes-forge/pkg/services/invoice"
	"github.com/lex-tools/ledes-forge/pkg/services/mail"
)

const (
	maxUploadBytes = 10 << 20

	defaultFeeCount      = 10
	defaultExpenseCount  = 5
	defaultMaxDailyHours = 16
)

// validate is the shared validator for incoming generate requests.
var validate = validator.New()

// GeneratorFactory builds a generator around one run's random source.
type GeneratorFactory func(src rand.Source) invoice.Generator

type Handler struct {
	newGenerator GeneratorFactory
	sender       mail.Sender
	smtp         config.SMTP
	defaults     config.Output
}

func NewHandler(factory GeneratorFactory, sender mail.Sender, smtp config.SMTP, defaults config.Output) *Handler {
	if factory == nil {
		factory = invoice.NewGenerator
	}
	return &Handler{
		newGenerator: factory,
		sender:       sender,
		smtp:         smtp,
		defaults:     defaults,
	}
}

// GenerateInvoice accepts the multipart invoice form (timekeeper CSV
// required; task CSV, XSD and scalar fields optional) and responds with
// a zip of the generated artifacts.
func (h *Handler) GenerateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, logger, http.StatusBadRequest, fmt.Errorf("invalid multipart form: %w", err))
		return
	}

	req, err := parseGenerateRequest(r, h.defaults)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, logger, http.StatusBadRequest, fmt.Errorf("invalid request: %w", err))
		return
	}

	format, err := domain.ParseFormat(req.Format)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}

	timekeepers, err := loadTimekeepers(r)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}

	customTasks, err := loadCustomTasks(r, logger)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}
	tasks, majors := catalog.ResolveTasks(customTasks)

	xsd, err := readOptionalFile(r, "xsd")
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}

	params, err := adapters.MapGenerateRequestToDomainParams(req, timekeepers, tasks, majors)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}

	seed := seedFor(req)
	gen := h.newGenerator(invoice.NewSeededSource(seed))
	inv, err := gen.Generate(ctx, params)
	if err != nil {
		respondError(w, logger, http.StatusBadRequest, err)
		return
	}

	ts := time.Now()
	builder := bundle.NewBuilder(*logger, format, xsd, req.GeneratePDF)
	files, err := builder.Files(inv, ts)
	if err != nil {
		respondError(w, logger, http.StatusInternalServerError, err)
		return
	}

	archive, err := bundle.Zip(files)
	if err != nil {
		respondError(w, logger, http.StatusInternalServerError, err)
		return
	}

	runID := uuid.NewString()

	if req.EmailTo != "" {
		mode, mailErr := h.email(ctx, req, inv.Number, files)
		if mailErr != nil {
			logger.Error().
				Err(mailErr).
				Str("run_id", runID).
				Str("to", req.EmailTo).
				Msg("invoice mail delivery failed")
			w.Header().Set("X-Mail-Error", "delivery failed")
		} else {
			w.Header().Set("X-Mail-Mode", mode)
		}
	}

	logger.Info().
		Str("run_id", runID).
		Str("invoice", inv.Number).
		Uint64("seed", seed).
		Float64("total", inv.Total).
		Int("files", len(files)).
		Msg("invoice generated")

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bundle.ArchiveName(ts)))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.Header().Set("X-Run-ID", runID)
	w.Header().Set("X-Invoice-Total", fmt.Sprintf("%.2f", inv.Total))
	if _, err := w.Write(archive); err != nil {
		logger.Error().Err(err).Msg("failed to write archive response")
	}
}

func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var response []api.TaskActivity
	for _, t := range catalog.DefaultTasks() {
		response = append(response, adapters.MapTaskActivityDomainToApi(t))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode task catalog")
	}
}

func (h *Handler) ListExpenseCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var response []api.ExpenseCategory
	for _, c := range catalog.ExpenseCategories() {
		response = append(response, adapters.MapExpenseCategoryDomainToApi(c))
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode expense catalog")
	}
}

func (h *Handler) Favicon(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	icon, err := assets.Icon()
	if err != nil {
		respondError(w, logger, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(icon); err != nil {
		logger.Error().Err(err).Msg("failed to write favicon")
	}
}

func (h *Handler) email(ctx context.Context, req api.GenerateRequest, invoiceNumber string, files []bundle.File) (string, error) {
	if h.smtp.ProfilePath == "" {
		return "", fmt.Errorf("smtp profile file not configured")
	}
	registry, err := mail.NewRegistry(h.smtp.ProfilePath)
	if err != nil {
		return "", fmt.Errorf("failed to load smtp profiles: %w", err)
	}

	profile := req.SMTPProfile
	if profile == "" {
		profile = h.smtp.Profile
	}
	if profile == "" {
		return "", fmt.Errorf("smtp profile not specified")
	}

	acct, err := registry.GetAccount(ctx, profile)
	if err != nil {
		return "", err
	}

	attachments := make([]mail.Attachment, 0, len(files))
	for _, f := range files {
		attachments = append(attachments, mail.Attachment{Name: f.Name, Data: f.Data})
	}
	return h.sender.Send(ctx, acct, mail.InvoiceMessage(req.EmailTo, invoiceNumber, attachments))
}

// parseGenerateRequest collects scalar form fields, filling the original
// form's defaults for anything absent.
func parseGenerateRequest(r *http.Request, defaults config.Output) (api.GenerateRequest, error) {
	req := api.GenerateRequest{
		FeeCount:           defaultFeeCount,
		ExpenseCount:       defaultExpenseCount,
		MaxDailyHours:      defaultMaxDailyHours,
		ClientID:           r.FormValue("client_id"),
		LawFirmID:          r.FormValue("law_firm_id"),
		InvoiceDescription: r.FormValue("invoice_description"),
		InvoiceNumber:      r.FormValue("invoice_number"),
		MatterNumber:       r.FormValue("matter_number"),
		BillingStart:       r.FormValue("billing_start"),
		BillingEnd:         r.FormValue("billing_end"),
		Format:             defaults.Format,
		IncludeBlockBilled: defaults.IncludeBlockBilled,
		GeneratePDF:        defaults.GeneratePDF,
		EmailTo:            r.FormValue("email_to"),
		SMTPProfile:        r.FormValue("smtp_profile"),
	}

	var err error
	if req.FeeCount, err = intField(r, "fee_count", req.FeeCount); err != nil {
		return req, err
	}
	if req.ExpenseCount, err = intField(r, "expense_count", req.ExpenseCount); err != nil {
		return req, err
	}
	if req.MaxDailyHours, err = intField(r, "max_daily_hours", req.MaxDailyHours); err != nil {
		return req, err
	}
	if req.IncludeBlockBilled, err = boolField(r, "include_block_billed", req.IncludeBlockBilled); err != nil {
		return req, err
	}
	if req.GeneratePDF, err = boolField(r, "generate_pdf", req.GeneratePDF); err != nil {
		return req, err
	}

	if v := r.FormValue("format"); v != "" {
		req.Format = v
	}
	if v := r.FormValue("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, fmt.Errorf("invalid seed %q", v)
		}
		req.Seed = &seed
	}

	if req.BillingStart == "" || req.BillingEnd == "" {
		start, end := domain.PreviousMonthWindow(time.Now())
		if req.BillingStart == "" {
			req.BillingStart = start.Format("2006-01-02")
		}
		if req.BillingEnd == "" {
			req.BillingEnd = end.Format("2006-01-02")
		}
	}

	return req, nil
}

func intField(r *http.Request, name string, def int) (int, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

func boolField(r *http.Request, name string, def bool) (bool, error) {
	v := r.FormValue(name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", name, v)
	}
	return b, nil
}

func seedFor(req api.GenerateRequest) uint64 {
	if req.Seed != nil {
		return *req.Seed
	}
	return rand.Uint64()
}

func loadTimekeepers(r *http.Request) ([]domain.Timekeeper, error) {
	file, _, err := r.FormFile("timekeepers")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, fmt.Errorf("timekeeper CSV is required")
		}
		return nil, fmt.Errorf("failed to read timekeeper CSV: %w", err)
	}
	defer file.Close()

	timekeepers, err := catalog.LoadTimekeepers(file)
	if err != nil {
		return nil, fmt.Errorf("error loading timekeepers: %w", err)
	}
	return timekeepers, nil
}

// loadCustomTasks mirrors the original form behavior: a missing upload
// means built-ins, an unreadable one is a warning plus built-ins.
func loadCustomTasks(r *http.Request, logger *zerolog.Logger) ([]domain.TaskActivity, error) {
	file, _, err := r.FormFile("tasks")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read task CSV: %w", err)
	}
	defer file.Close()

	tasks, err := catalog.LoadTasks(file)
	if err != nil {
		logger.Warn().Err(err).Msg("custom tasks file problem, using defaults")
		return nil, nil
	}
	return tasks, nil
}

func readOptionalFile(r *http.Request, field string) ([]byte, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s upload: %w", field, err)
	}
	return data, nil
}

func respondError(w http.ResponseWriter, logger *zerolog.Logger, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(api.Error{Error: err.Error()}); encodeErr != nil {
		logger.Error().Err(encodeErr).Msg("failed to encode error response")
	}
}
