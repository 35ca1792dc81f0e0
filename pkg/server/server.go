package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	appconfig "github.com/lex-tools/ledes-forge/pkg/config"
	handlers "github.com/lex-tools/ledes-forge/pkg/handlers/invoice"
	forgemiddleware "github.com/lex-tools/ledes-forge/pkg/server/middleware"
	"github.com/lex-tools/ledes-forge/pkg/services/mail"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Generators handlers.GeneratorFactory
	Sender     mail.Sender
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	SMTP            appconfig.SMTP
	Output          appconfig.Output
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	invHandler := handlers.NewHandler(
		config.Dependencies.Generators,
		config.Dependencies.Sender,
		config.SMTP,
		config.Output,
	)

	router := chi.NewRouter()

	router.Use(forgemiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/invoices", invHandler.GenerateInvoice)
		r.Get("/catalog/tasks", invHandler.ListTasks)
		r.Get("/catalog/expenses", invHandler.ListExpenseCategories)
	})
	router.Get("/favicon.ico", invHandler.Favicon)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
