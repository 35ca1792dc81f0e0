package main

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/lex-tools/ledes-forge/pkg/config"
	"github.com/lex-tools/ledes-forge/pkg/server"
	"github.com/lex-tools/ledes-forge/pkg/services/mail"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for LEDES Forge",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the YAML configuration file (default is built-in settings)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}

	if cfg.SMTP.ProfilePath != "" {
		registry, err := mail.NewRegistry(cfg.SMTP.ProfilePath)
		if err != nil {
			return fmt.Errorf("failed to load smtp profiles: %w", err)
		}
		profiles, _ := registry.GetProfiles(ctx)
		logger.Info().Msgf("Found the following SMTP profiles:")
		for _, profile := range profiles {
			logger.Info().Msgf("Name: `%s`", profile)
		}
	}

	host := cfg.Server.Host
	port := strconv.Itoa(cfg.Server.Port)
	if v := os.Getenv("SERVER_HOST"); v != "" {
		host = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port = v
	}

	addr := net.JoinHostPort(host, port)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout(),
		SMTP:            cfg.SMTP,
		Output:          cfg.Output,
		Dependencies: server.Dependencies{
			Sender: mail.NewSender(logger),
		},
	})

	logger.Info().Msgf("starting server on %s", addr)
	return webAPI.Start()
}
