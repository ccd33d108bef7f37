package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joeshaw/envdecode"
	"github.com/urfave/cli/v3"

	"recipebox"
	"recipebox/favorites"
	"recipebox/slack"
	"recipebox/spoonacular"
	"recipebox/storage"
	"recipebox/tools"
)

// session holds what every command needs, built once in Before.
type session struct {
	api      tools.RecipeAPI
	store    *favorites.Store
	registry *tools.Registry
	logger   recipebox.ActivityLogger
	search   spoonacular.SearchOptions
	debug    bool
	cleanups []func() error
}

func (s *session) close() error {
	var errs []error
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		errs = append(errs, s.cleanups[i]())
	}
	return errors.Join(errs...)
}

func newApp() *cli.Command {
	s := &session{}

	return &cli.Command{
		Name:  "recipebox",
		Usage: "Find recipes for the ingredients you have and keep your favorites",
		Description: `Configuration comes from the environment:
  RECIPE_API_KEY (required), RECIPE_API_BASE_URL, RECIPE_RESULT_COUNT, RECIPE_RANKING,
  RECIPE_IGNORE_PANTRY, RECIPE_API_TIMEOUT, FAVORITES_BACKEND (file|s3|redis|sqlite|postgres),
  FAVORITES_KEY, FAVORITES_FILE_PATH, FAVORITES_S3_BUCKET, FAVORITES_REDIS_URL,
  FAVORITES_SQLITE_PATH, FAVORITES_POSTGRES_DSN, SLACK_WEBHOOK_URL, SLACK_CHANNEL.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Override FAVORITES_BACKEND for this run",
			},
			&cli.BoolFlag{
				Name:  "otel",
				Usage: "Export traces and metrics over OTLP (configured via OTEL_* variables)",
			},
			&cli.StringFlag{
				Name:  "activity-log",
				Usage: "Directory to write a JSON log of the tool calls made in this run",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Dump decoded configuration and raw results",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, s.setup(ctx, cmd)
		},
		After: func(ctx context.Context, cmd *cli.Command) error {
			return s.close()
		},
		Commands: []*cli.Command{
			searchCmd(s),
			detailsCmd(s),
			favoritesCmd(s),
			toolCmd(s),
		},
	}
}

func (s *session) setup(ctx context.Context, cmd *cli.Command) error {
	var apiConfig recipebox.APIConfig
	if err := envdecode.Decode(&apiConfig); err != nil {
		return fmt.Errorf("SETUP: failed to decode API config: %w", err)
	}

	var storeConfig recipebox.StoreConfig
	if err := envdecode.Decode(&storeConfig); err != nil {
		return fmt.Errorf("SETUP: failed to decode store config: %w", err)
	}
	if backend := cmd.String("backend"); backend != "" {
		storeConfig.Backend = backend
	}

	var notifyConfig recipebox.NotifyConfig
	if err := envdecode.Decode(&notifyConfig); err != nil {
		return fmt.Errorf("SETUP: failed to decode notify config: %w", err)
	}

	s.debug = cmd.Bool("debug")
	s.search = apiConfig.SearchOptions()
	if s.debug {
		redacted := apiConfig
		redacted.APIKey = "REDACTED"
		recipebox.Dump(os.Stderr, redacted, storeConfig)
	}

	client, err := spoonacular.NewClient(spoonacular.ClientOpts{
		BaseURL:    apiConfig.BaseURL,
		APIKey:     apiConfig.APIKey,
		HTTPClient: &http.Client{Timeout: apiConfig.Timeout},
	})
	if err != nil {
		return fmt.Errorf("SETUP: failed to create recipe API client: %w", err)
	}
	s.api = client

	state, closeState, err := recipebox.OpenState(ctx, storeConfig)
	if err != nil {
		return fmt.Errorf("SETUP: failed to open favorites state: %w", err)
	}
	s.cleanups = append(s.cleanups, closeState)

	if cmd.Bool("otel") {
		tracerProvider, meterProvider, otelShutdown, err := recipebox.InitOtel(ctx)
		if err != nil {
			return fmt.Errorf("SETUP: failed to initialize OpenTelemetry: %w", err)
		}
		s.cleanups = append(s.cleanups, func() error { return otelShutdown(context.Background()) })

		tracer := tracerProvider.Tracer(recipebox.TracerNameCLI)
		meter := meterProvider.Meter(recipebox.TracerNameCLI)
		s.api = spoonacular.NewInstrumentedClient(client, tracer, meter)
		state = storage.NewInstrumentedState(state, storeConfig.Backend, tracer, meter)
	}

	s.store = favorites.Open(ctx, state)

	if notifyConfig.SlackWebhookURL != "" {
		slackClient := slack.NewClient(notifyConfig.SlackWebhookURL, "recipebox", http.DefaultClient)
		stop := recipebox.NotifyFavorites(ctx, s.store, slackClient, notifyConfig.SlackChannel)
		s.cleanups = append(s.cleanups, func() error { stop(); return nil })
	}

	s.registry, err = tools.NewRegistry(s.api, s.store, s.search)
	if err != nil {
		return fmt.Errorf("SETUP: failed to create tool registry: %w", err)
	}

	s.logger = recipebox.NewNoOpActivityLogger()
	if dir := cmd.String("activity-log"); dir != "" {
		logger, closeLog, err := newActivityLogger(dir)
		if err != nil {
			return fmt.Errorf("SETUP: failed to create activity logger: %w", err)
		}
		s.logger = logger
		s.cleanups = append(s.cleanups, closeLog)
	}

	slog.Debug("SETUP: Session ready", "backend", storeConfig.Backend, "favorites", len(s.store.List()))
	return nil
}

func newActivityLogger(dir string) (recipebox.ActivityLogger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	logFile, err := os.OpenFile(filepath.Clean(recipebox.NewActivityLogFilePath(dir)), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := recipebox.NewFileActivityLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
