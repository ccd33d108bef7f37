package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"

	"recipebox"
	"recipebox/favorites"
	"recipebox/slack"
	"recipebox/spoonacular"
	"recipebox/storage"
	"recipebox/tools"
)

type Params struct {
	Tool  string         `json:"tool"`
	Input map[string]any `json:"input"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		if params.Tool == "" {
			return Results{}, errors.New("tool is required")
		}

		var apiConfig recipebox.APIConfig
		if err := envdecode.Decode(&apiConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode API config: %w", err)
		}

		var storeConfig recipebox.StoreConfig
		if err := envdecode.Decode(&storeConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode store config: %w", err)
		}
		// The function's filesystem does not outlive an invocation.
		if storeConfig.Backend == recipebox.BackendFile {
			storeConfig.Backend = recipebox.BackendS3
		}

		var notifyConfig recipebox.NotifyConfig
		if err := envdecode.Decode(&notifyConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode notify config: %w", err)
		}

		tracerProvider, meterProvider, otelShutdown, err := recipebox.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()
		tracer := tracerProvider.Tracer(recipebox.TracerNameLambda)
		meter := meterProvider.Meter(recipebox.TracerNameLambda)

		client, err := spoonacular.NewClient(spoonacular.ClientOpts{
			BaseURL:    apiConfig.BaseURL,
			APIKey:     apiConfig.APIKey,
			HTTPClient: &http.Client{Timeout: apiConfig.Timeout},
		})
		if err != nil {
			slog.Error("SETUP: Failed to create recipe API client", "error", err)
			return Results{}, err
		}

		state, closeState, err := recipebox.OpenState(ctx, storeConfig)
		if err != nil {
			slog.Error("SETUP: Failed to open favorites state", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := closeState(); err != nil {
				slog.Error("SETUP: Failed to close favorites state", "error", err)
			}
		}()

		store := favorites.Open(ctx, storage.NewInstrumentedState(state, storeConfig.Backend, tracer, meter))
		slog.Info("SETUP: Favorites loaded", "backend", storeConfig.Backend, "count", len(store.List()))

		if notifyConfig.SlackWebhookURL != "" {
			slackClient := slack.NewClient(notifyConfig.SlackWebhookURL, "recipebox", http.DefaultClient)
			defer recipebox.NotifyFavorites(ctx, store, slackClient, notifyConfig.SlackChannel)()
		}

		registry, err := tools.NewRegistry(
			spoonacular.NewInstrumentedClient(client, tracer, meter),
			store,
			apiConfig.SearchOptions())
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}

		output, err := recipebox.RunTool(ctx, registry, recipebox.NewStdoutActivityLogger(),
			tools.Call{Name: params.Tool, Input: params.Input})
		if err != nil {
			slog.Error("RESULT: Error handling tool call", "tool", params.Tool, "error", err)
			return Results{}, err
		}

		return Results{Output: output}, nil
	}

	lambda.Start(fn)
}
