package spoonacular

import (
	"context"
	"log/slog"
	"time"

	"recipebox/recipe"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type recipeAPI interface {
	SearchByIngredients(ctx context.Context, ingredients string, opts SearchOptions) ([]recipe.Summary, error)
	GetDetails(ctx context.Context, id int) (*recipe.Detail, error)
}

// InstrumentedClient is an instrumented version of the Client with spans and request metrics.
type InstrumentedClient struct {
	next   recipeAPI
	tracer trace.Tracer

	requests metric.Int64Counter
	failures metric.Int64Counter
	results  metric.Int64Histogram
	latency  metric.Float64Histogram
}

// NewInstrumentedClient wraps next with tracing and metrics.
func NewInstrumentedClient(next recipeAPI, tracer trace.Tracer, meter metric.Meter) *InstrumentedClient {
	requests, _ := meter.Int64Counter("recipe_api_requests_total",
		metric.WithDescription("Total number of recipe API requests"))
	failures, _ := meter.Int64Counter("recipe_api_failures_total",
		metric.WithDescription("Total number of recipe API requests that failed"))
	results, _ := meter.Int64Histogram("recipe_api_search_results",
		metric.WithDescription("Number of recipes returned per search"))
	latency, _ := meter.Float64Histogram("recipe_api_response_time_seconds",
		metric.WithDescription("Time taken to receive a response from the recipe API in seconds"))

	return &InstrumentedClient{
		next:     next,
		tracer:   tracer,
		requests: requests,
		failures: failures,
		results:  results,
		latency:  latency,
	}
}

func (c *InstrumentedClient) SearchByIngredients(ctx context.Context, ingredients string, opts SearchOptions) ([]recipe.Summary, error) {
	ctx, span := c.tracer.Start(ctx, "RecipeAPI.SearchByIngredients", trace.WithAttributes(
		attribute.String("recipe.ingredients", ingredients),
		attribute.Int("recipe.count", opts.Count),
		attribute.Int("recipe.ranking", int(opts.Ranking)),
		attribute.Bool("recipe.ignore_pantry", opts.IgnorePantry),
	))
	defer span.End()

	start := time.Now()
	out, err := c.next.SearchByIngredients(ctx, ingredients, opts)
	c.record(ctx, span, "search", start, err)
	if err != nil {
		return nil, err
	}

	c.results.Record(ctx, int64(len(out)))
	span.SetAttributes(attribute.Int("recipe.results", len(out)))
	slog.Info("RECIPE_API: Search completed", "results", len(out), "response_time_ms", time.Since(start).Milliseconds())
	return out, nil
}

func (c *InstrumentedClient) GetDetails(ctx context.Context, id int) (*recipe.Detail, error) {
	ctx, span := c.tracer.Start(ctx, "RecipeAPI.GetDetails", trace.WithAttributes(
		attribute.Int("recipe.id", id),
	))
	defer span.End()

	start := time.Now()
	out, err := c.next.GetDetails(ctx, id)
	c.record(ctx, span, "details", start, err)
	return out, err
}

func (c *InstrumentedClient) record(ctx context.Context, span trace.Span, op string, start time.Time, err error) {
	attrs := metric.WithAttributes(attribute.String("recipe_api.op", op))
	c.requests.Add(ctx, 1, attrs)
	c.latency.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		c.failures.Add(ctx, 1, attrs)
		span.SetStatus(codes.Error, op+" failed")
		span.RecordError(err)
	}
}
