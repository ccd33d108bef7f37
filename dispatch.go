package recipebox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"recipebox/tools"
)

// RunTool looks up call.Name, runs it and records the outcome on logger.
func RunTool(ctx context.Context, tp ToolProvider, logger ActivityLogger, call tools.Call) (map[string]any, error) {
	slog.Info("DISPATCH: Handling tool call", "name", call.Name)

	activity := Activity{Timestamp: time.Now(), Tool: call.Name, Input: call.Input}
	if call.Input == nil {
		call.Input = map[string]any{}
	}

	tool, err := tp.GetTool(call.Name)
	if err != nil {
		activity.Error = err.Error()
		logActivity(logger, activity)
		return nil, fmt.Errorf("failed to get tool %q: %w", call.Name, err)
	}

	if err := tools.ValidateInput(tool, call.Input); err != nil {
		activity.Error = err.Error()
		logActivity(logger, activity)
		return nil, fmt.Errorf("invalid input for tool %q: %w", call.Name, err)
	}

	start := time.Now()
	out, err := tool.Run(ctx, call.Input)
	activity.Duration = time.Since(start)
	if err != nil {
		activity.Error = err.Error()
		logActivity(logger, activity)
		return nil, fmt.Errorf("failed to run tool %q: %w", call.Name, err)
	}

	activity.Output = out
	logActivity(logger, activity)
	slog.Info("DISPATCH: Tool executed", "name", call.Name, "duration_ms", activity.Duration.Milliseconds())
	return out, nil
}

func logActivity(logger ActivityLogger, activity Activity) {
	if logger == nil {
		return
	}
	if err := logger.LogActivity(activity); err != nil {
		slog.Error("Failed to log activity", "error", err, "tool", activity.Tool)
	}
}
