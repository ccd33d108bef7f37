package recipebox

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ActivityLogger records each tool call made on behalf of the user.
type ActivityLogger interface {
	LogActivity(activity Activity) error
}

// NewActivityLogFilePath returns a timestamped file path for a session's activity log.
func NewActivityLogFilePath(dir string) string {
	return fmt.Sprintf("%s/%d.activity.json", strings.TrimRight(dir, "/"), time.Now().Unix())
}

// Activity represents a single tool call and its outcome
type Activity struct {
	Timestamp time.Time      `json:"timestamp"`
	Tool      string         `json:"tool"`
	Input     map[string]any `json:"input,omitempty"`
	Output    map[string]any `json:"output,omitempty"`
	Duration  time.Duration  `json:"duration_ns"`
	Error     string         `json:"error,omitempty"`
}

// FileActivityLogger accumulates activities and writes them as one JSON document on Flush
type FileActivityLogger struct {
	activities []Activity
	writer     io.Writer
}

// NewFileActivityLogger creates a new file-based activity logger
func NewFileActivityLogger(writer io.Writer) *FileActivityLogger {
	return &FileActivityLogger{
		activities: make([]Activity, 0),
		writer:     writer,
	}
}

// LogActivity buffers the activity (does not flush immediately)
func (l *FileActivityLogger) LogActivity(activity Activity) error {
	l.activities = append(l.activities, activity)
	return nil
}

// Flush writes all accumulated activities to the writer
func (l *FileActivityLogger) Flush() error {
	if l.writer == nil || len(l.activities) == 0 {
		return nil
	}

	data, err := json.MarshalIndent(map[string]any{
		"session": map[string]any{
			"timestamp":  time.Now(),
			"activities": l.activities,
		},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal activity log: %w", err)
	}

	if _, err := l.writer.Write(data); err != nil {
		return fmt.Errorf("failed to write activity log: %w", err)
	}

	l.activities = l.activities[:0]
	return nil
}

// NoOpActivityLogger discards all activities
type NoOpActivityLogger struct{}

func NewNoOpActivityLogger() *NoOpActivityLogger {
	return &NoOpActivityLogger{}
}

func (nop *NoOpActivityLogger) LogActivity(activity Activity) error {
	return nil
}

// StdoutActivityLogger writes each activity as a JSON line (for Lambda/CloudWatch)
type StdoutActivityLogger struct {
	out io.Writer
}

func NewStdoutActivityLogger() *StdoutActivityLogger {
	return &StdoutActivityLogger{out: os.Stdout}
}

func (l *StdoutActivityLogger) LogActivity(activity Activity) error {
	data, err := json.Marshal(activity)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(l.out, string(data))
	return err
}
