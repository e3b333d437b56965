package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/quill/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  log.Level
	}{
		{input: "debug", want: log.DebugLevel},
		{input: "DEBUG", want: log.DebugLevel},
		{input: "info", want: log.InfoLevel},
		{input: "warn", want: log.WarnLevel},
		{input: "Warning", want: log.WarnLevel},
		{input: "error", want: log.ErrorLevel},
		{input: "", want: log.InfoLevel},
		{input: "verbose", want: log.InfoLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, logging.ParseLevel(testCase.input))
			assert.Equal(t, testCase.want, logging.New(testCase.input).GetLevel())
		})
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("formatted", logging.FieldPath, "a.ts")
	assert.Empty(t, buf.String())

	logger.Warn("watch error", logging.FieldError, "too many open files")
	assert.Contains(t, buf.String(), "watch error")
	assert.Contains(t, buf.String(), "too many open files")
}

func TestStructuredFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("processed file",
		logging.FieldPath, "src/app.tsx",
		logging.FieldLanguage, "tsx",
		logging.FieldCount, 3)

	out := buf.String()
	assert.Contains(t, out, "processed file")
	assert.Contains(t, out, "path=src/app.tsx")
	assert.Contains(t, out, "language=tsx")
	assert.Contains(t, out, "count=3")
}

func TestNewInteractive(t *testing.T) {
	t.Parallel()

	logger := logging.NewInteractive()
	require.NotNil(t, logger)
	assert.Equal(t, log.InfoLevel, logger.GetLevel())
	assert.Equal(t, "quill", logger.GetPrefix())
}

// The default logger is process-wide, so these tests run serially.
func TestDefaultLogger(t *testing.T) {
	original := logging.Default()
	require.NotNil(t, original)
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("info")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, replacement.GetLevel())
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.Same(t, logging.Default(), logging.FromContext(context.Background()))
}

func TestContextWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	parent := logging.NewWithWriter(&buf, "info")
	ctx, child := logging.With(logging.WithLogger(context.Background(), parent), logging.FieldComponent, "watch")

	assert.NotSame(t, parent, child)
	assert.Same(t, child, logging.FromContext(ctx))

	logging.FromContext(ctx).Info("files changed", logging.FieldCount, 2)
	assert.Contains(t, buf.String(), "component=watch")
	assert.Contains(t, buf.String(), "count=2")
}
