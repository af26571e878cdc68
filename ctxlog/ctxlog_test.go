package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))

	buffer := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buffer, nil))
	ctx := WithLogger(context.Background(), logger)
	FromContext(ctx).Info("sliced", "unit", "page.js")
	assert.Contains(t, buffer.String(), "unit=page.js")
}
