package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	ctx := context.Background()
	l, buf := newTestLogger(t)

	l.Debug(ctx, "dbg", "k", "v")
	l.Info(ctx, "inf")
	l.Warn(ctx, "wrn")
	l.Error(ctx, "err")

	out := buf.String()
	for _, want := range []string{"dbg", "inf", "wrn", "err", "k=v"} {
		require.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	ctx := context.Background()
	l, buf := newTestLogger(t)

	child := l.With("conversation_id", "c1")
	child.Info(ctx, "sent")

	require.Contains(t, buf.String(), "conversation_id=c1")
}

func TestNopLogger_DoesNothing(t *testing.T) {
	// Must not panic, even with odd argument counts.
	l := Nop()
	l.Debug(context.Background(), "x", "odd")
	l.With("a", 1).Error(context.Background(), "y")
	require.NotNil(t, l)
}
