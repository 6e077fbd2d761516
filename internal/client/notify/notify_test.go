package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_PrefixesByLevel(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, Styles{})
	ctx := context.Background()

	Error(ctx, w, "could not load %q", "demo")
	Success(ctx, w, "saved")
	Info(ctx, w, "hello")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `✗ could not load "demo"`, lines[0])
	assert.Equal(t, "✓ saved", lines[1])
	assert.Equal(t, "• hello", lines[2])
}

func TestWriter_SetStyles(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	w.SetStyles(Styles{LevelInfo: lipgloss.NewStyle()})

	w.Notify(context.Background(), Notification{Level: LevelInfo, Message: "plain"})
	assert.Contains(t, buf.String(), "plain")
}

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	Error(ctx, &r, "a")
	Error(ctx, &r, "b")
	Success(ctx, &r, "c")

	assert.Equal(t, 2, r.Count(LevelError))
	assert.Equal(t, 1, r.Count(LevelSuccess))
	assert.Equal(t, "a", r.All()[0].Message)

	r.Reset()
	assert.Empty(t, r.All())
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "info", LevelInfo.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "error", LevelError.String())
}

func TestDiscardAndFunc(t *testing.T) {
	Discard.Notify(context.Background(), Notification{Message: "dropped"})

	var got []string
	f := Func(func(_ context.Context, n Notification) { got = append(got, n.Message) })
	Info(context.Background(), f, "x=%d", 1)
	assert.Equal(t, []string{"x=1"}, got)
}
