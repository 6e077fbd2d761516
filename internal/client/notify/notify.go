// Package notify delivers user-facing notifications (the CLI counterpart of
// toasts and snackbars).
package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Notification struct {
	Level   Level
	Message string
}

// Notifier shows a notification to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Discard drops every notification.
var Discard Notifier = Func(func(context.Context, Notification) {})

func Error(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Level: LevelError, Message: fmt.Sprintf(format, args...)})
}

func Success(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)})
}

func Info(ctx context.Context, n Notifier, format string, args ...any) {
	n.Notify(ctx, Notification{Level: LevelInfo, Message: fmt.Sprintf(format, args...)})
}

// Styles maps each level to its rendering.
type Styles map[Level]lipgloss.Style

// DefaultStyles suit a dark terminal.
func DefaultStyles() Styles {
	return Styles{
		LevelInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
		LevelSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		LevelError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}
}

var prefixes = map[Level]string{
	LevelInfo:    "•",
	LevelSuccess: "✓",
	LevelError:   "✗",
}

// Writer prints notifications, one per line.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	styles Styles
}

func NewWriter(w io.Writer, styles Styles) *Writer {
	if styles == nil {
		styles = DefaultStyles()
	}
	return &Writer{w: w, styles: styles}
}

// SetStyles swaps the styles, e.g. after a theme change.
func (w *Writer) SetStyles(s Styles) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.styles = s
}

func (w *Writer) Notify(_ context.Context, n Notification) {
	w.mu.Lock()
	defer w.mu.Unlock()
	line := prefixes[n.Level] + " " + n.Message
	if st, ok := w.styles[n.Level]; ok {
		line = st.Render(line)
	}
	fmt.Fprintln(w.w, line)
}

// Recorder keeps notifications in memory.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

// All returns a copy of every recorded notification.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Count returns how many notifications of level were recorded.
func (r *Recorder) Count(level Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, it := range r.items {
		if it.Level == level {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
