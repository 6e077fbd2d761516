// Package editor is the code editor panel: open tabs, an append-only output
// log and remote execution of the active tab.
package editor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/codepad/internal/client/client"
	"github.com/dmitrijs2005/codepad/internal/logging"
)

// ScratchName is the file name of the tab that is not backed by a file.
const ScratchName = "default"

var (
	ErrNoActiveTab     = errors.New("no active tab")
	ErrTabOutOfRange   = errors.New("tab index out of range")
	ErrUnknownLanguage = errors.New("unknown language")
)

// Tab is a copy of one open tab. Key identifies the backing file (a tree node
// ID, or the file name for tabs opened without one).
type Tab struct {
	Key      string
	Filename string
	Language string
	Content  string
}

// Panel holds the editor state of one session. It is safe for concurrent use.
type Panel struct {
	exec client.ExecAPI
	log  logging.Logger

	mu     sync.Mutex
	tabs   []Tab
	active int
	output []string
}

func NewPanel(exec client.ExecAPI, log logging.Logger) *Panel {
	if log == nil {
		log = logging.Discard()
	}
	return &Panel{exec: exec, log: log, active: -1}
}

// Open activates the tab with key, or appends and activates a new one. An
// already open tab keeps its content. key defaults to filename.
func (p *Panel) Open(key, filename, content string) Tab {
	if key == "" {
		key = filename
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, t := range p.tabs {
		if t.Key == key {
			p.active = i
			return t
		}
	}
	t := Tab{Key: key, Filename: filename, Language: DetectLanguage(filename), Content: content}
	p.tabs = append(p.tabs, t)
	p.active = len(p.tabs) - 1
	return t
}

// OpenScratch opens the unnamed tab prefilled with the starter program of
// language.
func (p *Panel) OpenScratch(language string) (Tab, error) {
	l, ok := LookupLanguage(language)
	if !ok {
		return Tab{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	t := p.Open(ScratchName, ScratchName, l.Starter)
	if t.Language != l.Name {
		if err := p.SetLanguage(l.Name); err != nil {
			return Tab{}, err
		}
		t, _ = p.Active()
	}
	return t, nil
}

// Close removes tab i. Closing the active tab activates the one before it,
// or the new first tab, or nothing when no tabs are left.
func (p *Panel) Close(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked(i)
}

func (p *Panel) closeLocked(i int) error {
	if i < 0 || i >= len(p.tabs) {
		return fmt.Errorf("%w: %d", ErrTabOutOfRange, i)
	}
	p.tabs = append(p.tabs[:i], p.tabs[i+1:]...)

	switch {
	case len(p.tabs) == 0:
		p.active = -1
	case p.active >= i && p.active > 0:
		p.active--
	}
	return nil
}

// CloseKey closes the tab with key, if open.
func (p *Panel) CloseKey(key string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexLocked(key)
	if i < 0 {
		return false
	}
	return p.closeLocked(i) == nil
}

// Activate makes tab i the active one.
func (p *Panel) Activate(i int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i < 0 || i >= len(p.tabs) {
		return fmt.Errorf("%w: %d", ErrTabOutOfRange, i)
	}
	p.active = i
	return nil
}

// Tabs returns copies of the open tabs in order.
func (p *Panel) Tabs() []Tab {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Tab, len(p.tabs))
	copy(out, p.tabs)
	return out
}

// ActiveIndex is -1 when no tab is open.
func (p *Panel) ActiveIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

func (p *Panel) Active() (Tab, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active < 0 {
		return Tab{}, false
	}
	return p.tabs[p.active], true
}

// SetContent replaces the text of the active tab.
func (p *Panel) SetContent(content string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active < 0 {
		return ErrNoActiveTab
	}
	p.tabs[p.active].Content = content
	return nil
}

// SetLanguage changes the language of the active tab. The scratch tab also
// gets the starter program of the new language.
func (p *Panel) SetLanguage(language string) error {
	l, ok := LookupLanguage(language)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active < 0 {
		return ErrNoActiveTab
	}
	t := &p.tabs[p.active]
	t.Language = l.Name
	if t.Key == ScratchName {
		t.Content = l.Starter
	}
	return nil
}

// Retitle updates the file name shown for the tab with key, for example after
// the file was renamed.
func (p *Panel) Retitle(key, filename string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexLocked(key)
	if i < 0 {
		return false
	}
	p.tabs[i].Filename = filename
	return true
}

// Replace sets the text of the tab with key, for example after the file was
// overwritten from elsewhere.
func (p *Panel) Replace(key, content string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexLocked(key)
	if i < 0 {
		return false
	}
	p.tabs[i].Content = content
	return true
}

// Rekey moves the tab with key to a new key.
func (p *Panel) Rekey(key, newKey string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.indexLocked(key)
	if i < 0 {
		return false
	}
	p.tabs[i].Key = newKey
	return true
}

func (p *Panel) indexLocked(key string) int {
	for i, t := range p.tabs {
		if t.Key == key {
			return i
		}
	}
	return -1
}

// Output returns a copy of the output log.
func (p *Panel) Output() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.output))
	copy(out, p.output)
	return out
}

// Append adds text to the output log, one entry per line. A single trailing
// newline is not an extra empty line.
func (p *Panel) Append(text string) {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.output = append(p.output, strings.Split(text, "\n")...)
}

// Execute sends code to the execution service and appends what comes back:
// the program output, or the error it reported, or the request error itself.
// Only the request error is returned.
func (p *Panel) Execute(ctx context.Context, code, language string) error {
	res, err := p.exec.ExecuteCode(ctx, code, language)
	if err != nil {
		p.log.Error(ctx, "execute failed", "language", language, "error", err)
		p.Append(err.Error())
		return fmt.Errorf("execute: %w", err)
	}
	p.log.Debug(ctx, "executed", "language", language, "failed", res.Output == "" && res.Error != "")
	p.Append(res.Text())
	return nil
}

// Run executes the active tab.
func (p *Panel) Run(ctx context.Context) error {
	t, ok := p.Active()
	if !ok {
		return ErrNoActiveTab
	}
	return p.Execute(ctx, t.Content, t.Language)
}

// Stats counts lines and words of a text the way the editor status bar does.
func Stats(content string) (lines, words int) {
	if content == "" {
		return 0, 0
	}
	lines = strings.Count(content, "\n") + 1
	inWord := false
	for _, r := range content {
		w := r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'
		if w && !inWord {
			words++
		}
		inWord = w
	}
	return lines, words
}
