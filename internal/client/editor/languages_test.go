package editor

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguages(t *testing.T) {
	var names []string
	for _, l := range Languages() {
		names = append(names, l.Name)
		assert.NotEmpty(t, l.Starter, l.Name)
		assert.NotEmpty(t, l.Extensions, l.Name)
	}
	assert.Equal(t, []string{"python", "cpp", "js", "c", "cs", "go", "ruby", "html", "css"}, names)
}

func TestDetectLanguage(t *testing.T) {
	tests := map[string]string{
		"main.py":       "python",
		"src/App.JSX":   "js",
		"prog.cc":       "cpp",
		"Program.cs":    "cs",
		"index.html":    "html",
		"style.css":     "css",
		"main.go":       "go",
		"lib.rb":        "ruby",
		"hello.c":       "c",
		"Makefile":      DefaultLanguage,
		"notes.unknown": DefaultLanguage,
	}
	for file, want := range tests {
		assert.Equal(t, want, DetectLanguage(file), file)
	}
}

func TestStarterCode(t *testing.T) {
	assert.Equal(t, "print('Hello, world!')", StarterCode("python"))
	assert.Equal(t, "puts 'hello, world!'", StarterCode("ruby"))
	assert.Equal(t, StarterCode(DefaultLanguage), StarterCode("brainfuck"))
}

func TestHighlight(t *testing.T) {
	for _, dark := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, Highlight(&buf, "print('hi')", "python", "main.py", dark))
		out := buf.String()
		assert.Contains(t, out, "print")
		assert.Contains(t, out, "\x1b[")
	}

	var buf bytes.Buffer
	require.NoError(t, Highlight(&buf, "plain words", "", "", true))
	assert.Contains(t, buf.String(), "plain words")
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, DarkStyle, StyleFor(true))
	assert.Equal(t, LightStyle, StyleFor(false))
}
