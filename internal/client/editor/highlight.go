package editor

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlight styles for the two themes.
const (
	DarkStyle  = "monokai"
	LightStyle = "github"
)

// StyleFor returns the chroma style name for a theme.
func StyleFor(dark bool) string {
	if dark {
		return DarkStyle
	}
	return LightStyle
}

// Highlight writes code to w with terminal colour escapes. The lexer comes
// from language, then from filename; unknown input is written as plain text.
func Highlight(w io.Writer, code, language, filename string, dark bool) error {
	var lexer chroma.Lexer
	if l, ok := LookupLanguage(language); ok {
		lexer = lexers.Get(l.Lexer)
	}
	if lexer == nil && filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(StyleFor(dark))
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return err
	}
	return formatter.Format(w, style, it)
}
