package editor

import (
	"path"
	"strings"
)

// DefaultLanguage is used for new tabs whose extension is unknown.
const DefaultLanguage = "python"

// Language is one of the languages accepted by the execution service.
type Language struct {
	// Name is the tag sent to the server.
	Name  string
	Label string
	// Lexer is the chroma lexer name.
	Lexer      string
	Extensions []string
	Starter    string
	// Markup languages are highlighted but not executed meaningfully.
	Markup bool
}

var languages = []Language{
	{
		Name:       "python",
		Label:      "Python",
		Lexer:      "python",
		Extensions: []string{".py"},
		Starter:    "print('Hello, world!')",
	},
	{
		Name:       "cpp",
		Label:      "C++",
		Lexer:      "cpp",
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp"},
		Starter:    "#include <iostream>\n\nint main() {\n   std::cout << \"hello, world!\" << std::endl;\n   return 0;\n}",
	},
	{
		Name:       "js",
		Label:      "JavaScript",
		Lexer:      "javascript",
		Extensions: []string{".js", ".mjs", ".jsx"},
		Starter:    "console.log('Hello, world!');",
	},
	{
		Name:       "c",
		Label:      "C",
		Lexer:      "c",
		Extensions: []string{".c", ".h"},
		Starter:    "#include <stdio.h>\n\nint main() {\n   printf(\"Hello world\");\n   return 0;\n}",
	},
	{
		Name:       "cs",
		Label:      "C# (.NET 7)",
		Lexer:      "csharp",
		Extensions: []string{".cs"},
		Starter:    "Console.WriteLine(\"Hello, world!\");",
	},
	{
		Name:       "go",
		Label:      "Go",
		Lexer:      "go",
		Extensions: []string{".go"},
		Starter:    "package main\n\nimport \"fmt\"\n\nfunc main() {\n   fmt.Println(\"Hello, world!\")\n}",
	},
	{
		Name:       "ruby",
		Label:      "Ruby",
		Lexer:      "ruby",
		Extensions: []string{".rb"},
		Starter:    "puts 'hello, world!'",
	},
	{
		Name:       "html",
		Label:      "HTML",
		Lexer:      "html",
		Extensions: []string{".html", ".htm"},
		Starter:    "<!DOCTYPE html>\n<html>\n<head>\n<title>Hello World</title>\n</head>\n<body>\n<h1>Hello, World!</h1>\n</body>\n</html>",
		Markup:     true,
	},
	{
		Name:       "css",
		Label:      "CSS",
		Lexer:      "css",
		Extensions: []string{".css"},
		Starter:    "body {\n   color: black;\n}",
		Markup:     true,
	},
}

// Languages lists the supported languages in menu order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage finds a language by its tag, case-insensitively.
func LookupLanguage(name string) (Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, l := range languages {
		if l.Name == name {
			return l, true
		}
	}
	return Language{}, false
}

// DetectLanguage picks a language tag from a file name's extension.
func DetectLanguage(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		return DefaultLanguage
	}
	for _, l := range languages {
		for _, e := range l.Extensions {
			if e == ext {
				return l.Name
			}
		}
	}
	return DefaultLanguage
}

// StarterCode returns the sample program for a language, falling back to the
// default language's.
func StarterCode(name string) string {
	if l, ok := LookupLanguage(name); ok {
		return l.Starter
	}
	l, _ := LookupLanguage(DefaultLanguage)
	return l.Starter
}
