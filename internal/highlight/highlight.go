// Package highlight classifies source text into keyword, function, comment
// and string runs for display.
package highlight

import (
	"regexp"
	"strings"
)

// Class is the syntax category of a run of text.
type Class int

const (
	Default Class = iota
	Keyword
	Function
	Comment
	String
)

func (c Class) String() string {
	switch c {
	case Keyword:
		return "keyword"
	case Function:
		return "function"
	case Comment:
		return "comment"
	case String:
		return "string"
	default:
		return "default"
	}
}

// Token is a run of text with a single class.
// Token - фрагмент текста с одним классом подсветки.
type Token struct {
	Text  string
	Class Class
}

type rule struct {
	class   Class
	pattern *regexp.Regexp
	// group selects the submatch to colour; 0 colours the whole match.
	group int
}

// Rules are applied in order and later classes override earlier ones, so a
// keyword inside a comment or a string is shown as comment or string.
var rules = []rule{
	{class: Keyword, pattern: regexp.MustCompile(`\b(?:class|def|return|if|else|for|while|break|continue|try|catch|import|public|private|static|void|int|double|string|boolean)\b`)},
	{class: Function, pattern: regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\(`), group: 1},
	{class: Comment, pattern: regexp.MustCompile(`//.*|#.*`)},
	{class: String, pattern: regexp.MustCompile(`"(?:\\.|[^"\\\n])*"|'(?:\\.|[^'\\\n])*'`)},
}

// Classify returns the class of every byte of text.
func Classify(text string) []Class {
	classes := make([]Class, len(text))
	for _, r := range rules {
		for _, m := range r.pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2*r.group], m[2*r.group+1]
			if start < 0 {
				continue
			}
			for i := start; i < end; i++ {
				classes[i] = r.class
			}
		}
	}
	return classes
}

// Highlight splits text into tokens whose concatenation is text.
// Highlight разбивает текст на токены, склейка которых равна исходному тексту.
func Highlight(text string) []Token {
	if text == "" {
		return nil
	}
	classes := Classify(text)
	var tokens []Token
	start := 0
	for i := 1; i <= len(text); i++ {
		if i < len(text) && classes[i] == classes[start] {
			continue
		}
		tokens = append(tokens, Token{Text: text[start:i], Class: classes[start]})
		start = i
	}
	return tokens
}

// Lines highlights text and splits the tokens at line breaks. The newline
// characters themselves are dropped.
func Lines(text string) [][]Token {
	var (
		lines   [][]Token
		current []Token
	)
	for _, tok := range Highlight(text) {
		parts := strings.Split(tok.Text, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, current)
				current = nil
			}
			if part != "" {
				current = append(current, Token{Text: part, Class: tok.Class})
			}
		}
	}
	return append(lines, current)
}
