// Package sniff guesses the language of a buffer from its surface syntax.
//
// The rules are ordered and the first match wins; they overlap, so the
// order Java, C/C++, Python must be kept. A miss is fine, a guess is only
// advisory.
package sniff

import (
	"regexp"

	"runpad/internal/lang"
)

var (
	javaPublicClass = regexp.MustCompile(`\bpublic\s+class\s+([A-Za-z_$][A-Za-z0-9_$]*)`)
	javaMain        = regexp.MustCompile(`\b(?:public\s+static|static\s+public)\s+void\s+main\s*\(\s*(?:final\s+)?String\s*(?:\[\s*\]\s*[A-Za-z_$][\w$]*|\[\s*\]|[A-Za-z_$][\w$]*\s*\[\s*\]|\.\.\.\s*[A-Za-z_$][\w$]*)\s*\)`)

	includeDirective = regexp.MustCompile(`(?m)^[ \t]*#[ \t]*include[ \t]*<[^>\n]+>`)
	cppToken         = regexp.MustCompile(`::|\b(?:cout|cin|cerr|clog)\b`)

	pythonStatement = regexp.MustCompile(`(?m)^[ \t]*(?:` +
		`import[ \t]+[\w.]+(?:[ \t]*,[ \t]*[\w.]+)*(?:[ \t]+as[ \t]+\w+)?[ \t]*$` +
		`|from[ \t]+[\w.]+[ \t]+import[ \t]+` +
		`|def[ \t]+\w+[ \t]*\(` +
		`|class[ \t]+\w+[ \t]*(?:\([^)\n]*\))?[ \t]*:)`)
)

// Detect returns the guessed language and true, or Unknown and false.
// Detect возвращает предполагаемый язык кода.
func Detect(src string) (lang.Language, bool) {
	switch {
	case javaPublicClass.MatchString(src):
		return lang.Java, true
	case includeDirective.MatchString(src):
		if cppToken.MatchString(src) {
			return lang.Cpp, true
		}
		return lang.C, true
	case pythonStatement.MatchString(src):
		return lang.Python, true
	default:
		return lang.Unknown, false
	}
}

// JavaPublicClass extracts the first declared public class name.
func JavaPublicClass(src string) (string, bool) {
	m := javaPublicClass.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// HasJavaMain reports whether src declares a runnable main method.
func HasJavaMain(src string) bool {
	return javaMain.MatchString(src)
}
