package lang

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Language represents the programming language of a submission.
// Language представляет язык программирования отправленного кода.
type Language string

// Supported languages.
// Поддерживаемые языки.
const (
	Python  Language = "python"
	C       Language = "c"
	Cpp     Language = "cpp"
	Java    Language = "java"
	Unknown Language = "unknown"
)

// ErrUnsupportedLanguage is returned for identifiers outside the fixed set.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// All lists the supported languages in dropdown order.
func All() []Language {
	return []Language{Python, C, Cpp, Java}
}

// DisplayName returns the human readable name shown to users.
// DisplayName возвращает имя языка для показа пользователю.
func (l Language) DisplayName() string {
	switch l {
	case Python:
		return "Python"
	case C:
		return "C"
	case Cpp:
		return "C++"
	case Java:
		return "Java"
	case "":
		return "Unknown"
	default:
		return string(l)
	}
}

// Extension returns the file extension including the dot, ".txt" when unknown.
func (l Language) Extension() string {
	switch l {
	case Python:
		return ".py"
	case C:
		return ".c"
	case Cpp:
		return ".cpp"
	case Java:
		return ".java"
	default:
		return ".txt"
	}
}

func (l Language) String() string {
	return l.DisplayName()
}

// Parse turns an identifier, display name or alias into a Language.
// Parse превращает идентификатор, имя или псевдоним в Language.
func Parse(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "python", "py", "python3":
		return Python, nil
	case "c":
		return C, nil
	case "cpp", "c++", "cxx", "cc":
		return Cpp, nil
	case "java":
		return Java, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
}

// FromFilename detects the language based on the file extension.
// FromFilename определяет язык на основе расширения файла.
func FromFilename(filename string) Language {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".py", ".pyw":
		return Python
	case ".c", ".h":
		return C
	case ".cpp", ".cc", ".cxx", ".hpp", ".hh":
		return Cpp
	case ".java":
		return Java
	default:
		return Unknown
	}
}
