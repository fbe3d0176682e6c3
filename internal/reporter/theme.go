package reporter

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"runpad/internal/highlight"
)

// Theme is the colour table for the screen reporter.
// Theme - таблица цветов для экранного вывода.
type Theme struct {
	Name string

	Keyword  tcell.Color
	Function tcell.Color
	Comment  tcell.Color
	String   tcell.Color
	Default  tcell.Color

	OutputBg tcell.Color
	OutputFg tcell.Color
	ErrorFg  tcell.Color
}

// Dark is the default colour table.
var Dark = Theme{
	Name:     "dark",
	Keyword:  tcell.ColorAqua,
	Function: tcell.ColorLightGreen,
	Comment:  tcell.ColorGray,
	String:   tcell.ColorOrange,
	Default:  tcell.ColorWhite,
	OutputBg: tcell.NewHexColor(0x222222),
	OutputFg: tcell.NewHexColor(0x00FF00),
	ErrorFg:  tcell.NewHexColor(0xFF5555),
}

// Light is the colour table for light terminals.
var Light = Theme{
	Name:     "light",
	Keyword:  tcell.ColorBlue,
	Function: tcell.ColorDarkGreen,
	Comment:  tcell.ColorGray,
	String:   tcell.ColorBrown,
	Default:  tcell.ColorBlack,
	OutputBg: tcell.NewHexColor(0xEEEEEE),
	OutputFg: tcell.NewHexColor(0x006600),
	ErrorFg:  tcell.NewHexColor(0x990000),
}

// ParseTheme resolves a theme by name. An empty name selects Dark.
func ParseTheme(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "dark", "darkly":
		return Dark, nil
	case "light", "litera":
		return Light, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q (want dark or light)", name)
	}
}

// Foreground returns the colour used for a syntax class.
func (t Theme) Foreground(c highlight.Class) tcell.Color {
	switch c {
	case highlight.Keyword:
		return t.Keyword
	case highlight.Function:
		return t.Function
	case highlight.Comment:
		return t.Comment
	case highlight.String:
		return t.String
	default:
		return t.Default
	}
}
