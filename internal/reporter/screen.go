package reporter

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"runpad/internal/domain/execution"
	"runpad/internal/highlight"
)

const tabWidth = 4

// Screen shows a source buffer and its result on a terminal until a key is
// pressed.
type Screen struct {
	screen tcell.Screen
	theme  Theme
}

// NewScreen opens the controlling terminal.
func NewScreen(theme Theme) (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return NewScreenWith(s, theme), nil
}

// NewScreenWith wraps an existing tcell screen.
func NewScreenWith(s tcell.Screen, theme Theme) *Screen {
	return &Screen{screen: s, theme: theme}
}

// Show draws source and res and blocks until a key press. The terminal is
// restored before Show returns.
// Show рисует код и результат и ждёт нажатия клавиши.
func (sc *Screen) Show(source string, res *execution.Result) error {
	if err := sc.screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer sc.screen.Fini()

	draw(sc.screen, sc.theme, source, res)
	for {
		switch sc.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			sc.screen.Sync()
			draw(sc.screen, sc.theme, source, res)
		case *tcell.EventKey:
			return nil
		}
	}
}

// draw lays out a title row, the highlighted source (at most half of the
// remaining rows), a separator, the result on the output background and a
// footer.
func draw(s tcell.Screen, theme Theme, source string, res *execution.Result) {
	width, height := s.Size()
	base := tcell.StyleDefault.Foreground(theme.Default)
	s.Clear()

	title := fmt.Sprintf(" runpad | %s | %s ", res.Language.DisplayName(), res.Status)
	drawText(s, 0, 0, width, title, base.Reverse(true))
	if height < 4 {
		s.Show()
		return
	}

	body := height - 3
	srcRows := body / 2
	lines := highlight.Lines(source)
	row := 1
	for i := 0; i < len(lines) && i < srcRows; i++ {
		x := 0
		for _, tok := range lines[i] {
			x = drawText(s, x, row, width, tok.Text, base.Foreground(theme.Foreground(tok.Class)))
		}
		row++
	}

	sep := strings.Repeat("─", width)
	drawText(s, 0, row, width, sep, base.Foreground(theme.Comment))
	row++

	outStyle := tcell.StyleDefault.Background(theme.OutputBg).Foreground(theme.OutputFg)
	errStyle := outStyle.Foreground(theme.ErrorFg)
	for y := row; y < height-1; y++ {
		fill(s, y, width, outStyle)
	}
	for _, line := range outputLines(res) {
		if row >= height-1 {
			break
		}
		style := outStyle
		if line.err {
			style = errStyle
		}
		drawText(s, 0, row, width, line.text, style)
		row++
	}

	drawText(s, 0, height-1, width, "press any key to close", base.Foreground(theme.Comment))
	s.Show()
}

// drawText writes text starting at column x and returns the next free
// column. Text past maxX is dropped.
func drawText(s tcell.Screen, x, y, maxX int, text string, style tcell.Style) int {
	for _, r := range text {
		if r == '\t' {
			for i := 0; i < tabWidth && x < maxX; i++ {
				s.SetContent(x, y, ' ', nil, style)
				x++
			}
			continue
		}
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}

func fill(s tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, style)
	}
}
