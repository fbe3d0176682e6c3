// Package reporter renders execution results as plain text, JSON or a
// terminal screen.
package reporter

import (
	"fmt"
	"io"
	"strings"

	"runpad/internal/domain/execution"
)

// outLine is one rendered line of a result; err marks lines shown in the
// error colour.
type outLine struct {
	text string
	err  bool
}

// Text writes a plain rendering of res to w.
//
// Program output comes first, followed by captured stderr, the failure
// headline, cleanup warnings and the run time when the program was started.
func Text(w io.Writer, res *execution.Result) error {
	var b strings.Builder
	for _, line := range outputLines(res) {
		b.WriteString(line.text)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func outputLines(res *execution.Result) []outLine {
	var lines []outLine
	// compile diagnostics are carried by the headline
	if res.Kind != execution.KindCompileError {
		for _, l := range splitLines(res.Stdout) {
			lines = append(lines, outLine{text: l})
		}
	}
	if res.Stderr != "" && res.Kind != execution.KindCompileError {
		lines = append(lines, outLine{text: "Error:", err: true})
		for _, l := range splitLines(res.Stderr) {
			lines = append(lines, outLine{text: l, err: true})
		}
	}
	if headline := Headline(res); headline != "" {
		for _, l := range splitLines(headline) {
			lines = append(lines, outLine{text: l, err: true})
		}
	}
	for _, warn := range res.Warnings {
		lines = append(lines, outLine{text: "Warning: " + warn, err: true})
	}
	if ran(res) {
		lines = append(lines,
			outLine{},
			outLine{text: fmt.Sprintf("Execution Time: %.2f seconds", res.ElapsedSeconds)},
		)
	}
	return lines
}

// Headline is the one-line description of a failure, empty on success.
// Compile errors carry the compiler diagnostics on the following lines.
func Headline(res *execution.Result) string {
	switch res.Kind {
	case execution.KindNone:
		return ""
	case execution.KindMismatch:
		return "Warning: " + res.Detail
	case execution.KindRuntimeError:
		// stderr is printed separately
		return fmt.Sprintf("Error: program exited with status %d", res.ExitCode)
	default:
		return "Error: " + strings.TrimRight(res.Detail, "\n")
	}
}

func ran(res *execution.Result) bool {
	switch res.Kind {
	case execution.KindNone, execution.KindRuntimeError:
		return true
	case execution.KindExecutionTimeout:
		return res.Elapsed > 0
	default:
		return false
	}
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
