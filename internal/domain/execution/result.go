package execution

import (
	"fmt"
	"math"
	"time"

	"runpad/internal/lang"
)

// Submission is the buffer text plus the language the user picked for it.
type Submission struct {
	Source   string
	Language lang.Language
}

// Result captures the outcome of one submission.
//
// Exactly one Status is set per submission. Stdout and Stderr keep whatever
// the program produced even when Status reports a failure.
type Result struct {
	ID       string        `json:"id"`
	Language lang.Language `json:"language"`
	// Detected is set when the sniffer produced a guess.
	Detected lang.Language `json:"detected,omitempty"`

	Status Status `json:"status"`
	Kind   Kind   `json:"kind,omitempty"`
	Detail string `json:"detail,omitempty"`

	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exit_code"`

	Elapsed         time.Duration `json:"-"`
	ElapsedSeconds  float64       `json:"elapsed_seconds"`
	CompileDuration time.Duration `json:"-"`

	// Warnings holds non-fatal cleanup problems.
	Warnings []string `json:"warnings,omitempty"`
}

// OK reports whether the program ran to a zero exit.
func (r *Result) OK() bool {
	return r != nil && r.Status == StatusSuccess
}

// SetElapsed records the run duration and its two-decimal seconds form.
func (r *Result) SetElapsed(d time.Duration) {
	if d < 0 {
		d = 0
	}
	r.Elapsed = d
	r.ElapsedSeconds = RoundSeconds(d)
}

// Warn appends a cleanup warning.
func (r *Result) Warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Summary is a one-line description used in logs and status lines.
func (r *Result) Summary() string {
	if r.Kind == KindNone {
		return fmt.Sprintf("%s %s in %.2fs", r.Language.DisplayName(), r.Status, r.ElapsedSeconds)
	}
	return fmt.Sprintf("%s %s (%s)", r.Language.DisplayName(), r.Status, r.Kind)
}

// Fail sets the terminal status, kind and detail in one step.
func (r *Result) Fail(status Status, kind Kind, format string, args ...any) *Result {
	r.Status = status
	r.Kind = kind
	r.Detail = fmt.Sprintf(format, args...)
	return r
}

// RoundSeconds converts d to seconds with two decimal places.
func RoundSeconds(d time.Duration) float64 {
	return math.Round(d.Seconds()*100) / 100
}
