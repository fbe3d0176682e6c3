package runner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"runpad/internal/domain/execution"
	"runpad/internal/lang"
)

// workspace is the artifact set owned by one submission. Every path it
// registers is removed by release, whatever happened in between.
type workspace struct {
	plan lang.Plan
	// owned is true when dir was created for this submission and goes away with it.
	owned bool
	// preexisting holds OutputGlobs matches found before the attempt started.
	preexisting map[string]bool
}

func newWorkspace(base string, isolate bool, id string, spec lang.Spec, className string) (*workspace, error) {
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolve work dir: %w", err)
	}

	dir := base
	if isolate {
		dir = filepath.Join(base, "runpad-"+id)
		if err := os.MkdirAll(base, 0o755); err != nil {
			return nil, fmt.Errorf("create work dir: %w", err)
		}
		if err := os.Mkdir(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create scratch dir: %w", err)
		}
	}

	plan, err := spec.Plan(dir, className)
	if err != nil {
		if isolate {
			_ = os.Remove(dir)
		}
		return nil, err
	}

	ws := &workspace{plan: plan, owned: isolate}
	if !isolate {
		// Shared names: drop anything a crashed attempt left behind so a
		// stale binary can never be run in place of a fresh one.
		for _, path := range ws.registered() {
			_ = os.Remove(path)
		}
	}
	ws.preexisting = make(map[string]bool)
	for _, path := range globAll(plan.OutputGlobs) {
		ws.preexisting[path] = true
	}
	return ws, nil
}

func (w *workspace) writeSource(src string) error {
	return os.WriteFile(w.plan.SourcePath, []byte(src), 0o644)
}

// registered returns the named artifacts plus whatever ArtifactGlobs match now.
func (w *workspace) registered() []string {
	return append(append([]string(nil), w.plan.Artifacts...), globAll(w.plan.ArtifactGlobs)...)
}

// paths is registered plus every OutputGlobs match created during the attempt.
func (w *workspace) paths() []string {
	out := w.registered()
	seen := make(map[string]bool, len(out))
	for _, path := range out {
		seen[path] = true
	}
	for _, path := range globAll(w.plan.OutputGlobs) {
		if !seen[path] && !w.preexisting[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	return out
}

func globAll(patterns []string) []string {
	var out []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		out = append(out, matches...)
	}
	return out
}

// release removes every artifact. Failures become warnings on res and never
// change its status.
func (w *workspace) release(res *execution.Result, log *zerolog.Logger) {
	for _, path := range w.paths() {
		err := os.Remove(path)
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			continue
		}
		res.Warn("could not delete %s: %v", filepath.Base(path), err)
		log.Warn().Err(err).Str("path", path).Msg("artifact cleanup failed")
	}

	if !w.owned {
		return
	}
	if err := os.Remove(w.plan.Dir); err != nil && !errors.Is(err, fs.ErrNotExist) {
		// Toolchains occasionally drop extra files next to the source.
		if err := os.RemoveAll(w.plan.Dir); err != nil {
			res.Warn("could not delete %s: %v", w.plan.Dir, err)
			log.Warn().Err(err).Str("path", w.plan.Dir).Msg("scratch dir cleanup failed")
		}
	}
}
