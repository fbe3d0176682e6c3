// Package runner turns a submission into a finished execution result:
// validate, check for a language mismatch, write the source, compile when
// the language needs it, run under a timeout and clean up every artifact.
package runner

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"runpad/internal/domain/execution"
	"runpad/internal/lang"
	"runpad/internal/sniff"
)

// DefaultRunTimeout is the wall-clock limit for the run step.
const DefaultRunTimeout = 10 * time.Second

// Config controls where artifacts live and how long processes may take.
type Config struct {
	// WorkDir is the directory artifacts are written under. Defaults to ".".
	WorkDir string
	// Isolate gives every submission its own scratch directory below WorkDir.
	// Without it the fixed file names are used in WorkDir directly and
	// submissions are serialized.
	Isolate bool
	// RunTimeout bounds the run step. Zero selects DefaultRunTimeout.
	RunTimeout time.Duration
	// CompileTimeout bounds the compile step. Zero means no limit.
	CompileTimeout time.Duration
}

// DefaultConfig returns isolated execution in the current directory.
func DefaultConfig() Config {
	return Config{
		WorkDir:    ".",
		Isolate:    true,
		RunTimeout: DefaultRunTimeout,
	}
}

// Recorder observes every finished submission.
type Recorder interface {
	Observe(res *execution.Result)
}

// Runner executes submissions against a language registry.
type Runner struct {
	registry *lang.Registry
	cfg      Config
	logger   *zerolog.Logger
	recorder Recorder
	newID    func() string

	// mu serializes submissions that share fixed file names.
	mu sync.Mutex
}

// Option customizes a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for phase tracing.
func WithLogger(logger *zerolog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(r *Runner) {
		r.recorder = rec
	}
}

// New constructs a Runner.
func New(registry *lang.Registry, cfg Config, opts ...Option) *Runner {
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = DefaultRunTimeout
	}
	if cfg.CompileTimeout < 0 {
		cfg.CompileTimeout = 0
	}

	nop := zerolog.Nop()
	r := &Runner{
		registry: registry,
		cfg:      cfg,
		logger:   &nop,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns the effective configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Submit runs one submission to completion and always returns a Result.
// Failures of any kind, including panics inside a phase, are reported in the
// Result instead of being returned.
func (r *Runner) Submit(ctx context.Context, sub execution.Submission) (res *execution.Result) {
	res = &execution.Result{
		ID:       r.newID(),
		Language: sub.Language,
		ExitCode: -1,
	}
	log := r.logger.With().
		Str("submission_id", res.ID).
		Str("language", string(sub.Language)).
		Logger()

	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("submission panicked")
			res.Fail(execution.StatusInternalError, execution.KindInternalError, "internal error: %v", p)
		}
		r.finish(&log, res)
	}()

	spec, className, ok := r.validate(sub, res)
	if !ok {
		return res
	}
	if !r.checkMismatch(sub, res) {
		return res
	}

	if !r.cfg.Isolate {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	ws, err := newWorkspace(r.cfg.WorkDir, r.cfg.Isolate, res.ID, spec, className)
	if err != nil {
		return res.Fail(execution.StatusInternalError, execution.KindWriteError, "error preparing workspace: %v", err)
	}
	defer ws.release(res, &log)

	log.Debug().Str("path", ws.plan.SourcePath).Msg("writing source")
	if err := ws.writeSource(sub.Source); err != nil {
		return res.Fail(execution.StatusInternalError, execution.KindWriteError, "error writing file: %v", err)
	}

	if spec.NeedsCompile() && !r.compile(ctx, ws.plan, res, &log) {
		return res
	}

	r.run(ctx, ws.plan, res, &log)
	return res
}

func (r *Runner) validate(sub execution.Submission, res *execution.Result) (lang.Spec, string, bool) {
	if strings.TrimSpace(sub.Source) == "" {
		res.Fail(execution.StatusValidationError, execution.KindEmptySubmission, "no code to execute")
		return lang.Spec{}, "", false
	}

	spec, err := r.registry.Lookup(sub.Language)
	if err != nil {
		res.Fail(execution.StatusValidationError, execution.KindUnsupportedLanguage, "%v", err)
		return lang.Spec{}, "", false
	}

	if !spec.NeedsClass() {
		return spec, "", true
	}

	className, ok := sniff.JavaPublicClass(sub.Source)
	if !ok {
		res.Fail(execution.StatusValidationError, execution.KindMissingPublicClass,
			"%s code must have a `public class` declaration", sub.Language.DisplayName())
		return lang.Spec{}, "", false
	}
	if !sniff.HasJavaMain(sub.Source) {
		res.Fail(execution.StatusValidationError, execution.KindMissingMainMethod,
			"class %s must contain a `public static void main(String[] args)` method", className)
		return lang.Spec{}, "", false
	}
	return spec, className, true
}

func (r *Runner) checkMismatch(sub execution.Submission, res *execution.Result) bool {
	detected, ok := sniff.Detect(sub.Source)
	if !ok {
		return true
	}
	res.Detected = detected
	if detected == sub.Language {
		return true
	}
	res.Fail(execution.StatusMismatchWarning, execution.KindMismatch,
		"detected %s code, but %s is selected", detected.DisplayName(), sub.Language.DisplayName())
	return false
}

func (r *Runner) compile(ctx context.Context, plan lang.Plan, res *execution.Result, log *zerolog.Logger) bool {
	log.Debug().Strs("argv", plan.Compile).Msg("compiling")

	pr, err := runProcess(ctx, plan.Dir, plan.Compile, r.cfg.CompileTimeout)
	res.CompileDuration = pr.elapsed

	switch {
	case err != nil && isMissingTool(err):
		res.Fail(execution.StatusToolchainMissing, execution.KindToolchainMissing,
			"%s not found - missing compiler?", plan.Compile[0])
	case err != nil:
		res.Fail(execution.StatusInternalError, execution.KindInternalError, "could not start compiler: %v", err)
	case pr.timedOut:
		res.Stdout, res.Stderr = pr.stdout, pr.stderr
		res.Fail(execution.StatusTimeout, execution.KindExecutionTimeout,
			"compilation timed out (%s limit)", r.cfg.CompileTimeout)
	case pr.exitCode != 0:
		res.Stdout, res.Stderr = pr.stdout, pr.stderr
		res.ExitCode = pr.exitCode
		diag := pr.stderr
		if strings.TrimSpace(diag) == "" {
			diag = pr.stdout
		}
		res.Fail(execution.StatusCompileError, execution.KindCompileError, "compilation error:\n%s", diag)
	default:
		return true
	}
	return false
}

func (r *Runner) run(ctx context.Context, plan lang.Plan, res *execution.Result, log *zerolog.Logger) {
	log.Debug().Strs("argv", plan.Run).Dur("timeout", r.cfg.RunTimeout).Msg("running")

	pr, err := runProcess(ctx, plan.Dir, plan.Run, r.cfg.RunTimeout)
	res.Stdout, res.Stderr = pr.stdout, pr.stderr
	res.ExitCode = pr.exitCode
	res.SetElapsed(pr.elapsed)

	switch {
	case err != nil && isMissingTool(err) && plan.Run[0] != plan.BinaryPath:
		res.Fail(execution.StatusToolchainMissing, execution.KindToolchainMissing,
			"%s not found - missing interpreter?", plan.Run[0])
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		res.Fail(execution.StatusInternalError, execution.KindInternalError, "execution cancelled: %v", err)
	case err != nil:
		res.Fail(execution.StatusInternalError, execution.KindInternalError, "could not run program: %v", err)
	case pr.timedOut:
		res.Fail(execution.StatusTimeout, execution.KindExecutionTimeout,
			"execution timed out (%s limit)", r.cfg.RunTimeout)
	case pr.exitCode != 0:
		if strings.TrimSpace(pr.stderr) == "" {
			res.Fail(execution.StatusRuntimeError, execution.KindRuntimeError,
				"program exited with status %d", pr.exitCode)
		} else {
			res.Fail(execution.StatusRuntimeError, execution.KindRuntimeError,
				"program exited with status %d:\n%s", pr.exitCode, pr.stderr)
		}
	default:
		res.Status = execution.StatusSuccess
		res.Kind = execution.KindNone
	}
}

func (r *Runner) finish(log *zerolog.Logger, res *execution.Result) {
	ev := log.Info()
	if res.Status != execution.StatusSuccess {
		ev = log.Warn()
	}
	ev.Str("status", string(res.Status)).
		Str("kind", string(res.Kind)).
		Float64("elapsed_seconds", res.ElapsedSeconds).
		Int("warnings", len(res.Warnings)).
		Msg("submission finished")

	if r.recorder != nil {
		r.recorder.Observe(res)
	}
}
