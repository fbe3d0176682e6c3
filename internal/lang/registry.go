package lang

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Placeholders understood in Spec argv templates.
const (
	PlaceholderSource = "{source}"
	PlaceholderBinary = "{binary}"
	PlaceholderClass  = "{class}"
)

// Toolchain names the executables used to compile and run each language.
type Toolchain struct {
	Python string
	CC     string
	CXX    string
	Javac  string
	Java   string
}

// DefaultToolchain returns the binaries looked up on PATH when nothing is configured.
func DefaultToolchain() Toolchain {
	python := "python3"
	if runtime.GOOS == "windows" {
		python = "python"
	}
	return Toolchain{
		Python: python,
		CC:     "gcc",
		CXX:    "g++",
		Javac:  "javac",
		Java:   "java",
	}
}

func (t Toolchain) withDefaults() Toolchain {
	def := DefaultToolchain()
	if t.Python == "" {
		t.Python = def.Python
	}
	if t.CC == "" {
		t.CC = def.CC
	}
	if t.CXX == "" {
		t.CXX = def.CXX
	}
	if t.Javac == "" {
		t.Javac = def.Javac
	}
	if t.Java == "" {
		t.Java = def.Java
	}
	return t
}

// Spec describes how one language is materialized, compiled and run.
type Spec struct {
	Language Language
	// SourceFile is the file name template; Java uses "{class}.java".
	SourceFile string
	// BinaryFile is empty for languages without a native binary.
	BinaryFile string
	// Compile is nil for interpreted languages.
	Compile []string
	Run     []string
	// ClassFiles lists compiler outputs to remove that are not the binary.
	ClassFiles []string
	// OutputGlobs match compiler outputs whose names depend on the source,
	// such as every top-level Java class.
	OutputGlobs []string
}

// NeedsCompile reports whether the language has a compile step.
func (s Spec) NeedsCompile() bool {
	return len(s.Compile) > 0
}

// NeedsClass reports whether file names depend on the declared public class.
func (s Spec) NeedsClass() bool {
	return strings.Contains(s.SourceFile, PlaceholderClass)
}

// Plan is a Spec resolved against a directory and, for Java, a class name.
type Plan struct {
	Dir        string
	SourcePath string
	BinaryPath string
	Compile    []string
	Run        []string
	// Artifacts are every path the attempt may create, source first.
	Artifacts []string
	// ArtifactGlobs match extra compiler outputs such as nested classes.
	ArtifactGlobs []string
	// OutputGlobs match files the compile step may create under any name.
	// Only files that did not exist before the attempt belong to it.
	OutputGlobs []string
}

// Plan resolves the templates. className is required when NeedsClass is true.
func (s Spec) Plan(dir, className string) (Plan, error) {
	if s.NeedsClass() && className == "" {
		return Plan{}, fmt.Errorf("%s requires a class name", s.Language.DisplayName())
	}

	vars := map[string]string{PlaceholderClass: className}
	sourcePath := filepath.Join(dir, expand(s.SourceFile, vars))
	vars[PlaceholderSource] = sourcePath

	plan := Plan{
		Dir:        dir,
		SourcePath: sourcePath,
		Artifacts:  []string{sourcePath},
	}
	if s.BinaryFile != "" {
		plan.BinaryPath = filepath.Join(dir, expand(s.BinaryFile, vars))
		vars[PlaceholderBinary] = plan.BinaryPath
		plan.Artifacts = append(plan.Artifacts, plan.BinaryPath)
	}
	for _, class := range s.ClassFiles {
		plan.Artifacts = append(plan.Artifacts, filepath.Join(dir, expand(class, vars)))
	}
	if className != "" && s.Language == Java {
		plan.ArtifactGlobs = append(plan.ArtifactGlobs, filepath.Join(dir, className+"$*.class"))
	}

	for _, pattern := range s.OutputGlobs {
		plan.OutputGlobs = append(plan.OutputGlobs, filepath.Join(dir, pattern))
	}

	plan.Compile = expandAll(s.Compile, vars)
	plan.Run = expandAll(s.Run, vars)
	return plan, nil
}

func expand(tmpl string, vars map[string]string) string {
	for k, v := range vars {
		tmpl = strings.ReplaceAll(tmpl, k, v)
	}
	return tmpl
}

func expandAll(argv []string, vars map[string]string) []string {
	if len(argv) == 0 {
		return nil
	}
	out := make([]string, len(argv))
	for i, arg := range argv {
		out[i] = expand(arg, vars)
	}
	return out
}

// Registry is the fixed language table built at process start.
type Registry struct {
	specs map[Language]Spec
}

// NewRegistry builds the table for the supplied toolchain.
func NewRegistry(tc Toolchain) *Registry {
	tc = tc.withDefaults()

	binary := "script"
	if runtime.GOOS == "windows" {
		binary = "script.exe"
	}

	return &Registry{specs: map[Language]Spec{
		Python: {
			Language:   Python,
			SourceFile: "script.py",
			Run:        []string{tc.Python, PlaceholderSource},
		},
		C: {
			Language:   C,
			SourceFile: "script.c",
			BinaryFile: binary,
			Compile:    []string{tc.CC, PlaceholderSource, "-o", PlaceholderBinary},
			Run:        []string{PlaceholderBinary},
		},
		Cpp: {
			Language:   Cpp,
			SourceFile: "script.cpp",
			BinaryFile: binary,
			Compile:    []string{tc.CXX, PlaceholderSource, "-o", PlaceholderBinary},
			Run:        []string{PlaceholderBinary},
		},
		Java: {
			Language:    Java,
			SourceFile:  PlaceholderClass + ".java",
			Compile:     []string{tc.Javac, PlaceholderSource},
			Run:         []string{tc.Java, "-cp", ".", PlaceholderClass},
			ClassFiles:  []string{PlaceholderClass + ".class"},
			OutputGlobs: []string{"*.class"},
		},
	}}
}

// Lookup returns the Spec for id or ErrUnsupportedLanguage.
func (r *Registry) Lookup(id Language) (Spec, error) {
	spec, ok := r.specs[id]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, string(id))
	}
	return spec, nil
}

// Languages lists the registered languages in dropdown order.
func (r *Registry) Languages() []Language {
	out := make([]Language, 0, len(r.specs))
	for _, l := range All() {
		if _, ok := r.specs[l]; ok {
			out = append(out, l)
		}
	}
	return out
}
