package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

type testCLI struct {
	*cli
	out, errOut *bytes.Buffer
	clip        *fakeClipboard
	env         string
}

func newTestCLI(t *testing.T, stdin string) *testCLI {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("RUNPAD_WORKDIR", dir)
	t.Setenv("RUNPAD_ISOLATE", "")
	t.Setenv("RUNPAD_RUN_TIMEOUT", "")
	t.Setenv("RUNPAD_COMPILE_TIMEOUT", "")
	t.Setenv("RUNPAD_LOG_LEVEL", "disabled")
	t.Setenv("RUNPAD_METRICS_FILE", "")
	for _, key := range []string{"RUNPAD_PYTHON", "RUNPAD_CC", "RUNPAD_CXX", "RUNPAD_JAVAC", "RUNPAD_JAVA"} {
		t.Setenv(key, "")
	}
	t.Setenv("RUNPAD_AUTOSAVE_FILE", filepath.Join(dir, "autosave.txt"))

	tc := &testCLI{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}, clip: &fakeClipboard{}}
	tc.cli = &cli{stdin: strings.NewReader(stdin), stdout: tc.out, stderr: tc.errOut, clip: tc.clip}
	tc.env = filepath.Join(dir, "absent.env")
	return tc
}

func (tc *testCLI) exec(args ...string) int {
	return tc.run(context.Background(), append([]string{"-env", tc.env}, args...))
}

func TestVersionAndUsage(t *testing.T) {
	tc := newTestCLI(t, "")
	if code := tc.exec("version"); code != exitOK {
		t.Fatalf("version exited %d", code)
	}
	if !strings.Contains(tc.out.String(), Version) {
		t.Fatalf("version output: %q", tc.out.String())
	}

	tc = newTestCLI(t, "")
	if code := tc.exec(); code != exitUsage {
		t.Fatalf("no command exited %d", code)
	}
	if !strings.Contains(tc.errOut.String(), "runpad") {
		t.Fatalf("usage not printed: %q", tc.errOut.String())
	}

	tc = newTestCLI(t, "")
	if code := tc.exec("frobnicate"); code != exitUsage {
		t.Fatalf("unknown command exited %d", code)
	}
}

func TestDetectCommand(t *testing.T) {
	tc := newTestCLI(t, "public class A {}\n")
	if code := tc.exec("detect"); code != exitOK {
		t.Fatalf("detect exited %d: %s", code, tc.errOut.String())
	}
	if tc.out.String() != "java\tJava\n" {
		t.Fatalf("unexpected detect output: %q", tc.out.String())
	}

	tc = newTestCLI(t, "just words\n")
	if code := tc.exec("detect", "-"); code != exitFailed {
		t.Fatalf("undetectable input exited %d", code)
	}
}

func TestSaveCommand(t *testing.T) {
	tc := newTestCLI(t, "print('hi')\n")
	dest := filepath.Join(t.TempDir(), "hello")
	if code := tc.exec("save", "-lang", "python", dest); code != exitOK {
		t.Fatalf("save exited %d: %s", code, tc.errOut.String())
	}
	data, err := os.ReadFile(dest + ".py")
	if err != nil || string(data) != "print('hi')\n" {
		t.Fatalf("saved file: %q (%v)", data, err)
	}

	tc = newTestCLI(t, "plain notes")
	if code := tc.exec("save", dest); code != exitOK {
		t.Fatalf("save without language exited %d", code)
	}
	if _, err := os.Stat(dest + ".txt"); err != nil {
		t.Fatalf("expected .txt fallback: %v", err)
	}
}

func TestShareCommand(t *testing.T) {
	tc := newTestCLI(t, "int main(void) { return 0; }")
	if code := tc.exec("share"); code != exitOK {
		t.Fatalf("share exited %d: %s", code, tc.errOut.String())
	}
	if tc.clip.text != "int main(void) { return 0; }" {
		t.Fatalf("clipboard holds %q", tc.clip.text)
	}

	tc = newTestCLI(t, "")
	if code := tc.exec("share"); code != exitFailed {
		t.Fatalf("sharing nothing exited %d", code)
	}
}

func TestRunMismatchAsJSON(t *testing.T) {
	src := "public class A {\n  public static void main(String[] args) {}\n}\n"
	tc := newTestCLI(t, src)
	if code := tc.exec("run", "-lang", "python", "-json", "-"); code != exitFailed {
		t.Fatalf("mismatch exited %d: %s", code, tc.errOut.String())
	}

	var doc map[string]any
	if err := json.Unmarshal(tc.out.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, tc.out.String())
	}
	if doc["status"] != "mismatch_warning" || doc["detected"] != "java" {
		t.Fatalf("unexpected result: %v", doc)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tc := newTestCLI(t, "mystery text")
	if code := tc.exec("run", "-"); code != exitUsage {
		t.Fatalf("unknown language exited %d", code)
	}

	tc = newTestCLI(t, "")
	if code := tc.exec("run", "-theme", "neon", "-"); code != exitUsage {
		t.Fatalf("bad theme exited %d", code)
	}

	tc = newTestCLI(t, "")
	if code := tc.exec("run"); code != exitUsage {
		t.Fatalf("missing file exited %d", code)
	}
}

func TestRunWithStandInInterpreter(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	tc := newTestCLI(t, "echo hi from runpad\n")
	t.Setenv("RUNPAD_PYTHON", "sh")

	if code := tc.exec("run", "-lang", "py", "-"); code != exitOK {
		t.Fatalf("run exited %d: %s%s", code, tc.out.String(), tc.errOut.String())
	}
	if !strings.Contains(tc.out.String(), "hi from runpad\n") || !strings.Contains(tc.out.String(), "Execution Time:") {
		t.Fatalf("unexpected output:\n%s", tc.out.String())
	}
}

func TestRunLanguageFromFilename(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	path := filepath.Join(t.TempDir(), "fail.py")
	if err := os.WriteFile(path, []byte("echo oops >&2\nexit 3\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	tc := newTestCLI(t, "")
	t.Setenv("RUNPAD_PYTHON", "sh")

	if code := tc.exec("run", path); code != exitFailed {
		t.Fatalf("failing program exited %d", code)
	}
	if !strings.Contains(tc.out.String(), "Error: program exited with status 3") {
		t.Fatalf("unexpected output:\n%s", tc.out.String())
	}
}

func TestLanguagesCommand(t *testing.T) {
	tc := newTestCLI(t, "")
	t.Setenv("RUNPAD_CC", "clang")
	if code := tc.exec("languages"); code != exitOK {
		t.Fatalf("languages exited %d: %s", code, tc.errOut.String())
	}
	out := tc.out.String()
	for _, want := range []string{"python", "C++", ".java", "clang"} {
		if !strings.Contains(out, want) {
			t.Fatalf("languages output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionCommand(t *testing.T) {
	tc := newTestCLI(t, "x = 1\n:show\n:quit\n")
	if code := tc.exec("session", "-lang", "python"); code != exitOK {
		t.Fatalf("session exited %d: %s", code, tc.errOut.String())
	}
	if !strings.Contains(tc.out.String(), "   1  x = 1") {
		t.Fatalf("unexpected session output:\n%s", tc.out.String())
	}
	data, err := os.ReadFile(os.Getenv("RUNPAD_AUTOSAVE_FILE"))
	if err != nil || string(data) != "x = 1" {
		t.Fatalf("autosave holds %q (%v)", data, err)
	}
}

func TestDetectSystemLanguage(t *testing.T) {
	t.Setenv("LC_ALL", "ru_RU.UTF-8")
	if got := detectSystemLanguage(); got != "ru" {
		t.Fatalf("expected ru, got %s", got)
	}
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_MESSAGES", "")
	t.Setenv("LANG", "C")
	t.Setenv("LANGUAGE", "")
	if got := detectSystemLanguage(); got != "en" {
		t.Fatalf("expected en fallback, got %s", got)
	}
}

func TestRunWritesMetricsTextfile(t *testing.T) {
	tc := newTestCLI(t, "public class A {}\n")
	path := filepath.Join(t.TempDir(), "runpad.prom")
	t.Setenv("RUNPAD_METRICS_FILE", path)

	if code := tc.exec("run", "-lang", "python", "-"); code != exitFailed {
		t.Fatalf("mismatch exited %d", code)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(data), `runpad_submissions_total{language="python",status="mismatch_warning"} 1`) {
		t.Fatalf("unexpected metrics:\n%s", data)
	}
}
