package session

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"runpad/internal/domain/execution"
	"runpad/internal/lang"
	"runpad/internal/runner"
)

type fakeSubmitter struct {
	mu   sync.Mutex
	subs []execution.Submission
}

func (f *fakeSubmitter) Submit(_ context.Context, sub execution.Submission) *execution.Result {
	f.mu.Lock()
	f.subs = append(f.subs, sub)
	f.mu.Unlock()
	res := &execution.Result{Language: sub.Language, Status: execution.StatusSuccess, Stdout: "ran\n"}
	res.SetElapsed(50 * time.Millisecond)
	return res
}

type fakeClipboard struct{ text string }

func (f *fakeClipboard) WriteAll(text string) error {
	f.text = text
	return nil
}

func runScript(t *testing.T, s *Session, lines ...string) string {
	t.Helper()
	out := s.out.(*bytes.Buffer)
	if err := s.Run(context.Background(), strings.NewReader(strings.Join(lines, "\n")+"\n")); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	return out.String()
}

func TestSessionRunsBuffer(t *testing.T) {
	sub := &fakeSubmitter{}
	s := New(sub, &bytes.Buffer{})

	out := runScript(t, s,
		"public class Main {",
		"  public static void main(String[] args) {}",
		"}",
		":lang java",
		":run",
	)

	if len(sub.subs) != 1 {
		t.Fatalf("expected one submission, got %d", len(sub.subs))
	}
	got := sub.subs[0]
	if got.Language != lang.Java || !strings.HasPrefix(got.Source, "public class Main {\n") {
		t.Fatalf("unexpected submission: %+v", got)
	}
	if !strings.Contains(out, "language: Java") || !strings.Contains(out, "ran\n") || !strings.Contains(out, "Execution Time: 0.05 seconds") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestSessionEditingCommands(t *testing.T) {
	clip := &fakeClipboard{}
	s := New(&fakeSubmitter{}, &bytes.Buffer{}, WithClipboard(clip))

	out := runScript(t, s,
		"x = 1",
		"::colon",
		":replace x y",
		":undo",
		":redo",
		":show",
		":share",
		":detect",
		":lang cobol",
		":bogus",
	)

	if s.Buffer().Text() != "y = 1\n:colon" {
		t.Fatalf("unexpected buffer: %q", s.Buffer().Text())
	}
	if clip.text != "y = 1\n:colon" {
		t.Fatalf("clipboard holds %q", clip.text)
	}
	for _, want := range []string{
		"1 replacement(s)",
		"   1  y = 1\n",
		"   2  :colon\n",
		"code copied to clipboard",
		"no language detected",
		"unsupported language",
		"unknown command :bogus",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSessionSaveOpenAndDetect(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "prog.c")
	if err := os.WriteFile(src, []byte("#include <stdio.h>\nint main(void) { return 0; }\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	s := New(&fakeSubmitter{}, &bytes.Buffer{})

	out := runScript(t, s,
		":open "+src,
		":detect",
		":save "+filepath.Join(dir, "copy"),
	)

	if s.Language() != lang.C {
		t.Fatalf("open should select C, got %s", s.Language())
	}
	if !strings.Contains(out, "detected: C\n") {
		t.Fatalf("unexpected detect output:\n%s", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "copy.c"))
	if err != nil || !strings.HasPrefix(string(data), "#include <stdio.h>") {
		t.Fatalf("saved file: %q (%v)", data, err)
	}
	if s.Buffer().Dirty() {
		t.Fatalf("buffer should be clean after save")
	}
}

func TestSessionQuitStopsReading(t *testing.T) {
	s := New(&fakeSubmitter{}, &bytes.Buffer{})
	runScript(t, s, "a", ":quit", "b")
	if s.Buffer().Text() != "a" {
		t.Fatalf("lines after :quit must be ignored, buffer=%q", s.Buffer().Text())
	}
}

func TestSessionAutosavesFinalBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosave.txt")
	s := New(&fakeSubmitter{}, &bytes.Buffer{}, WithAutosave(path, time.Hour))

	runScript(t, s, "print('saved')", ":quit")

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "print('saved')" {
		t.Fatalf("autosave holds %q (%v)", data, err)
	}
}

func TestSessionWithRunner(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	cfg := runner.DefaultConfig()
	cfg.WorkDir = t.TempDir()
	r := runner.New(lang.NewRegistry(lang.Toolchain{Python: "sh"}), cfg)

	s := New(r, &bytes.Buffer{})
	out := runScript(t, s, "echo hello from sh", ":run")

	if !strings.Contains(out, "hello from sh\n") || !strings.Contains(out, "Execution Time:") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
